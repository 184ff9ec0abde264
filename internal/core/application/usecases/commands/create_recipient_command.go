package commands

import (
	"errors"
	"strings"

	"fastfeet/internal/core/domain/model/order"
	"fastfeet/internal/core/domain/model/recipient"
	"fastfeet/internal/pkg/guard"
)

var ErrCreateRecipientCommandIsNotConstructed = errors.New(
	"CreateRecipientCommand must be created via NewCreateRecipientCommand constructor",
)

// CreateRecipientCommand registers a person orders can be addressed to.
// Only administrators may issue it.
type CreateRecipientCommand struct { //nolint:recvcheck //using for validation
	callerRole order.Role
	name       string

	guard guard.ConstructorGuard
}

func NewCreateRecipientCommand(callerRole order.Role, name string) (CreateRecipientCommand, error) {
	cmd := CreateRecipientCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCallerRole(callerRole),
		cmd.setName(name),
	); err != nil {
		return CreateRecipientCommand{}, err
	}

	return cmd, nil
}

func (c CreateRecipientCommand) Validate() error {
	return c.guard.Validate(ErrCreateRecipientCommandIsNotConstructed)
}

func (c CreateRecipientCommand) CallerRole() order.Role {
	return c.callerRole
}

func (c CreateRecipientCommand) Name() string {
	return c.name
}

func (c *CreateRecipientCommand) setCallerRole(role order.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	c.callerRole = role
	return nil
}

func (c *CreateRecipientCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return recipient.ErrNameIsRequired
	}
	c.name = name
	return nil
}
