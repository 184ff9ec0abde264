package commands

import (
	"errors"
	"strings"

	"fastfeet/internal/core/domain/model/kernel"
	"fastfeet/internal/core/domain/model/order"
	"fastfeet/internal/pkg/errs"
	"fastfeet/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCityIsRequired         = errs.NewValueIsRequiredError("city")
	ErrNeighborhoodIsRequired = errs.NewValueIsRequiredError("neighborhood")
	ErrTitleIsRequired        = errs.NewValueIsRequiredError("title")
)

// CreateOrderCommand represents a request to register a new delivery order
// for an existing recipient.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(order.Admin, recipientID, "Springfield", "Downtown", "Books")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	result, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	callerRole   order.Role
	recipientID  kernel.UUID
	city         string
	neighborhood string
	title        string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates that the recipient id is set and that city,
// neighborhood and title are not blank.
func NewCreateOrderCommand(
	callerRole order.Role,
	recipientID kernel.UUID,
	city, neighborhood, title string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCallerRole(callerRole),
		cmd.setRecipientID(recipientID),
		cmd.setCity(city),
		cmd.setNeighborhood(neighborhood),
		cmd.setTitle(title),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) CallerRole() order.Role   { return c.callerRole }
func (c CreateOrderCommand) RecipientID() kernel.UUID { return c.recipientID }
func (c CreateOrderCommand) City() string             { return c.city }
func (c CreateOrderCommand) Neighborhood() string     { return c.neighborhood }
func (c CreateOrderCommand) Title() string            { return c.title }

func (c *CreateOrderCommand) setCallerRole(role order.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	c.callerRole = role
	return nil
}

func (c *CreateOrderCommand) setRecipientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.recipientID = id
	return nil
}

func (c *CreateOrderCommand) setCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return ErrCityIsRequired
	}
	c.city = city
	return nil
}

func (c *CreateOrderCommand) setNeighborhood(neighborhood string) error {
	neighborhood = strings.TrimSpace(neighborhood)
	if neighborhood == "" {
		return ErrNeighborhoodIsRequired
	}
	c.neighborhood = neighborhood
	return nil
}

func (c *CreateOrderCommand) setTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrTitleIsRequired
	}
	c.title = title
	return nil
}
