package commands

import (
	"errors"

	"fastfeet/internal/pkg/errs"
	"fastfeet/internal/pkg/guard"
)

var ErrSendPendingNotificationsCommandIsNotConstructed = errors.New(
	"SendPendingNotificationsCommand must be created via NewSendPendingNotificationsCommand constructor",
)

// SendPendingNotificationsCommand drains at most batchSize notifications from
// the outbox.
type SendPendingNotificationsCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewSendPendingNotificationsCommand(batchSize int) (SendPendingNotificationsCommand, error) {
	if batchSize <= 0 {
		return SendPendingNotificationsCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, "unbounded")
	}

	return SendPendingNotificationsCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SendPendingNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrSendPendingNotificationsCommandIsNotConstructed)
}

func (c SendPendingNotificationsCommand) BatchSize() int {
	return c.batchSize
}
