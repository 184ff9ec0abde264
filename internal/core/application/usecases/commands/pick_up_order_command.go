package commands

import (
	"errors"

	"fastfeet/internal/core/domain/model/kernel"
	"fastfeet/internal/core/domain/model/order"
	"fastfeet/internal/pkg/guard"
)

var ErrPickUpOrderCommandIsNotConstructed = errors.New(
	"PickUpOrderCommand must be created via NewPickUpOrderCommand constructor",
)

// PickUpOrderCommand assigns an order to the calling courier and moves it to
// PickedUp.
type PickUpOrderCommand struct { //nolint:recvcheck //using for validation
	callerRole order.Role
	orderID    kernel.UUID
	courierID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewPickUpOrderCommand(callerRole order.Role, orderID, courierID kernel.UUID) (PickUpOrderCommand, error) {
	cmd := PickUpOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		callerRole.Validate(),
		orderID.Validate(),
		courierID.Validate(),
	); err != nil {
		return PickUpOrderCommand{}, err
	}

	cmd.callerRole = callerRole
	cmd.orderID = orderID
	cmd.courierID = courierID

	return cmd, nil
}

func (c PickUpOrderCommand) Validate() error {
	return c.guard.Validate(ErrPickUpOrderCommandIsNotConstructed)
}

func (c PickUpOrderCommand) CallerRole() order.Role { return c.callerRole }
func (c PickUpOrderCommand) OrderID() kernel.UUID   { return c.orderID }
func (c PickUpOrderCommand) CourierID() kernel.UUID { return c.courierID }
