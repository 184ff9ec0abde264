package commands

import (
	"errors"
	"strings"

	"fastfeet/internal/core/domain/model/kernel"
	"fastfeet/internal/core/domain/model/order"
	"fastfeet/internal/pkg/errs"
	"fastfeet/internal/pkg/guard"
)

var ErrDeliverOrderCommandIsNotConstructed = errors.New(
	"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor",
)

// DeliverOrderCommand completes an order with a proof of delivery.
type DeliverOrderCommand struct { //nolint:recvcheck //using for validation
	callerRole   order.Role
	orderID      kernel.UUID
	courierID    kernel.UUID
	attachmentID string

	guard guard.ConstructorGuard
}

func NewDeliverOrderCommand(
	callerRole order.Role,
	orderID, courierID kernel.UUID,
	attachmentID string,
) (DeliverOrderCommand, error) {
	cmd := DeliverOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	attachmentID = strings.TrimSpace(attachmentID)
	var attachmentErr error
	if attachmentID == "" {
		attachmentErr = errs.NewValueIsRequiredError("attachmentID")
	}

	if err := errors.Join(
		callerRole.Validate(),
		orderID.Validate(),
		courierID.Validate(),
		attachmentErr,
	); err != nil {
		return DeliverOrderCommand{}, err
	}

	cmd.callerRole = callerRole
	cmd.orderID = orderID
	cmd.courierID = courierID
	cmd.attachmentID = attachmentID

	return cmd, nil
}

func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

func (c DeliverOrderCommand) CallerRole() order.Role { return c.callerRole }
func (c DeliverOrderCommand) OrderID() kernel.UUID   { return c.orderID }
func (c DeliverOrderCommand) CourierID() kernel.UUID { return c.courierID }
func (c DeliverOrderCommand) AttachmentID() string   { return c.attachmentID }
