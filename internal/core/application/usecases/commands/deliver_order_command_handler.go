package commands

import (
	"context"
	"errors"

	"fastfeet/internal/core/domain/model/order"
	"fastfeet/internal/pkg/errs"
)

var ErrOrderIsNotAssignedToCourier = errors.New("order is not assigned to this courier")

type DeliverOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewDeliverOrderCommandHandler(uowFactory OrderUoWFactory) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle fails with an *errs.ActionIsNotAllowedError when the order belongs to
// another courier or was never picked up.
func (h DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := requireRole(cmd.CallerRole(), order.Courier, "deliver order"); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.FindByID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !o.IsAssignedTo(cmd.CourierID()) {
		return errs.NewActionIsNotAllowedErrorWithCause("deliver order", ErrOrderIsNotAssignedToCourier)
	}

	o.SetAttachmentID(cmd.AttachmentID())
	if err = o.SetStatus(order.Done); err != nil {
		return err
	}

	if err = repo.Save(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
