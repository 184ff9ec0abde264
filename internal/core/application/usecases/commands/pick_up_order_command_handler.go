package commands

import (
	"context"

	"fastfeet/internal/core/domain/model/order"
)

type PickUpOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewPickUpOrderCommandHandler(uowFactory OrderUoWFactory) PickUpOrderCommandHandler {
	return PickUpOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order, records the caller as its courier and moves it to
// PickedUp. The status change event is dispatched once the unit of work
// commits.
func (h PickUpOrderCommandHandler) Handle(ctx context.Context, cmd PickUpOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := requireRole(cmd.CallerRole(), order.Courier, "pick up order"); err != nil {
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

	if err = o.SetCourierID(cmd.CourierID()); err != nil {
		return err
	}

	if err = o.SetStatus(order.PickedUp); err != nil {
		return err
	}

	if err = repo.Save(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
