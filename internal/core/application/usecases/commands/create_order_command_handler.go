package commands

import (
	"context"

	"fastfeet/internal/core/domain/model/kernel"
	"fastfeet/internal/core/domain/model/order"
)

// CreateOrderResult identifies the created order.
type CreateOrderResult struct {
	OrderID      kernel.UUID
	TrackingCode string
}

// CreateOrderCommandHandler creates orders in the Waiting status and links
// them to their recipient in the same transaction.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle fails with an *errs.ActionIsNotAllowedError for non-administrators
// and with an *errs.ObjectNotFoundError when the recipient does not exist.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	if err := requireRole(cmd.CallerRole(), order.Admin, "create order"); err != nil {
		return CreateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	recipientRepo := uow.RecipientRepository()
	rec, err := recipientRepo.FindByID(ctx, cmd.RecipientID())
	if err != nil {
		return CreateOrderResult{}, err
	}

	o, err := order.NewOrder(order.Params{
		RecipientID:  rec.ID(),
		City:         cmd.City(),
		Neighborhood: cmd.Neighborhood(),
		Title:        cmd.Title(),
		Role:         order.Courier,
	})
	if err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.OrderRepository().Create(ctx, o); err != nil {
		return CreateOrderResult{}, err
	}

	if err = rec.AddOrder(o.ID()); err != nil {
		return CreateOrderResult{}, err
	}

	if err = recipientRepo.Save(ctx, rec); err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	return CreateOrderResult{OrderID: o.ID(), TrackingCode: o.TrackingCode()}, nil
}
