package queries

import (
	"context"

	"fastfeet/internal/core/ports"
	"fastfeet/internal/pkg/errs"
)

type GetOrderDetailsQueryHandler struct {
	orders     ports.OrderRepository
	recipients ports.RecipientRepository
}

func NewGetOrderDetailsQueryHandler(
	orders ports.OrderRepository,
	recipients ports.RecipientRepository,
) GetOrderDetailsQueryHandler {
	return GetOrderDetailsQueryHandler{orders: orders, recipients: recipients}
}

// Handle returns an *errs.ObjectNotFoundError when the order does not exist or
// its recipient does not list it.
func (h GetOrderDetailsQueryHandler) Handle(ctx context.Context, query GetOrderDetailsQuery) (OrderDetails, error) {
	if err := query.Validate(); err != nil {
		return OrderDetails{}, err
	}

	o, err := h.orders.FindByID(ctx, query.OrderID())
	if err != nil {
		return OrderDetails{}, err
	}

	rec, err := h.recipients.FindByID(ctx, o.RecipientID())
	if err != nil {
		return OrderDetails{}, err
	}

	if !rec.HasOrder(o.ID()) {
		return OrderDetails{}, errs.NewObjectNotFoundError("orderID", o.ID())
	}

	return OrderDetails{Order: o, Recipient: rec}, nil
}
