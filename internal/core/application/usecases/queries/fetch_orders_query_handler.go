package queries

import (
	"context"

	"fastfeet/internal/core/domain/model/order"
	"fastfeet/internal/core/ports"
)

// FetchAwaitingOrdersQueryHandler lists the Waiting orders of a city together
// with the caller's own orders still in flight, newest first.
type FetchAwaitingOrdersQueryHandler struct {
	repo ports.OrderRepository
}

func NewFetchAwaitingOrdersQueryHandler(repo ports.OrderRepository) FetchAwaitingOrdersQueryHandler {
	return FetchAwaitingOrdersQueryHandler{repo: repo}
}

func (h FetchAwaitingOrdersQueryHandler) Handle(ctx context.Context, query FetchOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := query.requireCourier("fetch awaiting orders"); err != nil {
		return nil, err
	}

	return h.repo.FindManyRecentByCityAwaitingOrInProgress(ctx, query.City(), query.CourierID(), query.Page())
}

// FetchCompletedOrdersQueryHandler lists the orders the caller delivered in a
// city, newest first.
type FetchCompletedOrdersQueryHandler struct {
	repo ports.OrderRepository
}

func NewFetchCompletedOrdersQueryHandler(repo ports.OrderRepository) FetchCompletedOrdersQueryHandler {
	return FetchCompletedOrdersQueryHandler{repo: repo}
}

func (h FetchCompletedOrdersQueryHandler) Handle(ctx context.Context, query FetchOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := query.requireCourier("fetch completed orders"); err != nil {
		return nil, err
	}

	return h.repo.FindManyRecentByCityCompleted(ctx, query.City(), query.CourierID(), query.Page())
}
