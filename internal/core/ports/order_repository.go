// Package ports defines the contracts between the application core and its
// adapters: repositories, the unit of work and the notification pipeline.
package ports

import (
	"context"

	"fastfeet/internal/core/domain/model/kernel"
	"fastfeet/internal/core/domain/model/order"
)

// OrderRepository is the persistence contract of the Order aggregate. Every
// adapter must reproduce the filtering, sorting and pagination rules below.
type OrderRepository interface {
	// FindByID returns an *errs.ObjectNotFoundError when no order has id.
	FindByID(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// FindByTrackingCode returns an *errs.ObjectNotFoundError when no order
	// carries code.
	FindByTrackingCode(ctx context.Context, code string) (*order.Order, error)

	// FindManyRecentByCityAwaitingOrInProgress returns the orders of city that
	// are Waiting, plus the PickedUp orders of courierID. Done orders are never
	// returned. Results are sorted by createdAt descending and paginated.
	FindManyRecentByCityAwaitingOrInProgress(
		ctx context.Context, city string, courierID kernel.UUID, page PaginationParams,
	) ([]*order.Order, error)

	// FindManyRecentByCityCompleted returns the Done orders of city delivered
	// by courierID, sorted by createdAt descending and paginated.
	FindManyRecentByCityCompleted(
		ctx context.Context, city string, courierID kernel.UUID, page PaginationParams,
	) ([]*order.Order, error)

	// Create stores a new order.
	Create(ctx context.Context, aggregate *order.Order) error

	// Save replaces the stored order with the same identity and hands its
	// staged events to the event bus. Saving an unknown order returns an
	// *errs.ObjectNotFoundError.
	Save(ctx context.Context, aggregate *order.Order) error
}
