package inmemory

import (
	"context"

	"fastfeet/internal/core/domain/events"
	"fastfeet/internal/core/domain/model/kernel"
	"fastfeet/internal/core/domain/model/order"
	"fastfeet/internal/core/ports"
	"fastfeet/internal/pkg/errs"
)

var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository writes straight to the Store and dispatches the staged
// events of saved orders through its tracker.
type OrderRepository struct {
	store   *Store
	tracker events.Tracker
}

func NewOrderRepository(store *Store, tracker events.Tracker) *OrderRepository {
	return &OrderRepository{store: store, tracker: tracker}
}

func (r *OrderRepository) FindByID(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	o, ok, err := findOrder(r.store.orders, byID(id))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o, nil
}

func (r *OrderRepository) FindByTrackingCode(_ context.Context, code string) (*order.Order, error) {
	code = kernel.NormalizeTrackingCode(code)

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	o, ok, err := findOrder(r.store.orders, byTrackingCode(code))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.NewObjectNotFoundError("trackingCode", code)
	}
	return o, nil
}

func (r *OrderRepository) FindManyRecentByCityAwaitingOrInProgress(
	_ context.Context, city string, courierID kernel.UUID, page ports.PaginationParams,
) ([]*order.Order, error) {
	r.store.mu.RLock()
	states := r.store.snapshot()
	r.store.mu.RUnlock()

	return awaitingOrInProgress(states, city, courierID, page)
}

func (r *OrderRepository) FindManyRecentByCityCompleted(
	_ context.Context, city string, courierID kernel.UUID, page ports.PaginationParams,
) ([]*order.Order, error) {
	r.store.mu.RLock()
	states := r.store.snapshot()
	r.store.mu.RUnlock()

	return completed(states, city, courierID, page)
}

func (r *OrderRepository) Create(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.store.orderIndex(aggregate.ID()) >= 0 {
		return errOrderAlreadyExists(aggregate.ID())
	}
	r.store.orders = append(r.store.orders, orderState(aggregate))
	return nil
}

// Save replaces the stored copy of aggregate and dispatches its staged events.
func (r *OrderRepository) Save(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	idx := r.store.orderIndex(aggregate.ID())
	if idx < 0 {
		r.store.mu.Unlock()
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	r.store.orders[idx] = orderState(aggregate)
	r.store.mu.Unlock()

	return r.tracker.TrackAggregate(ctx, aggregate)
}
