package inmemory

import (
	"context"
	"errors"

	"fastfeet/internal/core/domain/events"
	"fastfeet/internal/core/domain/model/kernel"
	"fastfeet/internal/core/domain/model/order"
	"fastfeet/internal/core/domain/model/recipient"
	"fastfeet/internal/core/ports"
	"fastfeet/internal/pkg/errs"
)

var (
	ErrNoActiveTransaction = errors.New("no active transaction")

	_ ports.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
	_ ports.UnitOfWork        = (*UnitOfWork)(nil)
)

type UnitOfWorkFactory struct {
	store      *Store
	dispatcher events.Dispatcher
}

func NewUnitOfWorkFactory(store *Store, dispatcher events.Dispatcher) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store, dispatcher: dispatcher}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store, dispatcher: f.dispatcher}
}

type pendingOrder struct {
	state order.RestoreParams
	isNew bool
}

type pendingRecipient struct {
	state recipientState
	isNew bool
}

// UnitOfWork stages copies of the written aggregates and applies them to the
// Store on Commit. Reads through its repositories see the staged writes.
// Saved orders are dispatched to the event bus only after the writes are
// applied.
type UnitOfWork struct {
	store      *Store
	dispatcher events.Dispatcher

	active     bool
	orders     []pendingOrder
	recipients []pendingRecipient
	tracked    []events.Aggregate
}

func (u *UnitOfWork) Begin(_ context.Context) error {
	u.active = true
	return nil
}

// Commit applies the staged writes atomically and then dispatches the events
// of every saved order. Dispatch failures are returned after the writes are
// already applied and do not stop the remaining orders.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}

	if err := u.apply(); err != nil {
		u.reset()
		return err
	}

	tracked := u.tracked
	u.reset()

	return events.DispatchAll(ctx, u.dispatcher, tracked)
}

// Rollback discards the staged writes.
func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}
	u.reset()
	return nil
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &txOrderRepository{uow: u}
}

func (u *UnitOfWork) RecipientRepository() ports.RecipientRepository {
	return &txRecipientRepository{uow: u}
}

// TrackAggregate defers the dispatch of aggregate to Commit.
func (u *UnitOfWork) TrackAggregate(_ context.Context, aggregate events.Aggregate) error {
	u.tracked = append(u.tracked, aggregate)
	return nil
}

func (u *UnitOfWork) reset() {
	u.active = false
	u.orders = nil
	u.recipients = nil
	u.tracked = nil
}

func (u *UnitOfWork) apply() error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	for _, p := range u.orders {
		exists := u.store.orderIndex(p.state.ID) >= 0
		if p.isNew && exists {
			return errOrderAlreadyExists(p.state.ID)
		}
		if !p.isNew && !exists {
			return errs.NewObjectNotFoundError("order", p.state.ID.String())
		}
	}
	for _, p := range u.recipients {
		_, exists := u.store.recipients[p.state.id]
		if p.isNew && exists {
			return errRecipientAlreadyExists(p.state.id)
		}
		if !p.isNew && !exists {
			return errs.NewObjectNotFoundError("recipient", p.state.id.String())
		}
	}

	for _, p := range u.orders {
		if p.isNew {
			u.store.orders = append(u.store.orders, p.state)
			continue
		}
		u.store.orders[u.store.orderIndex(p.state.ID)] = p.state
	}
	for _, p := range u.recipients {
		u.store.recipients[p.state.id] = p.state
	}
	return nil
}

// stagedOrders overlays the staged order states on the stored ones.
func (u *UnitOfWork) stagedOrders() []order.RestoreParams {
	u.store.mu.RLock()
	merged := u.store.snapshot()
	u.store.mu.RUnlock()

	for _, p := range u.orders {
		if idx := indexOfOrder(merged, p.state.ID); idx >= 0 {
			merged[idx] = p.state
			continue
		}
		merged = append(merged, p.state)
	}
	return merged
}

func (u *UnitOfWork) stageOrder(aggregate *order.Order, isNew bool) {
	state := orderState(aggregate)
	for i, p := range u.orders {
		if p.state.ID.IsEqual(state.ID) {
			u.orders[i].state = state
			return
		}
	}
	u.orders = append(u.orders, pendingOrder{state: state, isNew: isNew})
}

func (u *UnitOfWork) stagedRecipient(id kernel.UUID) (recipientState, bool) {
	for _, p := range u.recipients {
		if p.state.id.IsEqual(id) {
			return p.state, true
		}
	}

	u.store.mu.RLock()
	defer u.store.mu.RUnlock()
	state, ok := u.store.recipients[id]
	return state, ok
}

func (u *UnitOfWork) stageRecipient(aggregate *recipient.Recipient, isNew bool) {
	state := recipientStateOf(aggregate)
	for i, p := range u.recipients {
		if p.state.id.IsEqual(state.id) {
			u.recipients[i].state = state
			return
		}
	}
	u.recipients = append(u.recipients, pendingRecipient{state: state, isNew: isNew})
}

type txOrderRepository struct {
	uow *UnitOfWork
}

func (r *txOrderRepository) FindByID(_ context.Context, id kernel.UUID) (*order.Order, error) {
	o, ok, err := findOrder(r.uow.stagedOrders(), byID(id))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o, nil
}

func (r *txOrderRepository) FindByTrackingCode(_ context.Context, code string) (*order.Order, error) {
	code = kernel.NormalizeTrackingCode(code)
	o, ok, err := findOrder(r.uow.stagedOrders(), byTrackingCode(code))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.NewObjectNotFoundError("trackingCode", code)
	}
	return o, nil
}

func (r *txOrderRepository) FindManyRecentByCityAwaitingOrInProgress(
	_ context.Context, city string, courierID kernel.UUID, page ports.PaginationParams,
) ([]*order.Order, error) {
	return awaitingOrInProgress(r.uow.stagedOrders(), city, courierID, page)
}

func (r *txOrderRepository) FindManyRecentByCityCompleted(
	_ context.Context, city string, courierID kernel.UUID, page ports.PaginationParams,
) ([]*order.Order, error) {
	return completed(r.uow.stagedOrders(), city, courierID, page)
}

func (r *txOrderRepository) Create(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if indexOfOrder(r.uow.stagedOrders(), aggregate.ID()) >= 0 {
		return errOrderAlreadyExists(aggregate.ID())
	}
	r.uow.stageOrder(aggregate, true)
	return nil
}

func (r *txOrderRepository) Save(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if indexOfOrder(r.uow.stagedOrders(), aggregate.ID()) < 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	r.uow.stageOrder(aggregate, false)
	return r.uow.TrackAggregate(ctx, aggregate)
}

type txRecipientRepository struct {
	uow *UnitOfWork
}

func (r *txRecipientRepository) FindByID(_ context.Context, id kernel.UUID) (*recipient.Recipient, error) {
	state, ok := r.uow.stagedRecipient(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("recipient", id.String())
	}
	return restoreRecipient(state)
}

func (r *txRecipientRepository) Create(_ context.Context, aggregate *recipient.Recipient) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, ok := r.uow.stagedRecipient(aggregate.ID()); ok {
		return errRecipientAlreadyExists(aggregate.ID())
	}
	r.uow.stageRecipient(aggregate, true)
	return nil
}

func (r *txRecipientRepository) Save(_ context.Context, aggregate *recipient.Recipient) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, ok := r.uow.stagedRecipient(aggregate.ID()); !ok {
		return errs.NewObjectNotFoundError("recipient", aggregate.ID().String())
	}
	r.uow.stageRecipient(aggregate, false)
	return nil
}
