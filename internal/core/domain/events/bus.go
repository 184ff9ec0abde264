// Package events dispatches domain events staged on aggregates to the code
// that reacts to them.
//
// Events are staged by the aggregate while it is mutated and delivered only
// when the persistence boundary commits: repositories call
// MarkAggregateForDispatch when they accept an aggregate and
// DispatchForAggregate once the write is durable.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"fastfeet/internal/core/domain/model/kernel"
)

// Handler reacts to a single domain event. A returned error stops the
// dispatch and is reported to its caller.
type Handler func(ctx context.Context, event kernel.DomainEvent) error

// Aggregate is the part of kernel.AggregateRoot the bus needs.
type Aggregate interface {
	ID() kernel.UUID
	DomainEvents() []kernel.DomainEvent
	ClearDomainEvents()
}

// Dispatcher is implemented by Bus. Repositories depend on it instead of the
// concrete type.
type Dispatcher interface {
	MarkAggregateForDispatch(aggregate Aggregate)
	DispatchForAggregate(ctx context.Context, aggregateID kernel.UUID) error
}

type handlerKey struct {
	aggregateID kernel.UUID
	eventName   string
}

// Bus is an explicitly constructed event registry. It is safe for concurrent
// use; handlers run outside of its lock and may use the bus themselves.
type Bus struct {
	mu          sync.RWMutex
	handlers    map[handlerKey][]Handler
	subscribers map[string][]Handler
	marked      map[kernel.UUID]Aggregate
	inert       bool
	logger      *slog.Logger
}

func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		handlers:    make(map[handlerKey][]Handler),
		subscribers: make(map[string][]Handler),
		marked:      make(map[kernel.UUID]Aggregate),
		logger:      logger.With("component", "EventBus"),
	}
}

// Register subscribes handler to eventName raised by one aggregate. Several
// handlers may share a key; they run in registration order.
func (b *Bus) Register(aggregateID kernel.UUID, eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := handlerKey{aggregateID: aggregateID, eventName: eventName}
	b.handlers[key] = append(b.handlers[key], handler)
}

// Subscribe registers handler for eventName raised by any aggregate. It runs
// after the handlers registered for the specific aggregate.
func (b *Bus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers[eventName] = append(b.subscribers[eventName], handler)
}

// MarkAggregateForDispatch records that aggregate has staged events. Marking
// the same identity again keeps a single entry pointing at the latest instance.
func (b *Bus) MarkAggregateForDispatch(aggregate Aggregate) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.marked[aggregate.ID()] = aggregate
}

// IsMarked reports whether aggregateID waits for dispatch.
func (b *Bus) IsMarked(aggregateID kernel.UUID) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, ok := b.marked[aggregateID]
	return ok
}

// DispatchForAggregate delivers the staged events of a marked aggregate in the
// order they were staged, then clears its queue and unmarks it. Unmarked
// identities are ignored.
//
// The first failing handler aborts the dispatch: later handlers of that event
// and later events are not delivered, the queue is still cleared and the error
// is returned wrapped with the event name. While the bus is inert the call does
// nothing and the queue is kept.
func (b *Bus) DispatchForAggregate(ctx context.Context, aggregateID kernel.UUID) error {
	b.mu.Lock()
	if b.inert {
		b.mu.Unlock()
		return nil
	}
	aggregate, ok := b.marked[aggregateID]
	if !ok {
		b.mu.Unlock()
		return nil
	}
	delete(b.marked, aggregateID)
	b.mu.Unlock()

	pending := aggregate.DomainEvents()
	aggregate.ClearDomainEvents()

	for _, event := range pending {
		for _, handler := range b.handlersFor(aggregateID, event.EventName()) {
			if err := handler(ctx, event); err != nil {
				b.logger.ErrorContext(ctx, "domain event handler failed",
					"event", event.EventName(), "aggregateId", aggregateID.String(), "error", err)
				return fmt.Errorf("dispatch %s for aggregate %s: %w", event.EventName(), aggregateID, err)
			}
		}
	}

	b.logger.DebugContext(ctx, "domain events dispatched",
		"aggregateId", aggregateID.String(), "count", len(pending))
	return nil
}

// SetInert switches dispatching off (true) or back on (false). Tests use it to
// inspect staged events without side effects.
func (b *Bus) SetInert(inert bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.inert = inert
}

// ClearHandlers drops every registration and subscription.
func (b *Bus) ClearHandlers() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers = make(map[handlerKey][]Handler)
	b.subscribers = make(map[string][]Handler)
}

// ClearMarkedAggregates forgets every aggregate waiting for dispatch.
func (b *Bus) ClearMarkedAggregates() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.marked = make(map[kernel.UUID]Aggregate)
}

func (b *Bus) handlersFor(aggregateID kernel.UUID, eventName string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()

	specific := b.handlers[handlerKey{aggregateID: aggregateID, eventName: eventName}]
	wildcard := b.subscribers[eventName]

	out := make([]Handler, 0, len(specific)+len(wildcard))
	out = append(out, specific...)
	return append(out, wildcard...)
}
