package events

import (
	"context"
	"errors"
)

// Tracker receives every aggregate a repository has saved. It decides when the
// staged events of the aggregate are dispatched.
type Tracker interface {
	TrackAggregate(ctx context.Context, aggregate Aggregate) error
}

// ImmediateTracker dispatches as soon as an aggregate is saved. Repositories
// used outside of a unit of work are built with it.
type ImmediateTracker struct {
	dispatcher Dispatcher
}

func NewImmediateTracker(dispatcher Dispatcher) ImmediateTracker {
	return ImmediateTracker{dispatcher: dispatcher}
}

func (t ImmediateTracker) TrackAggregate(ctx context.Context, aggregate Aggregate) error {
	t.dispatcher.MarkAggregateForDispatch(aggregate)
	return t.dispatcher.DispatchForAggregate(ctx, aggregate.ID())
}

// DispatchAll marks and dispatches every aggregate in order. A failure does
// not stop the loop, so every staged queue is emptied; the failures are
// returned joined.
func DispatchAll(ctx context.Context, dispatcher Dispatcher, aggregates []Aggregate) error {
	var errs []error
	for _, aggregate := range aggregates {
		dispatcher.MarkAggregateForDispatch(aggregate)
		if err := dispatcher.DispatchForAggregate(ctx, aggregate.ID()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
