package events_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"fastfeet/internal/core/domain/events"
	"fastfeet/internal/core/domain/model/kernel"
	"fastfeet/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(order.Params{
		RecipientID:  kernel.NewUUID(),
		City:         "Springfield",
		Neighborhood: "Evergreen Terrace",
		Title:        "Parcel",
		Role:         order.Courier,
	})
	require.NoError(t, err)
	return o
}

func statusOf(event kernel.DomainEvent) order.Status {
	return event.(order.StatusChangedEvent).Status()
}

func TestBus_DispatchForAggregate(t *testing.T) {
	t.Run("should deliver staged events in order and clear the queue", func(t *testing.T) {
		// Given
		bus := events.NewBus(nil)
		o := newOrder(t)
		var seen []order.Status
		bus.Register(o.ID(), order.StatusChangedEventName, func(_ context.Context, e kernel.DomainEvent) error {
			seen = append(seen, statusOf(e))
			return nil
		})
		require.NoError(t, o.SetStatus(order.PickedUp))
		require.NoError(t, o.SetStatus(order.Done))
		bus.MarkAggregateForDispatch(o)

		// When
		err := bus.DispatchForAggregate(context.Background(), o.ID())

		// Then
		require.NoError(t, err)
		assert.Equal(t, []order.Status{order.PickedUp, order.Done}, seen)
		assert.Empty(t, o.DomainEvents())
		assert.False(t, bus.IsMarked(o.ID()))
	})

	t.Run("should run aggregate handlers before subscribers", func(t *testing.T) {
		bus := events.NewBus(nil)
		o := newOrder(t)
		other := newOrder(t)
		var calls []string
		bus.Subscribe(order.StatusChangedEventName, func(context.Context, kernel.DomainEvent) error {
			calls = append(calls, "any")
			return nil
		})
		bus.Register(o.ID(), order.StatusChangedEventName, func(context.Context, kernel.DomainEvent) error {
			calls = append(calls, "specific")
			return nil
		})
		bus.Register(other.ID(), order.StatusChangedEventName, func(context.Context, kernel.DomainEvent) error {
			calls = append(calls, "other")
			return nil
		})
		require.NoError(t, o.SetStatus(order.PickedUp))
		bus.MarkAggregateForDispatch(o)

		require.NoError(t, bus.DispatchForAggregate(context.Background(), o.ID()))

		assert.Equal(t, []string{"specific", "any"}, calls)
	})

	t.Run("should collapse repeated marks into one flush", func(t *testing.T) {
		bus := events.NewBus(nil)
		o := newOrder(t)
		var count int
		bus.Subscribe(order.StatusChangedEventName, func(context.Context, kernel.DomainEvent) error {
			count++
			return nil
		})
		require.NoError(t, o.SetStatus(order.PickedUp))
		bus.MarkAggregateForDispatch(o)
		bus.MarkAggregateForDispatch(o)

		require.NoError(t, bus.DispatchForAggregate(context.Background(), o.ID()))
		require.NoError(t, bus.DispatchForAggregate(context.Background(), o.ID()))

		assert.Equal(t, 1, count)
	})

	t.Run("should ignore identities that were never marked", func(t *testing.T) {
		bus := events.NewBus(nil)
		o := newOrder(t)
		require.NoError(t, o.SetStatus(order.PickedUp))

		require.NoError(t, bus.DispatchForAggregate(context.Background(), o.ID()))

		assert.Len(t, o.DomainEvents(), 1)
	})

	t.Run("should fail fast and still clear the queue", func(t *testing.T) {
		// Given
		bus := events.NewBus(nil)
		o := newOrder(t)
		boom := errors.New("boom")
		var after, second int
		bus.Register(o.ID(), order.StatusChangedEventName, func(_ context.Context, e kernel.DomainEvent) error {
			if statusOf(e) == order.PickedUp {
				return boom
			}
			second++
			return nil
		})
		bus.Subscribe(order.StatusChangedEventName, func(context.Context, kernel.DomainEvent) error {
			after++
			return nil
		})
		require.NoError(t, o.SetStatus(order.PickedUp))
		require.NoError(t, o.SetStatus(order.Done))
		bus.MarkAggregateForDispatch(o)

		// When
		err := bus.DispatchForAggregate(context.Background(), o.ID())

		// Then
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), order.StatusChangedEventName)
		assert.Zero(t, after)
		assert.Zero(t, second)
		assert.Empty(t, o.DomainEvents())
		assert.False(t, bus.IsMarked(o.ID()))
	})
}

func TestBus_SetInert(t *testing.T) {
	bus := events.NewBus(nil)
	o := newOrder(t)
	var count int
	bus.Subscribe(order.StatusChangedEventName, func(context.Context, kernel.DomainEvent) error {
		count++
		return nil
	})
	require.NoError(t, o.SetStatus(order.PickedUp))
	bus.MarkAggregateForDispatch(o)

	bus.SetInert(true)
	require.NoError(t, bus.DispatchForAggregate(context.Background(), o.ID()))

	assert.Zero(t, count)
	assert.Len(t, o.DomainEvents(), 1)
	assert.True(t, bus.IsMarked(o.ID()))

	bus.SetInert(false)
	require.NoError(t, bus.DispatchForAggregate(context.Background(), o.ID()))

	assert.Equal(t, 1, count)
	assert.Empty(t, o.DomainEvents())
}

func TestBus_Clear(t *testing.T) {
	bus := events.NewBus(nil)
	o := newOrder(t)
	var count int
	bus.Subscribe(order.StatusChangedEventName, func(context.Context, kernel.DomainEvent) error {
		count++
		return nil
	})
	require.NoError(t, o.SetStatus(order.PickedUp))
	bus.MarkAggregateForDispatch(o)

	bus.ClearMarkedAggregates()
	bus.ClearHandlers()

	assert.False(t, bus.IsMarked(o.ID()))
	bus.MarkAggregateForDispatch(o)
	require.NoError(t, bus.DispatchForAggregate(context.Background(), o.ID()))
	assert.Zero(t, count)
}

func TestBus_ConcurrentDispatch(t *testing.T) {
	// Given
	bus := events.NewBus(nil)
	var delivered atomic.Int64
	bus.Subscribe(order.StatusChangedEventName, func(context.Context, kernel.DomainEvent) error {
		delivered.Add(1)
		return nil
	})

	const workers = 50
	orders := make([]*order.Order, workers)
	for i := range orders {
		orders[i] = newOrder(t)
		require.NoError(t, orders[i].SetStatus(order.PickedUp))
		require.NoError(t, orders[i].SetStatus(order.Done))
	}

	// When
	var wg sync.WaitGroup
	errCh := make(chan error, workers)
	for _, o := range orders {
		wg.Add(1)
		go func(o *order.Order) {
			defer wg.Done()
			bus.MarkAggregateForDispatch(o)
			errCh <- bus.DispatchForAggregate(context.Background(), o.ID())
		}(o)
	}
	wg.Wait()
	close(errCh)

	// Then
	for err := range errCh {
		require.NoError(t, err)
	}
	assert.Equal(t, int64(2*workers), delivered.Load())
	for _, o := range orders {
		assert.Empty(t, o.DomainEvents())
		assert.False(t, bus.IsMarked(o.ID()))
	}
}

func TestImmediateTracker(t *testing.T) {
	bus := events.NewBus(nil)
	o := newOrder(t)
	var count int
	bus.Subscribe(order.StatusChangedEventName, func(context.Context, kernel.DomainEvent) error {
		count++
		return nil
	})
	require.NoError(t, o.SetStatus(order.PickedUp))

	err := events.NewImmediateTracker(bus).TrackAggregate(context.Background(), o)

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Empty(t, o.DomainEvents())
}

func TestDispatchAll(t *testing.T) {
	// Given
	bus := events.NewBus(nil)
	first, second := newOrder(t), newOrder(t)
	require.NoError(t, first.SetStatus(order.PickedUp))
	require.NoError(t, second.SetStatus(order.PickedUp))
	boom := errors.New("boom")
	var delivered []kernel.UUID
	bus.Subscribe(order.StatusChangedEventName, func(_ context.Context, e kernel.DomainEvent) error {
		if e.AggregateID().IsEqual(first.ID()) {
			return boom
		}
		delivered = append(delivered, e.AggregateID())
		return nil
	})

	// When
	err := events.DispatchAll(context.Background(), bus, []events.Aggregate{first, second})

	// Then
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []kernel.UUID{second.ID()}, delivered, "a failure does not stop later aggregates")
	assert.Empty(t, first.DomainEvents())
	assert.Empty(t, second.DomainEvents())
	assert.False(t, bus.IsMarked(first.ID()))
	assert.False(t, bus.IsMarked(second.ID()))
}
