package subscribers_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"fastfeet/internal/adapters/out/inmemory"
	"fastfeet/internal/core/application/subscribers"
	"fastfeet/internal/core/domain/events"
	"fastfeet/internal/core/domain/model/kernel"
	"fastfeet/internal/core/domain/model/notification"
	"fastfeet/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingOutbox struct {
	*inmemory.Outbox
}

func (failingOutbox) Enqueue(context.Context, notification.Notification) error {
	return errors.New("outbox unavailable")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSavedOrder(t *testing.T, bus *events.Bus) (*order.Order, *inmemory.OrderRepository) {
	t.Helper()
	repo := inmemory.NewOrderRepository(inmemory.NewStore(), events.NewImmediateTracker(bus))
	o, err := order.NewOrder(order.Params{
		RecipientID:  kernel.NewUUID(),
		City:         "Springfield",
		Neighborhood: "Downtown",
		Title:        "Books",
		Role:         order.Courier,
	})
	require.NoError(t, err)
	require.NoError(t, repo.Create(t.Context(), o))
	return o, repo
}

func TestOrderStatusChanged_EnqueuesNotificationOnSave(t *testing.T) {
	// Given
	ctx := t.Context()
	bus := events.NewBus(nil)
	outbox := inmemory.NewOutbox()
	subscribers.NewOrderStatusChanged(outbox, discardLogger()).Register(bus)
	o, repo := newSavedOrder(t, bus)

	// When
	require.NoError(t, o.SetStatus(order.PickedUp))
	assert.Zero(t, outbox.Len(), "nothing is published before save")
	require.NoError(t, repo.Save(ctx, o))

	// Then
	pending, err := outbox.Dequeue(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, o.ID(), pending[0].OrderID())
	assert.Equal(t, o.RecipientID(), pending[0].RecipientID())
	assert.Equal(t, o.TrackingCode(), pending[0].TrackingCode())
	assert.Equal(t, order.PickedUp, pending[0].Status())
	assert.Empty(t, o.DomainEvents())
}

func TestOrderStatusChanged_OutboxFailureFailsSave(t *testing.T) {
	bus := events.NewBus(nil)
	subscribers.NewOrderStatusChanged(failingOutbox{inmemory.NewOutbox()}, discardLogger()).Register(bus)
	o, repo := newSavedOrder(t, bus)
	require.NoError(t, o.SetStatus(order.Done))

	err := repo.Save(t.Context(), o)

	require.ErrorContains(t, err, "outbox unavailable")
}

func TestOrderStatusChanged_RejectsForeignEvents(t *testing.T) {
	s := subscribers.NewOrderStatusChanged(inmemory.NewOutbox(), discardLogger())

	err := s.Handle(t.Context(), foreignEvent{})

	require.Error(t, err)
}

type foreignEvent struct{ kernel.DomainEvent }

func (foreignEvent) EventName() string { return "other.event" }
