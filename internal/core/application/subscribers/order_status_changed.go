// Package subscribers holds the reactions to domain events.
package subscribers

import (
	"context"
	"fmt"
	"log/slog"

	"fastfeet/internal/core/domain/events"
	"fastfeet/internal/core/domain/model/kernel"
	"fastfeet/internal/core/domain/model/notification"
	"fastfeet/internal/core/domain/model/order"
	"fastfeet/internal/core/ports"
)

// OrderStatusChanged turns every status change into a notification for the
// recipient and parks it in the outbox until the notification job sends it.
type OrderStatusChanged struct {
	outbox ports.NotificationOutbox
	logger *slog.Logger
}

func NewOrderStatusChanged(outbox ports.NotificationOutbox, logger *slog.Logger) *OrderStatusChanged {
	return &OrderStatusChanged{
		outbox: outbox,
		logger: logger.With("component", "OrderStatusChangedSubscriber"),
	}
}

// Register subscribes the handler to status changes of every order.
func (s *OrderStatusChanged) Register(bus *events.Bus) {
	bus.Subscribe(order.StatusChangedEventName, s.Handle)
}

func (s *OrderStatusChanged) Handle(ctx context.Context, event kernel.DomainEvent) error {
	evt, ok := event.(order.StatusChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event %T for %s", event, order.StatusChangedEventName)
	}

	n := notification.FromStatusChanged(evt)
	if err := s.outbox.Enqueue(ctx, n); err != nil {
		return fmt.Errorf("enqueue notification for order %s: %w", evt.AggregateID(), err)
	}

	s.logger.DebugContext(ctx, "notification enqueued",
		"orderId", evt.AggregateID().String(), "status", evt.Status().String())
	return nil
}
