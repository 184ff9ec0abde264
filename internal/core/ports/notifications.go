package ports

import (
	"context"

	"fastfeet/internal/core/domain/model/notification"
)

// NotificationOutbox buffers notifications between the event that produced
// them and the job that sends them. Delivery is first-in first-out.
type NotificationOutbox interface {
	Enqueue(ctx context.Context, n notification.Notification) error

	// Dequeue removes and returns at most limit notifications. An empty outbox
	// yields an empty slice and no error.
	Dequeue(ctx context.Context, limit int) ([]notification.Notification, error)

	// Requeue puts notifications back at the head of the outbox, keeping their
	// relative order, so they are the next ones dequeued.
	Requeue(ctx context.Context, ns []notification.Notification) error
}

// NotificationSender delivers one notification to its recipient.
type NotificationSender interface {
	Send(ctx context.Context, n notification.Notification) error
}
