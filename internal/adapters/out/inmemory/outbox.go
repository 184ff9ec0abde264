package inmemory

import (
	"context"
	"slices"
	"sync"

	"fastfeet/internal/core/domain/model/notification"
	"fastfeet/internal/core/ports"
)

var _ ports.NotificationOutbox = (*Outbox)(nil)

// Outbox is a FIFO queue of notifications guarded by a mutex.
type Outbox struct {
	mu    sync.Mutex
	items []notification.Notification
}

func NewOutbox() *Outbox {
	return &Outbox{}
}

func (o *Outbox) Enqueue(_ context.Context, n notification.Notification) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.items = append(o.items, n)
	return nil
}

func (o *Outbox) Dequeue(_ context.Context, limit int) ([]notification.Notification, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	n := min(max(limit, 0), len(o.items))
	out := slices.Clone(o.items[:n])
	o.items = o.items[n:]
	return out, nil
}

func (o *Outbox) Requeue(_ context.Context, ns []notification.Notification) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.items = append(slices.Clone(ns), o.items...)
	return nil
}

// Len returns the number of queued notifications.
func (o *Outbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return len(o.items)
}
