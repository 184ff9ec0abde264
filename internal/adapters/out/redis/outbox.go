package redis

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"fastfeet/internal/core/domain/model/notification"
	"fastfeet/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

var _ ports.NotificationOutbox = (*Outbox)(nil)

// Outbox keeps notifications in a Redis list: RPUSH to enqueue, LPOP to
// dequeue.
type Outbox struct {
	client goredis.Cmdable
	key    string
}

func NewOutbox(client goredis.Cmdable, key string) *Outbox {
	return &Outbox{client: client, key: key}
}

func (o *Outbox) Enqueue(ctx context.Context, n notification.Notification) error {
	payload, err := encode(n)
	if err != nil {
		return err
	}

	if err = o.client.RPush(ctx, o.key, payload).Err(); err != nil {
		return fmt.Errorf("failed to enqueue notification %s: %w", n.ID(), err)
	}
	return nil
}

// Dequeue pops up to limit notifications. Entries that cannot be decoded are
// dropped and reported in the returned error alongside the decoded ones.
func (o *Outbox) Dequeue(ctx context.Context, limit int) ([]notification.Notification, error) {
	if limit <= 0 {
		return []notification.Notification{}, nil
	}

	raw, err := o.client.LPopCount(ctx, o.key, limit).Result()
	if errors.Is(err, goredis.Nil) {
		return []notification.Notification{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to dequeue notifications: %w", err)
	}

	out := make([]notification.Notification, 0, len(raw))
	var decodeErrs []error
	for _, item := range raw {
		n, decodeErr := decode(item)
		if decodeErr != nil {
			decodeErrs = append(decodeErrs, decodeErr)
			continue
		}
		out = append(out, n)
	}

	return out, errors.Join(decodeErrs...)
}

// Requeue pushes ns back to the head of the list. LPUSH prepends its
// arguments one by one, so they are passed in reverse.
func (o *Outbox) Requeue(ctx context.Context, ns []notification.Notification) error {
	if len(ns) == 0 {
		return nil
	}

	payloads := make([]any, 0, len(ns))
	for _, n := range slices.Backward(ns) {
		payload, err := encode(n)
		if err != nil {
			return err
		}
		payloads = append(payloads, payload)
	}

	if err := o.client.LPush(ctx, o.key, payloads...).Err(); err != nil {
		return fmt.Errorf("failed to requeue notifications: %w", err)
	}
	return nil
}
