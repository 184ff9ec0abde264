package redis

import (
	"context"
	"fmt"

	"fastfeet/internal/core/domain/model/notification"
	"fastfeet/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

var _ ports.NotificationSender = (*Sender)(nil)

// Sender publishes notifications as JSON Message values on a pub/sub channel.
type Sender struct {
	client  goredis.Cmdable
	channel string
}

func NewSender(client goredis.Cmdable, channel string) *Sender {
	return &Sender{client: client, channel: channel}
}

func (s *Sender) Send(ctx context.Context, n notification.Notification) error {
	payload, err := encode(n)
	if err != nil {
		return err
	}

	if err = s.client.Publish(ctx, s.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification %s: %w", n.ID(), err)
	}
	return nil
}
