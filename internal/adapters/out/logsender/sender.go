// Package logsender delivers notifications by writing them to the structured
// log. It is the sender used when no message broker is configured.
package logsender

import (
	"context"
	"log/slog"

	"fastfeet/internal/core/domain/model/notification"
	"fastfeet/internal/core/ports"
)

var _ ports.NotificationSender = (*Sender)(nil)

type Sender struct {
	logger *slog.Logger
}

func NewSender(logger *slog.Logger) *Sender {
	return &Sender{logger: logger.With("component", "NotificationSender")}
}

func (s *Sender) Send(ctx context.Context, n notification.Notification) error {
	s.logger.InfoContext(ctx, n.Message(),
		"notificationId", n.ID().String(),
		"orderId", n.OrderID().String(),
		"recipientId", n.RecipientID().String(),
		"trackingCode", n.TrackingCode(),
		"status", n.Status().String(),
		"occurredAt", n.OccurredAt(),
	)
	return nil
}
