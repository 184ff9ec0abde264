package commands

import (
	"context"
	"errors"
	"fmt"

	"fastfeet/internal/core/ports"
)

type SendPendingNotificationsCommandHandler struct {
	outbox ports.NotificationOutbox
	sender ports.NotificationSender
}

func NewSendPendingNotificationsCommandHandler(
	outbox ports.NotificationOutbox,
	sender ports.NotificationSender,
) SendPendingNotificationsCommandHandler {
	return SendPendingNotificationsCommandHandler{
		outbox: outbox,
		sender: sender,
	}
}

// Handle sends one batch and reports how many notifications were delivered.
// On the first sending failure the failed notification and the rest of the
// batch go back to the head of the outbox and the batch stops.
func (h SendPendingNotificationsCommandHandler) Handle(
	ctx context.Context,
	cmd SendPendingNotificationsCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	// Dequeue may return the readable part of a batch together with an error.
	batch, dequeueErr := h.outbox.Dequeue(ctx, cmd.BatchSize())

	for i, n := range batch {
		if err := h.sender.Send(ctx, n); err != nil {
			sendErr := fmt.Errorf("send notification %s: %w", n.ID(), err)
			if requeueErr := h.outbox.Requeue(ctx, batch[i:]); requeueErr != nil {
				return i, errors.Join(dequeueErr, sendErr, fmt.Errorf("requeue notifications: %w", requeueErr))
			}
			return i, errors.Join(dequeueErr, sendErr)
		}
	}

	return len(batch), dequeueErr
}
