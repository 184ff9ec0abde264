package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fastfeet/internal/adapters/out/inmemory"
	"fastfeet/internal/core/application/usecases/commands"
	"fastfeet/internal/core/domain/model/kernel"
	"fastfeet/internal/core/domain/model/notification"
	"fastfeet/internal/core/domain/model/order"
	"fastfeet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newNotification(t *testing.T, status order.Status) notification.Notification {
	t.Helper()
	n, err := notification.Restore(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "ABCDEF012345", status, time.Now())
	require.NoError(t, err)
	return n
}

func enqueueAll(t *testing.T, outbox *inmemory.Outbox, ns ...notification.Notification) {
	t.Helper()
	for _, n := range ns {
		require.NoError(t, outbox.Enqueue(context.Background(), n))
	}
}

func TestNewSendPendingNotificationsCommand(t *testing.T) {
	_, err := commands.NewSendPendingNotificationsCommand(0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	cmd, err := commands.NewSendPendingNotificationsCommand(5)
	require.NoError(t, err)
	assert.Equal(t, 5, cmd.BatchSize())
}

func TestSendPendingNotificationsCommandHandler_Handle(t *testing.T) {
	t.Run("sends_batch_in_order", func(t *testing.T) {
		// Given
		ctx := t.Context()
		outbox := inmemory.NewOutbox()
		a, b, c := newNotification(t, order.Waiting), newNotification(t, order.PickedUp), newNotification(t, order.Done)
		enqueueAll(t, outbox, a, b, c)

		sender := new(MockNotificationSender)
		mock.InOrder(
			sender.On("Send", ctx, a).Return(nil).Once(),
			sender.On("Send", ctx, b).Return(nil).Once(),
		)
		cmd, err := commands.NewSendPendingNotificationsCommand(2)
		require.NoError(t, err)

		// When
		sent, err := commands.NewSendPendingNotificationsCommandHandler(outbox, sender).Handle(ctx, cmd)

		// Then
		require.NoError(t, err)
		assert.Equal(t, 2, sent)
		assert.Equal(t, 1, outbox.Len())
		sender.AssertExpectations(t)
	})

	t.Run("empty_outbox", func(t *testing.T) {
		sender := new(MockNotificationSender)
		cmd, err := commands.NewSendPendingNotificationsCommand(10)
		require.NoError(t, err)

		sent, err := commands.NewSendPendingNotificationsCommandHandler(inmemory.NewOutbox(), sender).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Zero(t, sent)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("failure_requeues_rest_of_batch", func(t *testing.T) {
		// Given
		ctx := t.Context()
		outbox := inmemory.NewOutbox()
		a, b, c, d := newNotification(t, order.Waiting), newNotification(t, order.PickedUp),
			newNotification(t, order.Done), newNotification(t, order.Waiting)
		enqueueAll(t, outbox, a, b, c, d)

		sender := new(MockNotificationSender)
		mock.InOrder(
			sender.On("Send", ctx, a).Return(nil).Once(),
			sender.On("Send", ctx, b).Return(errors.New("unreachable")).Once(),
		)
		cmd, err := commands.NewSendPendingNotificationsCommand(3)
		require.NoError(t, err)

		// When
		sent, err := commands.NewSendPendingNotificationsCommandHandler(outbox, sender).Handle(ctx, cmd)

		// Then
		require.ErrorContains(t, err, "unreachable")
		assert.Equal(t, 1, sent)
		sender.AssertNotCalled(t, "Send", ctx, c)

		rest, err := outbox.Dequeue(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, []notification.Notification{b, c, d}, rest)
	})
}
