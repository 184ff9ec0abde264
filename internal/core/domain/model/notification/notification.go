// Package notification holds the message sent to a recipient when one of its
// orders changes status.
package notification

import (
	"errors"
	"fmt"
	"time"

	"fastfeet/internal/core/domain/model/kernel"
	"fastfeet/internal/core/domain/model/order"
)

// Notification is an immutable value. It is built from a StatusChangedEvent
// and carries everything a sender needs without loading the order again.
type Notification struct {
	id           kernel.UUID
	orderID      kernel.UUID
	recipientID  kernel.UUID
	trackingCode string
	status       order.Status
	occurredAt   time.Time
}

// FromStatusChanged builds the notification for evt.
func FromStatusChanged(evt order.StatusChangedEvent) Notification {
	return Notification{
		id:           kernel.NewUUID(),
		orderID:      evt.AggregateID(),
		recipientID:  evt.RecipientID(),
		trackingCode: evt.TrackingCode(),
		status:       evt.Status(),
		occurredAt:   evt.OccurredAt(),
	}
}

// Restore rebuilds a notification read back from an outbox.
func Restore(
	id, orderID, recipientID kernel.UUID,
	trackingCode string,
	status order.Status,
	occurredAt time.Time,
) (Notification, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		recipientID.Validate(),
		status.Validate(),
	); err != nil {
		return Notification{}, err
	}

	return Notification{
		id:           id,
		orderID:      orderID,
		recipientID:  recipientID,
		trackingCode: trackingCode,
		status:       status,
		occurredAt:   occurredAt,
	}, nil
}

func (n Notification) ID() kernel.UUID          { return n.id }
func (n Notification) OrderID() kernel.UUID     { return n.orderID }
func (n Notification) RecipientID() kernel.UUID { return n.recipientID }
func (n Notification) TrackingCode() string     { return n.trackingCode }
func (n Notification) Status() order.Status     { return n.status }
func (n Notification) OccurredAt() time.Time    { return n.occurredAt }

// Message renders the human readable text of the notification.
func (n Notification) Message() string {
	switch n.status {
	case order.Waiting:
		return fmt.Sprintf("Your order %s is waiting for pickup", n.trackingCode)
	case order.PickedUp:
		return fmt.Sprintf("Your order %s was picked up and is on its way", n.trackingCode)
	case order.Done:
		return fmt.Sprintf("Your order %s was delivered", n.trackingCode)
	default:
		return fmt.Sprintf("Your order %s changed status", n.trackingCode)
	}
}
