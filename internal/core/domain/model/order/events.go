package order

import (
	"time"

	"fastfeet/internal/core/domain/model/kernel"
)

// StatusChangedEventName is the name subscribers use to receive StatusChangedEvent.
const StatusChangedEventName = "order.status_changed"

// StatusChangedEvent is raised every time SetStatus accepts a status, including
// when the order re-enters the status it already had.
type StatusChangedEvent struct {
	orderID      kernel.UUID
	recipientID  kernel.UUID
	trackingCode string
	status       Status
	occurredAt   time.Time
}

func newStatusChangedEvent(o *Order, status Status, at time.Time) StatusChangedEvent {
	return StatusChangedEvent{
		orderID:      o.ID(),
		recipientID:  o.recipientID,
		trackingCode: o.trackingCode,
		status:       status,
		occurredAt:   at,
	}
}

func (e StatusChangedEvent) EventName() string {
	return StatusChangedEventName
}

func (e StatusChangedEvent) AggregateID() kernel.UUID {
	return e.orderID
}

func (e StatusChangedEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// RecipientID is the recipient the order is addressed to.
func (e StatusChangedEvent) RecipientID() kernel.UUID {
	return e.recipientID
}

func (e StatusChangedEvent) TrackingCode() string {
	return e.trackingCode
}

// Status is the status the order moved into.
func (e StatusChangedEvent) Status() Status {
	return e.status
}
