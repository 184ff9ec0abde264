package kernel

import "time"

// DomainEvent is an immutable record of something that happened to an
// aggregate. Events are staged on the aggregate and delivered by the event bus
// only once the aggregate has been persisted.
type DomainEvent interface {
	// EventName identifies the kind of event; subscribers register by name.
	EventName() string
	// AggregateID is the identity of the aggregate that raised the event.
	AggregateID() UUID
	// OccurredAt is when the change was made, not when it was delivered.
	OccurredAt() time.Time
}
