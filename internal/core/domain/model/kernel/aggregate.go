package kernel

// AggregateRoot is an Entity that stages domain events until its next commit.
// The queue is empty right after construction and right after a flush.
//
// AggregateRoot is not safe for concurrent use: an aggregate instance belongs
// to the unit of work that loaded it.
type AggregateRoot struct {
	Entity
	events []DomainEvent
}

// NewAggregateRoot returns an aggregate root with an empty event queue.
func NewAggregateRoot(id UUID) AggregateRoot {
	return AggregateRoot{Entity: NewEntity(id)}
}

// AddDomainEvent appends event to the pending queue.
func (a *AggregateRoot) AddDomainEvent(event DomainEvent) {
	a.events = append(a.events, event)
}

// DomainEvents returns the pending events in the order they were added.
func (a *AggregateRoot) DomainEvents() []DomainEvent {
	out := make([]DomainEvent, len(a.events))
	copy(out, a.events)
	return out
}

// ClearDomainEvents empties the pending queue.
func (a *AggregateRoot) ClearDomainEvents() {
	a.events = nil
}
