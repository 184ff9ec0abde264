// Package kernel provides the building blocks shared by every aggregate of the
// order tracking domain:
//   - UUID: the identity value object (generated, or wrapped from an existing token)
//   - Entity: identity holder with identity-based equality
//   - AggregateRoot: an Entity that stages DomainEvents until commit
//   - DomainEvent: the contract of events delivered by the event bus
//   - tracking codes: stable external lookup keys for orders
package kernel
