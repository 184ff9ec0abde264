// Package order implements the Order aggregate of the delivery tracker.
//
// An order is addressed to a recipient, carries a city and a neighborhood used
// by couriers to find work near them, and moves through the lifecycle
// Waiting -> PickedUp -> Done. The aggregate records when it was picked up and
// delivered, and stages a StatusChangedEvent every time its status is set so
// that interested parties (notifications, audit) can react after the order is
// persisted.
//
// Orders are created with NewOrder, which applies defaults, or rehydrated with
// RestoreOrder from stored state. Both return fully validated aggregates.
package order
