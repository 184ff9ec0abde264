package recipient

import (
	"errors"
	"strings"
	"time"

	"fastfeet/internal/core/domain/model/kernel"
	"fastfeet/internal/pkg/errs"
	"fastfeet/internal/pkg/guard"
)

var (
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")

	// ErrRecipientIsNotConstructed is returned when using a zero-value Recipient.
	ErrRecipientIsNotConstructed = errors.New("Recipient must be created via NewRecipient or RestoreRecipient")
)

// Recipient is the person an order is addressed to. It keeps the identifiers of
// the orders addressed to it, in the order they were added and without
// duplicates; GetOrderDetails consults this list before revealing an order.
type Recipient struct {
	kernel.Entity

	name      string
	orderIDs  []kernel.UUID
	createdAt time.Time
	updatedAt *time.Time

	guard guard.ConstructorGuard
}

// NewRecipient creates a recipient with a fresh identity and no orders.
func NewRecipient(name string) (*Recipient, error) {
	r := &Recipient{
		Entity:    kernel.NewEntity(kernel.NewUUID()),
		createdAt: time.Now(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := r.setName(name); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRecipient rehydrates a recipient from storage.
func RestoreRecipient(
	id kernel.UUID,
	name string,
	orderIDs []kernel.UUID,
	createdAt time.Time,
	updatedAt *time.Time,
) (*Recipient, error) {
	r := &Recipient{
		Entity:    kernel.NewEntity(id),
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		r.setName(name),
		r.setOrderIDs(orderIDs),
	); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Recipient) Validate() error {
	if r == nil {
		return ErrRecipientIsNotConstructed
	}
	return r.guard.Validate(ErrRecipientIsNotConstructed)
}

// IsEqual compares two recipients by identity.
func (r *Recipient) IsEqual(other *Recipient) bool {
	return other != nil && r.ID().IsEqual(other.ID())
}

func (r *Recipient) Name() string {
	return r.name
}

// OrderIDs returns a copy of the known order identifiers.
func (r *Recipient) OrderIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(r.orderIDs))
	copy(out, r.orderIDs)
	return out
}

func (r *Recipient) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Recipient) UpdatedAt() *time.Time {
	return r.updatedAt
}

// AddOrder records orderID as addressed to the recipient. Adding an id that is
// already known is a no-op.
func (r *Recipient) AddOrder(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if r.HasOrder(orderID) {
		return nil
	}

	r.orderIDs = append(r.orderIDs, orderID)
	now := time.Now()
	r.updatedAt = &now
	return nil
}

// HasOrder reports whether orderID is addressed to the recipient.
func (r *Recipient) HasOrder(orderID kernel.UUID) bool {
	for _, id := range r.orderIDs {
		if id.IsEqual(orderID) {
			return true
		}
	}
	return false
}

func (r *Recipient) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	r.name = name
	return nil
}

func (r *Recipient) setOrderIDs(orderIDs []kernel.UUID) error {
	r.orderIDs = make([]kernel.UUID, 0, len(orderIDs))
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
		if !r.HasOrder(id) {
			r.orderIDs = append(r.orderIDs, id)
		}
	}
	return nil
}
