package order

import (
	"errors"
	"time"

	"fastfeet/internal/core/domain/model/kernel"
	"fastfeet/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	ErrCreatedAtIsRequired = errs.NewValueIsRequiredError("createdAt")
)

// Params carries the attributes a caller supplies when creating an order.
// Zero values of the optional fields are replaced with defaults by NewOrder:
//   - ID: a freshly generated identifier
//   - Status: Waiting
//   - TrackingCode: a generated code
//   - CreatedAt: the current time
//
// City, Neighborhood and Title are free text and are not validated here.
type Params struct {
	ID           kernel.UUID
	RecipientID  kernel.UUID
	City         string
	Neighborhood string
	Title        string
	Role         Role
	CourierID    *kernel.UUID
	Status       Status
	TrackingCode string
	AttachmentID string
	CreatedAt    time.Time
}

// RestoreParams is the full persisted state of an order.
type RestoreParams struct {
	Params
	PickedUpAt  *time.Time
	DeliveredAt *time.Time
	UpdatedAt   *time.Time
}

// Order is the aggregate root of the delivery lifecycle. Every accepted status
// change stages a StatusChangedEvent on the aggregate; the events are published
// by the repository when the order is saved.
//
// Invariants:
//   - status is always one of Waiting, PickedUp or Done
//   - pickedUpAt is set iff the order was moved into PickedUp at least once
//   - deliveredAt is set iff the order was moved into Done at least once
//   - updatedAt is refreshed by every mutating setter
type Order struct {
	kernel.AggregateRoot

	recipientID  kernel.UUID
	city         string
	neighborhood string
	title        string
	role         Role
	courierID    *kernel.UUID
	status       Status
	trackingCode string
	attachmentID string

	createdAt   time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time
	updatedAt   *time.Time

	isConstructed bool
}

// NewOrder creates an order from p, filling in defaults for the optional
// fields. A new order has an empty event queue: creation is not a status
// change.
func NewOrder(p Params) (*Order, error) {
	if p.ID == (kernel.UUID{}) {
		p.ID = kernel.NewUUID()
	}
	if p.Status == UnknownStatus {
		p.Status = Waiting
	}
	if p.TrackingCode == "" {
		p.TrackingCode = kernel.NewTrackingCode()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	return build(RestoreParams{Params: p})
}

// RestoreOrder rehydrates an order from persisted state. No defaults are
// applied and no events are raised.
func RestoreOrder(p RestoreParams) (*Order, error) {
	return build(p)
}

func build(p RestoreParams) (*Order, error) {
	o := &Order{
		AggregateRoot: kernel.NewAggregateRoot(p.ID),
		city:          p.City,
		neighborhood:  p.Neighborhood,
		title:         p.Title,
		attachmentID:  p.AttachmentID,
		createdAt:     p.CreatedAt,
		pickedUpAt:    p.PickedUpAt,
		deliveredAt:   p.DeliveredAt,
		updatedAt:     p.UpdatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		p.ID.Validate(),
		o.setRecipientID(p.RecipientID),
		o.setInitialRole(p.Role),
		o.setInitialStatus(p.Status),
		o.setInitialCourier(p.CourierID),
		o.setTrackingCode(p.TrackingCode),
		o.validateCreatedAt(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.ID().IsEqual(other.ID())
}

func (o *Order) RecipientID() kernel.UUID { return o.recipientID }
func (o *Order) City() string            { return o.city }
func (o *Order) Neighborhood() string    { return o.neighborhood }
func (o *Order) Title() string           { return o.title }
func (o *Order) Role() Role              { return o.role }
func (o *Order) Status() Status          { return o.status }
func (o *Order) TrackingCode() string    { return o.trackingCode }
func (o *Order) AttachmentID() string    { return o.attachmentID }
func (o *Order) CreatedAt() time.Time    { return o.createdAt }

// CourierID returns the assigned courier, or nil.
func (o *Order) CourierID() *kernel.UUID { return o.courierID }

func (o *Order) PickedUpAt() *time.Time  { return o.pickedUpAt }
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }
func (o *Order) UpdatedAt() *time.Time   { return o.updatedAt }

// IsAssignedTo reports whether courierID is the courier of the order.
func (o *Order) IsAssignedTo(courierID kernel.UUID) bool {
	return o.courierID != nil && o.courierID.IsEqual(courierID)
}

// SetStatus moves the order into status. An invalid value is rejected and
// leaves the order untouched. A valid value, including the current status,
// stages a StatusChangedEvent and refreshes updatedAt; moving into PickedUp or
// Done refreshes pickedUpAt or deliveredAt respectively.
func (o *Order) SetStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	now := time.Now()
	o.AddDomainEvent(newStatusChangedEvent(o, status, now))
	o.status = status

	switch status {
	case PickedUp:
		o.pickedUpAt = &now
	case Done:
		o.deliveredAt = &now
	}

	o.touch(now)
	return nil
}

// SetRole changes who may act on the order. An invalid value is rejected.
func (o *Order) SetRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	o.role = role
	o.touch(time.Now())
	return nil
}

// SetCourierID assigns the order to a courier.
func (o *Order) SetCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	o.courierID = &courierID
	o.touch(time.Now())
	return nil
}

func (o *Order) SetTitle(title string) {
	o.title = title
	o.touch(time.Now())
}

// SetAttachmentID records the proof of delivery.
func (o *Order) SetAttachmentID(attachmentID string) {
	o.attachmentID = attachmentID
	o.touch(time.Now())
}

func (o *Order) touch(at time.Time) {
	o.updatedAt = &at
}

func (o *Order) setRecipientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("recipientID", err)
	}
	o.recipientID = id
	return nil
}

func (o *Order) setInitialRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	o.role = role
	return nil
}

func (o *Order) setInitialStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setInitialCourier(courierID *kernel.UUID) error {
	if courierID == nil {
		return nil
	}
	if err := courierID.Validate(); err != nil {
		return err
	}
	id := *courierID
	o.courierID = &id
	return nil
}

func (o *Order) setTrackingCode(code string) error {
	code = kernel.NormalizeTrackingCode(code)
	if code == "" {
		return kernel.ErrTrackingCodeIsRequired
	}
	o.trackingCode = code
	return nil
}

func (o *Order) validateCreatedAt() error {
	if o.createdAt.IsZero() {
		return ErrCreatedAtIsRequired
	}
	return nil
}
