// Package inmemory keeps orders and recipients in process memory. It is the
// reference implementation of the repository contracts and backs the
// STORAGE=memory mode and the HTTP tests.
//
// The Store holds copies of aggregate state, never the aggregates themselves.
// Every read rehydrates a fresh aggregate owned by the caller, and only Create,
// Save or a committed unit of work replace the stored copy.
package inmemory

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"fastfeet/internal/core/domain/model/kernel"
	"fastfeet/internal/core/domain/model/order"
	"fastfeet/internal/core/domain/model/recipient"
	"fastfeet/internal/core/ports"
	"fastfeet/internal/pkg/errs"
)

// Store is the shared state behind the repositories and units of work.
type Store struct {
	mu         sync.RWMutex
	orders     []order.RestoreParams
	recipients map[kernel.UUID]recipientState
}

func NewStore() *Store {
	return &Store{
		recipients: make(map[kernel.UUID]recipientState),
	}
}

type recipientState struct {
	id        kernel.UUID
	name      string
	orderIDs  []kernel.UUID
	createdAt time.Time
	updatedAt *time.Time
}

// orderIndex must be called with mu held.
func (s *Store) orderIndex(id kernel.UUID) int {
	return indexOfOrder(s.orders, id)
}

// snapshot returns the stored order states in insertion order. Callers hold mu.
func (s *Store) snapshot() []order.RestoreParams {
	return slices.Clone(s.orders)
}

func indexOfOrder(states []order.RestoreParams, id kernel.UUID) int {
	return slices.IndexFunc(states, func(s order.RestoreParams) bool {
		return s.ID.IsEqual(id)
	})
}

func orderState(o *order.Order) order.RestoreParams {
	return order.RestoreParams{
		Params: order.Params{
			ID:           o.ID(),
			RecipientID:  o.RecipientID(),
			City:         o.City(),
			Neighborhood: o.Neighborhood(),
			Title:        o.Title(),
			Role:         o.Role(),
			CourierID:    clonePtr(o.CourierID()),
			Status:       o.Status(),
			TrackingCode: o.TrackingCode(),
			AttachmentID: o.AttachmentID(),
			CreatedAt:    o.CreatedAt(),
		},
		PickedUpAt:  clonePtr(o.PickedUpAt()),
		DeliveredAt: clonePtr(o.DeliveredAt()),
		UpdatedAt:   clonePtr(o.UpdatedAt()),
	}
}

func restoreOrder(state order.RestoreParams) (*order.Order, error) {
	state.CourierID = clonePtr(state.CourierID)
	state.PickedUpAt = clonePtr(state.PickedUpAt)
	state.DeliveredAt = clonePtr(state.DeliveredAt)
	state.UpdatedAt = clonePtr(state.UpdatedAt)
	return order.RestoreOrder(state)
}

func restoreOrders(states []order.RestoreParams) ([]*order.Order, error) {
	out := make([]*order.Order, 0, len(states))
	for _, state := range states {
		o, err := restoreOrder(state)
		if err != nil {
			return nil, fmt.Errorf("restore order %s: %w", state.ID, err)
		}
		out = append(out, o)
	}
	return out, nil
}

func recipientStateOf(r *recipient.Recipient) recipientState {
	return recipientState{
		id:        r.ID(),
		name:      r.Name(),
		orderIDs:  r.OrderIDs(),
		createdAt: r.CreatedAt(),
		updatedAt: clonePtr(r.UpdatedAt()),
	}
}

func restoreRecipient(state recipientState) (*recipient.Recipient, error) {
	return recipient.RestoreRecipient(
		state.id,
		state.name,
		slices.Clone(state.orderIDs),
		state.createdAt,
		clonePtr(state.updatedAt),
	)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func errOrderAlreadyExists(id kernel.UUID) error {
	return errs.NewValueIsInvalidErrorWithCause("order", fmt.Errorf("order %s already exists", id))
}

func errRecipientAlreadyExists(id kernel.UUID) error {
	return errs.NewValueIsInvalidErrorWithCause("recipient", fmt.Errorf("recipient %s already exists", id))
}

func findOrder(states []order.RestoreParams, match func(order.RestoreParams) bool) (*order.Order, bool, error) {
	idx := slices.IndexFunc(states, match)
	if idx < 0 {
		return nil, false, nil
	}
	o, err := restoreOrder(states[idx])
	return o, err == nil, err
}

func byID(id kernel.UUID) func(order.RestoreParams) bool {
	return func(s order.RestoreParams) bool { return s.ID.IsEqual(id) }
}

func byTrackingCode(code string) func(order.RestoreParams) bool {
	return func(s order.RestoreParams) bool { return s.TrackingCode == code }
}

func isAssignedTo(s order.RestoreParams, courierID kernel.UUID) bool {
	return s.CourierID != nil && s.CourierID.IsEqual(courierID)
}

// awaitingOrInProgress keeps the Waiting orders of city and the PickedUp
// orders of courierID in city.
func awaitingOrInProgress(
	states []order.RestoreParams, city string, courierID kernel.UUID, page ports.PaginationParams,
) ([]*order.Order, error) {
	return restoreOrders(paginate(filter(states, func(s order.RestoreParams) bool {
		if s.City != city {
			return false
		}
		switch s.Status {
		case order.Waiting:
			return true
		case order.PickedUp:
			return isAssignedTo(s, courierID)
		default:
			return false
		}
	}), page))
}

func completed(
	states []order.RestoreParams, city string, courierID kernel.UUID, page ports.PaginationParams,
) ([]*order.Order, error) {
	return restoreOrders(paginate(filter(states, func(s order.RestoreParams) bool {
		return s.Status == order.Done && s.City == city && isAssignedTo(s, courierID)
	}), page))
}

func filter(states []order.RestoreParams, keep func(order.RestoreParams) bool) []order.RestoreParams {
	out := make([]order.RestoreParams, 0, len(states))
	for _, s := range states {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

// paginate sorts by createdAt descending and cuts the requested page.
func paginate(states []order.RestoreParams, page ports.PaginationParams) []order.RestoreParams {
	slices.SortStableFunc(states, func(a, b order.RestoreParams) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	start := page.Offset()
	if start < 0 || start >= len(states) {
		return nil
	}
	end := min(start+page.Limit(), len(states))
	return states[start:end]
}
