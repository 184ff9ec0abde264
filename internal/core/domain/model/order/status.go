package order

import (
	"fmt"
	"strings"

	"fastfeet/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
//	Waiting ──> PickedUp ──> Done
//
// The aggregate does not guard the direction of a transition: any valid
// status may follow any other, and re-entering a status is allowed. Only
// values outside of the enumeration are rejected.
type Status int

const (
	// UnknownStatus is the zero value and is never a valid order status.
	UnknownStatus Status = iota

	// Waiting is the initial status: the order awaits pickup by a courier.
	Waiting

	// PickedUp means a courier collected the order and is delivering it.
	PickedUp

	// Done means the order was delivered.
	Done
)

// ErrStatusIsInvalid is wrapped by every status rejection. It unwraps to
// errs.ErrValueIsInvalid.
var ErrStatusIsInvalid = errs.NewValueIsInvalidError("status")

var statusNames = map[Status]string{
	Waiting:  "WAITING",
	PickedUp: "PICKED_UP",
	Done:     "DONE",
}

// ParseStatus converts the external representation ("WAITING", "PICKED_UP",
// "DONE", case-insensitive) into a Status.
func ParseStatus(s string) (Status, error) {
	needle := strings.ToUpper(strings.TrimSpace(s))
	for status, name := range statusNames {
		if name == needle {
			return status, nil
		}
	}
	return UnknownStatus, fmt.Errorf("%w: %q is not a valid status", ErrStatusIsInvalid, s)
}

// Validate returns a ValueIsInvalidError unless s is Waiting, PickedUp or Done.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return fmt.Errorf("%w: %d is not a valid status", ErrStatusIsInvalid, int(s))
	}
	return nil
}

// String returns the external name of the status, or "UNKNOWN".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}
