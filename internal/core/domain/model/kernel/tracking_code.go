package kernel

import (
	"strings"

	"fastfeet/internal/pkg/errs"

	"github.com/google/uuid"
)

const trackingCodeLength = 12

// ErrTrackingCodeIsRequired is returned when restoring an order without a code.
var ErrTrackingCodeIsRequired = errs.NewValueIsRequiredError("tracking code")

// NewTrackingCode returns a random external lookup key made of upper-case hex
// characters, e.g. "9F1C03A7B2E4".
func NewTrackingCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:trackingCodeLength])
}

// NormalizeTrackingCode trims and upper-cases a code typed by a person.
func NormalizeTrackingCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
