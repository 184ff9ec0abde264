package order

import (
	"fmt"
	"strings"

	"fastfeet/internal/pkg/errs"
)

// Role names who may act on an order. The same enumeration describes the role
// of a caller.
type Role int

const (
	UnknownRole Role = iota
	Admin
	Courier
)

// ErrRoleIsInvalid is wrapped by every role rejection. It unwraps to
// errs.ErrValueIsInvalid.
var ErrRoleIsInvalid = errs.NewValueIsInvalidError("role")

var roleNames = map[Role]string{
	Admin:   "ADMIN",
	Courier: "COURIER",
}

// ParseRole converts "ADMIN" or "COURIER" (case-insensitive) into a Role.
func ParseRole(s string) (Role, error) {
	needle := strings.ToUpper(strings.TrimSpace(s))
	for role, name := range roleNames {
		if name == needle {
			return role, nil
		}
	}
	return UnknownRole, fmt.Errorf("%w: %q is not a valid role", ErrRoleIsInvalid, s)
}

func (r Role) Validate() error {
	if _, ok := roleNames[r]; !ok {
		return fmt.Errorf("%w: %d is not a valid role", ErrRoleIsInvalid, int(r))
	}
	return nil
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "UNKNOWN"
}
