package http

import (
	"net/http"

	"fastfeet/internal/core/domain/model/kernel"
	"fastfeet/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

// Caller is the authenticated user as forwarded by the gateway.
type Caller struct {
	ID   kernel.UUID
	Role order.Role
}

// callerFrom reads the caller headers. Missing or malformed headers answer 401.
func callerFrom(c echo.Context) (Caller, error) {
	rawID := c.Request().Header.Get(HeaderUserID)
	rawRole := c.Request().Header.Get(HeaderUserRole)
	if rawID == "" || rawRole == "" {
		return Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "caller identity is missing")
	}

	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "caller id is malformed")
	}

	role, err := order.ParseRole(rawRole)
	if err != nil {
		return Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "caller role is unknown")
	}

	return Caller{ID: id, Role: role}, nil
}
