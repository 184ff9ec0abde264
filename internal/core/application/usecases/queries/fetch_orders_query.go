// Package queries contains the read-only operations. Handlers go through the
// repository ports so the same rules apply to every storage backend.
package queries

import (
	"errors"
	"strings"

	"fastfeet/internal/core/domain/model/kernel"
	"fastfeet/internal/core/domain/model/order"
	"fastfeet/internal/core/ports"
	"fastfeet/internal/pkg/errs"
	"fastfeet/internal/pkg/guard"
)

var (
	ErrFetchOrdersQueryIsNotConstructed = errors.New(
		"FetchOrdersQuery must be created via NewFetchOrdersQuery constructor",
	)
	ErrCityIsRequired = errs.NewValueIsRequiredError("city")
)

// FetchOrdersQuery selects one page of a courier's orders in a city. The same
// query drives both the awaiting and the completed listings.
//
// Example:
//
//	query, err := NewFetchOrdersQuery(order.Courier, courierID, "Springfield", 1)
//	if err != nil {
//	    return err
//	}
//	orders, err := NewFetchAwaitingOrdersQueryHandler(repo).Handle(ctx, query)
type FetchOrdersQuery struct {
	callerRole order.Role
	courierID  kernel.UUID
	city       string
	page       ports.PaginationParams

	guard guard.ConstructorGuard
}

// NewFetchOrdersQuery validates the caller and turns the 1-indexed page into
// pagination parameters. Pages below 1 are out of range.
func NewFetchOrdersQuery(callerRole order.Role, courierID kernel.UUID, city string, page int) (FetchOrdersQuery, error) {
	city = strings.TrimSpace(city)
	var cityErr error
	if city == "" {
		cityErr = ErrCityIsRequired
	}

	pagination, pageErr := ports.NewPaginationParams(page)

	if err := errors.Join(
		callerRole.Validate(),
		courierID.Validate(),
		cityErr,
		pageErr,
	); err != nil {
		return FetchOrdersQuery{}, err
	}

	return FetchOrdersQuery{
		callerRole: callerRole,
		courierID:  courierID,
		city:       city,
		page:       pagination,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q FetchOrdersQuery) Validate() error {
	return q.guard.Validate(ErrFetchOrdersQueryIsNotConstructed)
}

func (q FetchOrdersQuery) CallerRole() order.Role       { return q.callerRole }
func (q FetchOrdersQuery) CourierID() kernel.UUID       { return q.courierID }
func (q FetchOrdersQuery) City() string                 { return q.city }
func (q FetchOrdersQuery) Page() ports.PaginationParams { return q.page }

func (q FetchOrdersQuery) requireCourier(action string) error {
	if q.callerRole != order.Courier {
		return errs.NewActionIsNotAllowedErrorWithCause(action,
			errors.New("only couriers list their orders"))
	}
	return nil
}
