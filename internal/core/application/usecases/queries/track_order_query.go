package queries

import (
	"context"
	"errors"

	"fastfeet/internal/core/domain/model/kernel"
	"fastfeet/internal/core/domain/model/order"
	"fastfeet/internal/core/ports"
	"fastfeet/internal/pkg/guard"
)

var ErrTrackOrderQueryIsNotConstructed = errors.New(
	"TrackOrderQuery must be created via NewTrackOrderQuery constructor",
)

// TrackOrderQuery resolves an order from the code handed to its recipient.
// Codes are matched case-insensitively.
type TrackOrderQuery struct {
	trackingCode string

	guard guard.ConstructorGuard
}

func NewTrackOrderQuery(trackingCode string) (TrackOrderQuery, error) {
	code := kernel.NormalizeTrackingCode(trackingCode)
	if code == "" {
		return TrackOrderQuery{}, kernel.ErrTrackingCodeIsRequired
	}
	return TrackOrderQuery{trackingCode: code, guard: guard.NewConstructorGuard()}, nil
}

func (q TrackOrderQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
}

func (q TrackOrderQuery) TrackingCode() string {
	return q.trackingCode
}

type TrackOrderQueryHandler struct {
	repo ports.OrderRepository
}

func NewTrackOrderQueryHandler(repo ports.OrderRepository) TrackOrderQueryHandler {
	return TrackOrderQueryHandler{repo: repo}
}

func (h TrackOrderQueryHandler) Handle(ctx context.Context, query TrackOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.repo.FindByTrackingCode(ctx, query.TrackingCode())
}
