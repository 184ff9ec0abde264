package orderrepo

import (
	"context"
	"errors"

	"fastfeet/internal/core/domain/events"
	"fastfeet/internal/core/domain/model/kernel"
	"fastfeet/internal/core/domain/model/order"
	"fastfeet/internal/core/ports"
	"fastfeet/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.OrderRepository = (*GormOrderRepository)(nil)

// GormOrderRepository implements ports.OrderRepository using GORM. Saved
// aggregates are handed to the tracker, which either dispatches their events
// at once or defers them to the end of the surrounding unit of work.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker events.Tracker
}

func NewGormOrderRepository(db *gorm.DB, tracker events.Tracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) FindByTrackingCode(ctx context.Context, code string) (*order.Order, error) {
	code = kernel.NormalizeTrackingCode(code)

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "tracking_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trackingCode", code)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) FindManyRecentByCityAwaitingOrInProgress(
	ctx context.Context, city string, courierID kernel.UUID, page ports.PaginationParams,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("city = ? AND (status = ? OR (status = ? AND courier_id = ?))",
			city, int(order.Waiting), int(order.PickedUp), courierID.Bytes()).
		Order("created_at DESC").
		Limit(page.Limit()).
		Offset(page.Offset()).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func (r *GormOrderRepository) FindManyRecentByCityCompleted(
	ctx context.Context, city string, courierID kernel.UUID, page ports.PaginationParams,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("city = ? AND status = ? AND courier_id = ?", city, int(order.Done), courierID.Bytes()).
		Order("created_at DESC").
		Limit(page.Limit()).
		Offset(page.Offset()).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func (r *GormOrderRepository) Create(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Save overwrites every column of the stored row, including zero values.
func (r *GormOrderRepository) Save(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	return r.tracker.TrackAggregate(ctx, aggregate)
}
