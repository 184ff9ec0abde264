// Package orderrepo persists the Order aggregate with GORM.
package orderrepo

import (
	"time"

	"fastfeet/internal/core/domain/model/kernel"
	"fastfeet/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the row of the orders table. Timestamps are owned by the
// aggregate, so GORM's automatic time tracking is disabled.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RecipientID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	City         string     `gorm:"type:varchar(255);not null;index:idx_orders_city_status"`
	Neighborhood string     `gorm:"type:varchar(255);not null"`
	Title        string     `gorm:"type:varchar(255);not null"`
	Role         int        `gorm:"type:smallint;not null"`
	CourierID    *uuid.UUID `gorm:"type:uuid;index"`
	Status       int        `gorm:"type:smallint;not null;index:idx_orders_city_status"`
	TrackingCode string     `gorm:"type:varchar(32);not null;uniqueIndex"`
	AttachmentID string     `gorm:"type:varchar(255);not null;default:''"`
	CreatedAt    time.Time  `gorm:"not null;index;autoCreateTime:false"`
	PickedUpAt   *time.Time
	DeliveredAt  *time.Time
	UpdatedAt    *time.Time `gorm:"autoUpdateTime:false"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := o.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	return OrderDTO{
		ID:           o.ID().Bytes(),
		RecipientID:  o.RecipientID().Bytes(),
		City:         o.City(),
		Neighborhood: o.Neighborhood(),
		Title:        o.Title(),
		Role:         int(o.Role()),
		CourierID:    courierID,
		Status:       int(o.Status()),
		TrackingCode: o.TrackingCode(),
		AttachmentID: o.AttachmentID(),
		CreatedAt:    o.CreatedAt(),
		PickedUpAt:   o.PickedUpAt(),
		DeliveredAt:  o.DeliveredAt(),
		UpdatedAt:    o.UpdatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	return order.RestoreOrder(order.RestoreParams{
		Params: order.Params{
			ID:           id,
			RecipientID:  recipientID,
			City:         dto.City,
			Neighborhood: dto.Neighborhood,
			Title:        dto.Title,
			Role:         order.Role(dto.Role),
			CourierID:    courierID,
			Status:       order.Status(dto.Status),
			TrackingCode: dto.TrackingCode,
			AttachmentID: dto.AttachmentID,
			CreatedAt:    dto.CreatedAt,
		},
		PickedUpAt:  dto.PickedUpAt,
		DeliveredAt: dto.DeliveredAt,
		UpdatedAt:   dto.UpdatedAt,
	})
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
