// Package recipientrepo persists the Recipient aggregate with GORM. The known
// order identifiers are kept in a text[] column.
package recipientrepo

import (
	"time"

	"fastfeet/internal/core/domain/model/kernel"
	"fastfeet/internal/core/domain/model/recipient"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type RecipientDTO struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name      string         `gorm:"type:varchar(255);not null"`
	OrderIDs  pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime:false"`
	UpdatedAt *time.Time     `gorm:"autoUpdateTime:false"`
}

func (RecipientDTO) TableName() string {
	return "recipients"
}

func fromDomain(r *recipient.Recipient) RecipientDTO {
	orderIDs := make(pq.StringArray, 0, len(r.OrderIDs()))
	for _, id := range r.OrderIDs() {
		orderIDs = append(orderIDs, id.String())
	}

	return RecipientDTO{
		ID:        r.ID().Bytes(),
		Name:      r.Name(),
		OrderIDs:  orderIDs,
		CreatedAt: r.CreatedAt(),
		UpdatedAt: r.UpdatedAt(),
	}
}

func toDomain(dto RecipientDTO) (*recipient.Recipient, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderIDs := make([]kernel.UUID, 0, len(dto.OrderIDs))
	for _, raw := range dto.OrderIDs {
		orderID, parseErr := kernel.UUIDFromString(raw)
		if parseErr != nil {
			return nil, parseErr
		}
		orderIDs = append(orderIDs, orderID)
	}

	return recipient.RestoreRecipient(id, dto.Name, orderIDs, dto.CreatedAt, dto.UpdatedAt)
}
