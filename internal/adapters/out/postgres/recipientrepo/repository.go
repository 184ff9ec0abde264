package recipientrepo

import (
	"context"
	"errors"

	"fastfeet/internal/core/domain/model/kernel"
	"fastfeet/internal/core/domain/model/recipient"
	"fastfeet/internal/core/ports"
	"fastfeet/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.RecipientRepository = (*GormRecipientRepository)(nil)

// GormRecipientRepository implements ports.RecipientRepository using GORM.
type GormRecipientRepository struct {
	db *gorm.DB
}

func NewGormRecipientRepository(db *gorm.DB) *GormRecipientRepository {
	return &GormRecipientRepository{db: db}
}

func (r *GormRecipientRepository) FindByID(ctx context.Context, id kernel.UUID) (*recipient.Recipient, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RecipientDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("recipient", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormRecipientRepository) Create(ctx context.Context, aggregate *recipient.Recipient) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormRecipientRepository) Save(ctx context.Context, aggregate *recipient.Recipient) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&RecipientDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("recipient", aggregate.ID().String())
	}

	return nil
}
