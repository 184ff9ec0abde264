package ports

import (
	"context"

	"fastfeet/internal/core/domain/model/kernel"
	"fastfeet/internal/core/domain/model/recipient"
)

// RecipientRepository is the persistence contract of the Recipient aggregate.
type RecipientRepository interface {
	FindByID(ctx context.Context, id kernel.UUID) (*recipient.Recipient, error)
	Create(ctx context.Context, aggregate *recipient.Recipient) error
	Save(ctx context.Context, aggregate *recipient.Recipient) error
}
