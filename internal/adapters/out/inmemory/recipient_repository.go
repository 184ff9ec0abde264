package inmemory

import (
	"context"

	"fastfeet/internal/core/domain/model/kernel"
	"fastfeet/internal/core/domain/model/recipient"
	"fastfeet/internal/core/ports"
	"fastfeet/internal/pkg/errs"
)

var _ ports.RecipientRepository = (*RecipientRepository)(nil)

type RecipientRepository struct {
	store *Store
}

func NewRecipientRepository(store *Store) *RecipientRepository {
	return &RecipientRepository{store: store}
}

func (r *RecipientRepository) FindByID(_ context.Context, id kernel.UUID) (*recipient.Recipient, error) {
	r.store.mu.RLock()
	state, ok := r.store.recipients[id]
	r.store.mu.RUnlock()

	if !ok {
		return nil, errs.NewObjectNotFoundError("recipient", id.String())
	}
	return restoreRecipient(state)
}

func (r *RecipientRepository) Create(_ context.Context, aggregate *recipient.Recipient) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.recipients[aggregate.ID()]; ok {
		return errRecipientAlreadyExists(aggregate.ID())
	}
	r.store.recipients[aggregate.ID()] = recipientStateOf(aggregate)
	return nil
}

func (r *RecipientRepository) Save(_ context.Context, aggregate *recipient.Recipient) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.recipients[aggregate.ID()]; !ok {
		return errs.NewObjectNotFoundError("recipient", aggregate.ID().String())
	}
	r.store.recipients[aggregate.ID()] = recipientStateOf(aggregate)
	return nil
}
