package commands

import (
	"context"

	"fastfeet/internal/core/domain/model/kernel"
	"fastfeet/internal/core/domain/model/order"
	"fastfeet/internal/core/domain/model/recipient"
)

type CreateRecipientCommandHandler struct {
	uowFactory RecipientUoWFactory
}

func NewCreateRecipientCommandHandler(uowFactory RecipientUoWFactory) CreateRecipientCommandHandler {
	return CreateRecipientCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the recipient and returns its identifier. Callers that are
// not administrators get an *errs.ActionIsNotAllowedError.
func (h CreateRecipientCommandHandler) Handle(ctx context.Context, cmd CreateRecipientCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	if err := requireRole(cmd.CallerRole(), order.Admin, "create recipient"); err != nil {
		return kernel.UUID{}, err
	}

	rec, err := recipient.NewRecipient(cmd.Name())
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RecipientRepository().Create(ctx, rec); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return rec.ID(), nil
}
