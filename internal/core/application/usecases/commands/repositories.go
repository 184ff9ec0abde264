// Package commands contains the operations that change state. Every handler
// validates its command, opens a unit of work, mutates aggregates through
// their methods and commits; staged domain events are dispatched by the unit
// of work after the commit.
package commands

import (
	"context"
	"fmt"

	"fastfeet/internal/core/domain/model/order"
	"fastfeet/internal/core/ports"
	"fastfeet/internal/pkg/errs"
)

// Unit of Work interfaces give each handler access to exactly the
// repositories it writes to.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	RecipientRepoFactory interface {
		RecipientRepository() ports.RecipientRepository
	}

	// OrderUoW is used by commands that only modify orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// RecipientUoW is used by commands that only modify recipients.
	RecipientUoW interface {
		TxManager
		RecipientRepoFactory
	}

	RecipientUoWFactory interface {
		Create() RecipientUoW
	}

	// UoW spans orders and recipients.
	UoW interface {
		TxManager
		OrderRepoFactory
		RecipientRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

func requireRole(caller, required order.Role, action string) error {
	if caller != required {
		return errs.NewActionIsNotAllowedErrorWithCause(action,
			fmt.Errorf("role %s is required, caller is %s", required, caller))
	}
	return nil
}
