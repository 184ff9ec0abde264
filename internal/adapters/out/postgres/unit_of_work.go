// Package postgres provides the GORM implementation of the unit of work and
// the schema of the service.
//
// A GormUnitOfWork wraps one database transaction. Repositories obtained from
// it run inside that transaction and report every saved aggregate back to the
// unit of work; the staged domain events of those aggregates are dispatched
// only once Commit succeeds, and dropped on Rollback.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Save(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
package postgres

import (
	"context"

	"fastfeet/internal/adapters/out/postgres/orderrepo"
	"fastfeet/internal/adapters/out/postgres/recipientrepo"
	"fastfeet/internal/core/domain/events"
	"fastfeet/internal/core/ports"

	"gorm.io/gorm"
)

var (
	_ ports.UnitOfWorkFactory = (*GormUnitOfWorkFactory)(nil)
	_ ports.UnitOfWork        = (*GormUnitOfWork)(nil)
	_ events.Tracker          = (*GormUnitOfWork)(nil)
)

// GormUnitOfWorkFactory creates a fresh GormUnitOfWork per business operation.
type GormUnitOfWorkFactory struct {
	db         *gorm.DB
	dispatcher events.Dispatcher
}

func NewGormUnitOfWorkFactory(db *gorm.DB, dispatcher events.Dispatcher) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, dispatcher: dispatcher}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		dispatcher:        f.dispatcher,
		trackedAggregates: make([]events.Aggregate, 0),
	}
}

// GormUnitOfWork coordinates a transaction and the aggregates saved in it.
// It is not safe for concurrent use.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	dispatcher        events.Dispatcher
	trackedAggregates []events.Aggregate
}

// Begin starts the transaction. Calling it twice keeps the first transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit makes the writes durable and then dispatches the staged events of
// every tracked aggregate, in the order they were saved. Handler failures do not
// stop the remaining aggregates and are returned although the transaction is
// already committed.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]events.Aggregate, 0)
	if err != nil {
		return err
	}

	return events.DispatchAll(ctx, uow.dispatcher, tracked)
}

// Rollback discards the writes and the tracked aggregates.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = make([]events.Aggregate, 0)
	return err
}

// OrderRepository returns a repository bound to the current transaction, or
// to the plain connection when no transaction is active.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) RecipientRepository() ports.RecipientRepository {
	return recipientrepo.NewGormRecipientRepository(uow.conn())
}

// TrackAggregate defers the dispatch of aggregate to Commit.
func (uow *GormUnitOfWork) TrackAggregate(_ context.Context, aggregate events.Aggregate) error {
	uow.trackedAggregates = append(uow.trackedAggregates, aggregate)
	return nil
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
