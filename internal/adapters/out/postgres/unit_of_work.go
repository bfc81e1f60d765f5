// Package postgres provides the GORM-based Unit of Work that binds the order, product,
// ledger and cart repositories to one database transaction.
//
// Order fulfillment is the main client: the order row lock, every stock counter update,
// the ledger entries and the order update either commit together or not at all.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
//	if err != nil {
//	    return err
//	}
//	// ... change status, consume stock, append ledger entries
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit returns gorm.ErrInvalidTransaction and is safe to
// ignore in the deferred call.
package postgres

import (
	"context"

	"evashoes/internal/adapters/out/postgres/cartrepo"
	"evashoes/internal/adapters/out/postgres/ledgerrepo"
	"evashoes/internal/adapters/out/postgres/orderrepo"
	"evashoes/internal/adapters/out/postgres/outboxrepo"
	"evashoes/internal/adapters/out/postgres/productrepo"
	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
// Every command handler asks it for a fresh instance per call, so two requests never
// share a transaction.
//
// Example:
//
//	factory := postgres.NewGormUnitOfWorkFactory(gormDB)
//	handler := commands.NewClearCartCommandHandler(
//	    FuncCartUoWFactory(func() commands.CartUoW { return factory.Create() }),
//	)
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory binds the factory to an open gorm connection. The connection
// should be opened with TranslateError so duplicate keys surface as gorm.ErrDuplicatedKey.
//
// Example:
//
//	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
//	if err != nil {
//	    return fmt.Errorf("connect to database: %w", err)
//	}
//	factory := postgres.NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh unit of work with no open transaction and nothing tracked.
// Instances must not be shared between goroutines.
//
// Example:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.CartRepository().Clear(ctx, userID); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and records the aggregates
// written through its repositories.
//
// Repositories obtained after Begin run inside the transaction; repositories obtained
// before Begin, or after Commit/Rollback, use the pool directly. Handlers therefore
// always call Begin first.
//
// Example usage, delivering an order:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
//	if err != nil {
//	    return err
//	}
//	change, err := o.ChangeStatus(order.Delivered, nil, now)
//	if err != nil {
//	    return err
//	}
//	if err = uow.ProductRepository().ConsumeStock(ctx, productID, 38, 2); err != nil {
//	    return err
//	}
//	if err = uow.LedgerRepository().Add(ctx, record); err != nil {
//	    return err
//	}
//	if err = uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	if err = uow.OutboxRepository().Add(ctx, change); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it again while a transaction is open is a no-op.
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

// Commit makes the transaction's changes permanent and closes it. Without an open
// transaction it returns gorm.ErrInvalidTransaction.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction's changes and closes it.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// session returns the open transaction, or the pool when none is open.
func (uow *GormUnitOfWork) session() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// OrderRepository returns an order repository bound to the current session.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.session(), uow)
}

func (uow *GormUnitOfWork) ProductRepository() ports.ProductRepository {
	return productrepo.NewGormProductRepository(uow.session(), uow)
}

func (uow *GormUnitOfWork) LedgerRepository() ports.LedgerRepository {
	return ledgerrepo.NewGormLedgerRepository(uow.session(), uow)
}

func (uow *GormUnitOfWork) CartRepository() ports.CartRepository {
	return cartrepo.NewGormCartRepository(uow.session())
}

// OutboxRepository returns the status change outbox. Writes made through it commit or
// roll back together with the order they describe.
func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.session())
}

// TrackAggregate registers an aggregate written by a repository of this unit of work.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedAggregates returns the ids of the aggregates written so far, in write order.
// Rollback forgets them.
//
// Example:
//
//	_ = uow.OrderRepository().Add(ctx, o)
//	_ = uow.ProductRepository().Add(ctx, p)
//	ids := uow.(*postgres.GormUnitOfWork).TrackedAggregates() // [o.ID(), p.ID()]
func (uow *GormUnitOfWork) TrackedAggregates() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		ids = append(ids, tracked.ID)
	}
	return ids
}
