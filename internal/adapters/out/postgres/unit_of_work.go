// Package postgres provides a GORM-based Unit of Work for the delivery ledger.
// Each flush of the simulation's delivery buffer runs in one unit of work, so a
// batch of records is either stored completely or not at all.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx) // no-op after a successful commit
//
//	if err := uow.DeliveryRepository().Add(ctx, records...); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance holds its own transaction; concurrent flushes must use
// separate instances.
package postgres

import (
	"context"

	"automail/internal/adapters/out/postgres/deliveryrepo"
	"automail/internal/core/domain/model/delivery"
	"automail/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with no transaction open.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:      f.db,
		tracked: make([]*delivery.Record, 0),
	}
}

// GormUnitOfWork coordinates one ledger transaction and remembers every record
// its repositories stored, so callers can report what a commit made durable.
type GormUnitOfWork struct {
	db      *gorm.DB
	tx      *gorm.DB
	tracked []*delivery.Record
}

// Begin opens a transaction. Calling Begin again while one is open does nothing.
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

// Commit makes the transaction's records permanent.
// Returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the open transaction and forgets the records tracked in it.
// Without an open transaction it is a no-op, so it is safe to defer after Begin.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.tracked = uow.tracked[:0]
	return err
}

// DeliveryRepository returns a repository bound to the open transaction,
// or to the connection pool when no transaction is open.
func (uow *GormUnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return deliveryrepo.NewGormDeliveryRepository(db, uow)
}

// TrackRecord registers a record stored within this unit of work.
func (uow *GormUnitOfWork) TrackRecord(record *delivery.Record) {
	uow.tracked = append(uow.tracked, record)
}

// Tracked returns the records stored through this unit of work.
func (uow *GormUnitOfWork) Tracked() []*delivery.Record {
	out := make([]*delivery.Record, len(uow.tracked))
	copy(out, uow.tracked)
	return out
}

// Migrate creates or updates the ledger schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&deliveryrepo.DeliveryDTO{})
}
