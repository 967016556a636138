package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"automail/internal/core/ports"
)

// ErrNoTransaction is returned when committing without a transaction open.
var ErrNoTransaction = errors.New("no transaction in progress")

// UnitOfWork wraps one *sql.Tx. Rollback without an open transaction is a no-op.
type UnitOfWork struct {
	db *sql.DB
	tx *sql.Tx
}

func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx, err := uow.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	uow.tx = tx
	return nil
}

func (uow *UnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoTransaction
	}

	err := uow.tx.Commit()
	uow.tx = nil
	return err
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback()
	uow.tx = nil
	return err
}

// DeliveryRepository returns a repository bound to the open transaction, if any.
func (uow *UnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	if uow.tx != nil {
		return &Repository{q: uow.tx}
	}
	return &Repository{q: uow.db}
}
