// Package commands contains the operations that change a simulation run.
// Every command follows the same pattern: a guard-validated command value and a
// handler that validates it, then drives the run or the delivery ledger.
package commands

import (
	"automail/internal/core/domain/model/delivery"
	"automail/internal/core/ports"
)

type (
	// DeliveryBuffer holds delivery records not yet written to the ledger.
	DeliveryBuffer interface {
		TakeUnflushed() []*delivery.Record
		Requeue(records []*delivery.Record)
	}

	// UoW manages a ledger transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   repo := uow.DeliveryRepository()
	//   // ... append records
	//
	//   err = uow.Commit(ctx)
	UoW = ports.UnitOfWork

	// UoWFactory creates new unit of work instances.
	UoWFactory = ports.UnitOfWorkFactory
)
