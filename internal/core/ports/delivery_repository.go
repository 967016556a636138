// Package ports defines the contracts between the automail core and its adapters.
// These interfaces establish the boundary the delivery ledgers and the status API
// plug into, enabling dependency inversion and testability.
package ports

import (
	"context"

	"automail/internal/core/domain/model/delivery"
	"automail/internal/core/domain/model/kernel"
)

// DeliveryReader lists recorded deliveries of a run.
type DeliveryReader interface {
	// List returns at most limit records of the run ordered by delivery tick.
	// A limit of 0 or less returns every record.
	List(ctx context.Context, runID kernel.UUID, limit int) ([]*delivery.Record, error)
}

// DeliveryRepository defines the persistence contract of the delivery ledger.
// Records are append-only: a delivery is never updated once stored.
type DeliveryRepository interface {
	DeliveryReader

	// Add appends records to the ledger.
	// Adding an item id that the run already recorded fails.
	Add(ctx context.Context, records ...*delivery.Record) error

	// Count returns how many deliveries the run recorded.
	Count(ctx context.Context, runID kernel.UUID) (int, error)
}
