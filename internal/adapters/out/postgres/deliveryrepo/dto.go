// Package deliveryrepo persists the delivery ledger in PostgreSQL through GORM.
// It maps delivery records to rows of the deliveries table, one row per delivered
// item, keyed by a surrogate UUID and unique per (run, item).
package deliveryrepo

import (
	"automail/internal/core/domain/model/delivery"
	"automail/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure of one ledger entry.
// The (run_id, item_id) pair is unique so a run can never record an item twice.
type DeliveryDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RunID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_deliveries_run_item,priority:1;index:idx_deliveries_run_tick,priority:1"`
	ItemID      string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_deliveries_run_item,priority:2"`
	Destination int       `gorm:"type:smallint"`
	Arrival     int
	DeliveredAt int `gorm:"index:idx_deliveries_run_tick,priority:2"`
	Weight      int
	Fragile     bool
	Priority    int
	Score       float64
}

// TableName overrides GORM's default naming convention to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

func fromDomain(record *delivery.Record) DeliveryDTO {
	return DeliveryDTO{
		ID:          uuid.New(),
		RunID:       record.RunID().Bytes(),
		ItemID:      record.ItemID(),
		Destination: int(record.Destination()),
		Arrival:     int(record.Arrival()),
		DeliveredAt: int(record.DeliveredAt()),
		Weight:      record.Weight(),
		Fragile:     record.Fragile(),
		Priority:    record.Priority(),
		Score:       record.Score(),
	}
}

// toDomain reconstructs the record using RestoreRecord, so a corrupted row fails validation.
func toDomain(dto DeliveryDTO) (*delivery.Record, error) {
	runID, err := kernel.UUIDFromBytes(dto.RunID[:])
	if err != nil {
		return nil, err
	}

	return delivery.RestoreRecord(
		runID,
		dto.ItemID,
		kernel.Floor(dto.Destination),
		kernel.Tick(dto.Arrival),
		kernel.Tick(dto.DeliveredAt),
		dto.Weight,
		dto.Fragile,
		dto.Priority,
		dto.Score,
	)
}
