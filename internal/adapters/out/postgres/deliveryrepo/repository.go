package deliveryrepo

import (
	"context"

	"automail/internal/core/domain/model/delivery"
	"automail/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker recordTracker
}

// recordTracker defines the interface for tracking stored records.
type recordTracker interface {
	TrackRecord(record *delivery.Record)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker recordTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the records in one batch.
func (r *GormDeliveryRepository) Add(ctx context.Context, records ...*delivery.Record) error {
	if len(records) == 0 {
		return nil
	}

	dtos := make([]DeliveryDTO, 0, len(records))
	for _, record := range records {
		if err := record.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(record))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return err
	}

	for _, record := range records {
		r.tracker.TrackRecord(record)
	}
	return nil
}

// List retrieves the run's deliveries in delivery order.
func (r *GormDeliveryRepository) List(ctx context.Context, runID kernel.UUID, limit int) ([]*delivery.Record, error) {
	if err := runID.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).
		Where("run_id = ?", runID.Bytes()).
		Order("delivered_at ASC").
		Order("item_id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var dtos []DeliveryDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]*delivery.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

// Count returns the number of deliveries the run recorded.
func (r *GormDeliveryRepository) Count(ctx context.Context, runID kernel.UUID) (int, error) {
	if err := runID.Validate(); err != nil {
		return 0, err
	}

	var n int64
	if err := r.db.WithContext(ctx).Model(&DeliveryDTO{}).Where("run_id = ?", runID.Bytes()).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}
