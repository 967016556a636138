package sqlite

import (
	"context"
	"database/sql"

	"automail/internal/core/domain/model/delivery"
	"automail/internal/core/domain/model/kernel"
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repository implements ports.DeliveryRepository over the deliveries table.
type Repository struct {
	q queryer
}

const insertDelivery = `INSERT INTO deliveries
	(run_id, item_id, destination, arrival, delivered_at, weight, fragile, priority, score)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Add inserts every record. A duplicate (run, item) violates the primary key.
func (r *Repository) Add(ctx context.Context, records ...*delivery.Record) error {
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return err
		}
		if _, err := r.q.ExecContext(ctx, insertDelivery,
			rec.RunID().String(),
			rec.ItemID(),
			int(rec.Destination()),
			int(rec.Arrival()),
			int(rec.DeliveredAt()),
			rec.Weight(),
			rec.Fragile(),
			rec.Priority(),
			rec.Score(),
		); err != nil {
			return err
		}
	}
	return nil
}

// List returns the run's deliveries in delivery order.
func (r *Repository) List(ctx context.Context, runID kernel.UUID, limit int) ([]*delivery.Record, error) {
	if err := runID.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.q.QueryContext(ctx, `SELECT item_id, destination, arrival, delivered_at, weight, fragile, priority, score
		FROM deliveries WHERE run_id = ? ORDER BY delivered_at, item_id LIMIT ?`, runID.String(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*delivery.Record, 0)
	for rows.Next() {
		var (
			itemID                                       string
			destination, arrival, deliveredAt, weight, p int
			fragile                                      bool
			score                                        float64
		)
		if err := rows.Scan(&itemID, &destination, &arrival, &deliveredAt, &weight, &fragile, &p, &score); err != nil {
			return nil, err
		}
		rec, err := delivery.RestoreRecord(runID, itemID, kernel.Floor(destination),
			kernel.Tick(arrival), kernel.Tick(deliveredAt), weight, fragile, p, score)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Count returns the number of deliveries the run recorded.
func (r *Repository) Count(ctx context.Context, runID kernel.UUID) (int, error) {
	if err := runID.Validate(); err != nil {
		return 0, err
	}

	var n int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM deliveries WHERE run_id = ?`, runID.String()).Scan(&n)
	return n, err
}
