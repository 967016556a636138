package report

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"automail/internal/core/domain/model/delivery"
	"automail/internal/core/domain/model/kernel"
	"automail/internal/core/domain/model/mail"
)

// ErrMailAlreadyDelivered is recorded when the same item is delivered twice.
var ErrMailAlreadyDelivered = errors.New("mail already delivered")

// Report is the in-memory delivery sink of a run. It timestamps each delivery with
// the run clock, scores it, and buffers the record until the ledger flush takes it.
//
// Deliver cannot fail, so a duplicate delivery is remembered and surfaced by Err.
// Report is safe for concurrent use: robots deliver from the step goroutine while
// the status API and the ledger flush read from others.
type Report struct {
	runID   kernel.UUID
	clock   *kernel.Clock
	penalty float64

	mu         sync.Mutex
	records    []*delivery.Record
	seen       map[string]struct{}
	unflushed  []*delivery.Record
	totalScore float64
	errs       []error
}

// New creates an empty report for the run.
func New(runID kernel.UUID, clock *kernel.Clock, penalty float64) (*Report, error) {
	if err := runID.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		return nil, errors.New("report: clock is required")
	}
	if penalty <= 0 {
		penalty = delivery.DefaultPenalty
	}

	return &Report{
		runID:   runID,
		clock:   clock,
		penalty: penalty,
		seen:    make(map[string]struct{}),
	}, nil
}

// Deliver records item as delivered now.
func (r *Report) Deliver(item *mail.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.seen[item.ID()]; dup {
		r.errs = append(r.errs, fmt.Errorf("%w: %s", ErrMailAlreadyDelivered, item.ID()))
		return
	}

	rec, err := delivery.NewRecord(r.runID, item, r.clock.Now(), r.penalty)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("record delivery of %s: %w", item.ID(), err))
		return
	}

	r.seen[item.ID()] = struct{}{}
	r.records = append(r.records, rec)
	r.unflushed = append(r.unflushed, rec)
	r.totalScore += rec.Score()
}

// Err returns every problem met while recording, or nil.
func (r *Report) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return errors.Join(r.errs...)
}

func (r *Report) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

func (r *Report) TotalScore() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.totalScore
}

// Delivered returns every record in delivery order.
func (r *Report) Delivered() []*delivery.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.records)
}

// List implements ports.DeliveryReader for runs without a persistent ledger.
func (r *Report) List(_ context.Context, runID kernel.UUID, limit int) ([]*delivery.Record, error) {
	if !runID.IsEqual(r.runID) {
		return []*delivery.Record{}, nil
	}

	out := r.Delivered()
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// TakeUnflushed hands over the records not yet written to a ledger.
func (r *Report) TakeUnflushed() []*delivery.Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.unflushed
	r.unflushed = nil
	return out
}

// Requeue puts records back in front of the unflushed buffer after a failed flush.
func (r *Report) Requeue(records []*delivery.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unflushed = append(slices.Clone(records), r.unflushed...)
}

// Summary is the final figures of a run.
type Summary struct {
	RunID      string  `json:"run_id"`
	FinalTick  int     `json:"final_tick"`
	Delivered  int     `json:"delivered"`
	Penalty    float64 `json:"penalty"`
	TotalScore float64 `json:"total_score"`
}

// Summary captures the report's figures at the current tick.
func (r *Report) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Summary{
		RunID:      r.runID.String(),
		FinalTick:  int(r.clock.Now()),
		Delivered:  len(r.records),
		Penalty:    r.penalty,
		TotalScore: r.totalScore,
	}
}

func (s Summary) String() string {
	return fmt.Sprintf("T: %d | Simulation complete!\nFinal Delivery time: %d\nFinal Score: %.2f",
		s.FinalTick, s.FinalTick, s.TotalScore)
}
