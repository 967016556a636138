package delivery

import (
	"errors"
	"fmt"

	"automail/internal/core/domain/model/kernel"
	"automail/internal/core/domain/model/mail"
	"automail/internal/pkg/errs"
	"automail/internal/pkg/guard"
)

// DefaultPenalty is the exponent applied to delivery wait when scoring.
const DefaultPenalty = 1.2

// ErrRecordIsNotConstructed is returned when using an improperly initialized Record.
var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord or RestoreRecord constructor")

// Record is the ledger entry of one completed delivery: which run, which item, when
// it arrived, when it was delivered and what it scored.
//
// Business rules:
//   - the run id is a valid UUID
//   - the item id is required
//   - an item is never delivered before it arrived
//
// Example usage:
//
//	rec, err := delivery.NewRecord(runID, item, clock.Now(), delivery.DefaultPenalty)
//	if err != nil {
//	    return err
//	}
//	rec.Wait() // ticks between arrival and delivery
type Record struct {
	runID       kernel.UUID
	itemID      string
	destination kernel.Floor
	arrival     kernel.Tick
	deliveredAt kernel.Tick
	weight      int
	fragile     bool
	priority    int
	score       float64
	guard       guard.ConstructorGuard
}

// NewRecord records the delivery of item at tick deliveredAt and scores it with penalty.
func NewRecord(runID kernel.UUID, item *mail.Item, deliveredAt kernel.Tick, penalty float64) (*Record, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}

	return RestoreRecord(
		runID,
		item.ID(),
		item.Destination(),
		item.Arrival(),
		deliveredAt,
		item.Weight(),
		item.Fragile(),
		item.Priority(),
		item.Score(deliveredAt, penalty),
	)
}

// RestoreRecord reconstructs a Record read back from a ledger.
func RestoreRecord(
	runID kernel.UUID,
	itemID string,
	destination kernel.Floor,
	arrival kernel.Tick,
	deliveredAt kernel.Tick,
	weight int,
	fragile bool,
	priority int,
	score float64,
) (*Record, error) {
	r := &Record{
		destination: destination,
		weight:      weight,
		fragile:     fragile,
		priority:    priority,
		score:       score,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setRunID(runID),
		r.setItemID(itemID),
		r.setTicks(arrival, deliveredAt),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate checks that the Record was built by one of its constructors.
func (r *Record) Validate() error {
	if r == nil {
		return ErrRecordIsNotConstructed
	}
	return r.guard.Validate(ErrRecordIsNotConstructed)
}

func (r *Record) RunID() kernel.UUID {
	return r.runID
}

func (r *Record) ItemID() string {
	return r.itemID
}

func (r *Record) Destination() kernel.Floor {
	return r.destination
}

func (r *Record) Arrival() kernel.Tick {
	return r.arrival
}

func (r *Record) DeliveredAt() kernel.Tick {
	return r.deliveredAt
}

// Wait returns the ticks the item spent between arrival and delivery.
func (r *Record) Wait() kernel.Tick {
	return r.deliveredAt - r.arrival
}

func (r *Record) Weight() int {
	return r.weight
}

func (r *Record) Fragile() bool {
	return r.fragile
}

func (r *Record) Priority() int {
	return r.priority
}

func (r *Record) Score() float64 {
	return r.score
}

func (r *Record) String() string {
	return fmt.Sprintf("T: %3d > Delivered(%4d) [%s]", r.deliveredAt, r.Wait(), r.itemID)
}

func (r *Record) setRunID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("runID", err)
	}
	r.runID = id
	return nil
}

func (r *Record) setItemID(id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError("itemID")
	}
	r.itemID = id
	return nil
}

func (r *Record) setTicks(arrival, deliveredAt kernel.Tick) error {
	if deliveredAt < arrival {
		return errs.NewValueIsInvalidErrorWithCause(
			"deliveredAt",
			fmt.Errorf("tick %d is before arrival tick %d", deliveredAt, arrival),
		)
	}
	r.arrival = arrival
	r.deliveredAt = deliveredAt
	return nil
}
