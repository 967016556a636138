package commands

import (
	"context"

	"automail/internal/core/domain/model/delivery"
)

// FlushDeliveriesCommandHandler moves buffered delivery records into the ledger
// inside one transaction. On failure the records go back to the buffer so the
// next flush retries them.
//
// Example:
//
//	handler := NewFlushDeliveriesCommandHandler(report, uowFactory)
//	n, err := handler.Handle(ctx, NewFlushDeliveriesCommand())
//	if err != nil {
//	    return fmt.Errorf("ledger flush failed: %w", err)
//	}
type FlushDeliveriesCommandHandler struct {
	buffer     DeliveryBuffer
	uowFactory UoWFactory
}

func NewFlushDeliveriesCommandHandler(buffer DeliveryBuffer, uowFactory UoWFactory) FlushDeliveriesCommandHandler {
	return FlushDeliveriesCommandHandler{
		buffer:     buffer,
		uowFactory: uowFactory,
	}
}

// Handle flushes and returns how many records were written.
func (h FlushDeliveriesCommandHandler) Handle(ctx context.Context, cmd FlushDeliveriesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	records := h.buffer.TakeUnflushed()
	if len(records) == 0 {
		return 0, nil
	}

	if err := h.write(ctx, records); err != nil {
		h.buffer.Requeue(records)
		return 0, err
	}
	return len(records), nil
}

func (h FlushDeliveriesCommandHandler) write(ctx context.Context, records []*delivery.Record) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.DeliveryRepository().Add(ctx, records...); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
