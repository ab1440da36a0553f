package commands

import (
	"context"
	"time"
)

// PurgeOrderHistoryCommandHandler trims the history store.
type PurgeOrderHistoryCommandHandler struct {
	uowFactory HistoryUoWFactory
	now        func() time.Time
}

// NewPurgeOrderHistoryCommandHandler uses now as the reference time; tests
// pass a fixed clock.
func NewPurgeOrderHistoryCommandHandler(uowFactory HistoryUoWFactory, now func() time.Time) PurgeOrderHistoryCommandHandler {
	return PurgeOrderHistoryCommandHandler{uowFactory: uowFactory, now: now}
}

// Handle returns the number of deleted orders.
func (h PurgeOrderHistoryCommandHandler) Handle(ctx context.Context, cmd PurgeOrderHistoryCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deleted, err := uow.OrderHistoryRepository().DeleteOlderThan(ctx, h.now().Add(-cmd.Retention()))
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return deleted, nil
}
