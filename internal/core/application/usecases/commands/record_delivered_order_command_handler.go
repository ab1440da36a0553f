package commands

import (
	"context"
)

// RecordDeliveredOrderCommandHandler writes delivered orders to the history
// store in a transaction.
type RecordDeliveredOrderCommandHandler struct {
	uowFactory HistoryUoWFactory
}

func NewRecordDeliveredOrderCommandHandler(uowFactory HistoryUoWFactory) RecordDeliveredOrderCommandHandler {
	return RecordDeliveredOrderCommandHandler{uowFactory: uowFactory}
}

func (h RecordDeliveredOrderCommandHandler) Handle(ctx context.Context, cmd RecordDeliveredOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderHistoryRepository().Add(ctx, cmd.Order()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
