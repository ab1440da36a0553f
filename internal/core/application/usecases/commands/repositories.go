// Package commands contains the write side of the tracking service: placing
// and clearing the active order, expiring a delivered one and recording it
// in history. Every command is built through its constructor and checked with
// Validate before the handler touches any state.
package commands

import (
	"context"
	"time"

	"tracking/internal/core/domain/model/order"
	"tracking/internal/core/ports"
)

type (
	// TxManager handles the transaction lifecycle of the history store.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// HistoryRepoFactory provides the history repository within a transaction.
	HistoryRepoFactory interface {
		OrderHistoryRepository() ports.OrderHistoryRepository
	}

	// HistoryUoW manages transactions for history writes.
	//
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil {
	//       return err
	//   }
	//   defer func() { _ = uow.Rollback(ctx) }()
	//
	//   if err := uow.OrderHistoryRepository().Add(ctx, o); err != nil {
	//       return err
	//   }
	//   return uow.Commit(ctx)
	HistoryUoW interface {
		TxManager
		HistoryRepoFactory
	}

	// HistoryUoWFactory creates history units of work.
	HistoryUoWFactory interface {
		Create() HistoryUoW
	}

	// OrderTracker is the session holding the active order.
	OrderTracker interface {
		Now() time.Time
		Start(ctx context.Context, o *order.Order) error
		Clear(ctx context.Context) error
		ClearDeliveredBefore(ctx context.Context, cutoff time.Time) bool
	}
)
