package memory

import (
	"context"
	"errors"

	"tracking/internal/core/ports"
)

// ErrNoTransaction is returned by Commit and Rollback without Begin.
var ErrNoTransaction = errors.New("no transaction in progress")

type UnitOfWorkFactory struct {
	store *HistoryStore
}

func NewUnitOfWorkFactory(store *HistoryStore) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork buffers writes and applies them to the store on Commit.
// It is not safe for concurrent use; create one per command.
type UnitOfWork struct {
	store   *HistoryStore
	active  bool
	pending []func(*HistoryStore)
}

func (u *UnitOfWork) Begin(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.active = true
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}
	for _, op := range u.pending {
		op(u.store)
	}
	u.pending = nil
	u.active = false
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}
	u.pending = nil
	u.active = false
	return nil
}

func (u *UnitOfWork) OrderHistoryRepository() ports.OrderHistoryRepository {
	return &HistoryRepository{store: u.store, uow: u}
}
