// Package memory keeps order history in process memory. It is selected when
// no database is configured; history is lost on restart.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"
)

// HistoryStore is the shared backing slice, most recent order first.
type HistoryStore struct {
	mu     sync.RWMutex
	orders []*order.Order
}

func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

func (s *HistoryStore) add(o *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = slices.DeleteFunc(s.orders, func(stored *order.Order) bool {
		return stored.ID().IsEqual(o.ID())
	})
	s.orders = slices.Insert(s.orders, 0, o)
}

func (s *HistoryStore) deleteOlderThan(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.orders)
	s.orders = slices.DeleteFunc(s.orders, func(o *order.Order) bool {
		return o.PlacedAt().Before(cutoff)
	})
	return before - len(s.orders)
}

func (s *HistoryStore) countOlderThan(cutoff time.Time) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, o := range s.orders {
		if o.PlacedAt().Before(cutoff) {
			n++
		}
	}
	return n
}

// HistoryRepository implements ports.OrderHistoryRepository on a
// HistoryStore. Writes made inside a unit of work are applied on Commit;
// reads always see committed data.
type HistoryRepository struct {
	store *HistoryStore
	uow   *UnitOfWork
}

var _ ports.OrderHistoryRepository = (*HistoryRepository)(nil)

// NewHistoryRepository returns a repository writing straight to store.
func NewHistoryRepository(store *HistoryStore) *HistoryRepository {
	return &HistoryRepository{store: store}
}

func (r *HistoryRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	stored := aggregate.Clone()
	r.apply(func(s *HistoryStore) { s.add(stored) })
	return nil
}

func (r *HistoryRepository) List(ctx context.Context, limit int) ([]*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	n := len(r.store.orders)
	if limit > 0 && limit < n {
		n = limit
	}
	result := make([]*order.Order, 0, n)
	for _, o := range r.store.orders[:n] {
		result = append(result, o.Clone())
	}
	return result, nil
}

func (r *HistoryRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, o := range r.store.orders {
		if o.ID().IsEqual(id) {
			return o.Clone(), nil
		}
	}
	return nil, errs.NewObjectNotFoundError("order", id.String())
}

func (r *HistoryRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if r.uow != nil && r.uow.active {
		n := r.store.countOlderThan(cutoff)
		r.uow.pending = append(r.uow.pending, func(s *HistoryStore) { s.deleteOlderThan(cutoff) })
		return n, nil
	}
	return r.store.deleteOlderThan(cutoff), nil
}

func (r *HistoryRepository) apply(op func(*HistoryStore)) {
	if r.uow != nil && r.uow.active {
		r.uow.pending = append(r.uow.pending, op)
		return
	}
	op(r.store)
}
