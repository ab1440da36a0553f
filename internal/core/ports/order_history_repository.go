package ports

import (
	"context"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
)

// OrderHistoryRepository stores finished orders.
type OrderHistoryRepository interface {
	// Add appends a finished order. Adding an order id twice overwrites the
	// stored copy.
	Add(ctx context.Context, aggregate *order.Order) error

	// List returns at most limit orders, most recent first. A non-positive
	// limit returns everything.
	List(ctx context.Context, limit int) ([]*order.Order, error)

	// Get returns one past order or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// DeleteOlderThan drops orders placed before cutoff and reports how many
	// were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
