package queries

import (
	"errors"
	"fmt"

	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

// MaxHistoryLimit caps one page of history.
const MaxHistoryLimit = 100

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery lists past orders, most recent first.
type GetOrderHistoryQuery struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery accepts a limit in [1, MaxHistoryLimit]; zero
// selects MaxHistoryLimit.
func NewGetOrderHistoryQuery(limit int) (GetOrderHistoryQuery, error) {
	q := GetOrderHistoryQuery{guard: guard.NewConstructorGuard()}
	if err := q.setLimit(limit); err != nil {
		return GetOrderHistoryQuery{}, err
	}
	return q, nil
}

func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

func (q GetOrderHistoryQuery) Limit() int {
	return q.limit
}

func (q *GetOrderHistoryQuery) setLimit(limit int) error {
	if limit == 0 {
		limit = MaxHistoryLimit
	}
	if limit < 1 || limit > MaxHistoryLimit {
		return errs.NewValueIsOutOfRangeErrorWithCause("limit", limit, 1, MaxHistoryLimit,
			fmt.Errorf("limit must be between 1 and %d", MaxHistoryLimit))
	}
	q.limit = limit
	return nil
}
