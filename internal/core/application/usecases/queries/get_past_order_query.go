package queries

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var ErrGetPastOrderQueryIsNotConstructed = errors.New(
	"GetPastOrderQuery must be created via NewGetPastOrderQuery constructor",
)

// GetPastOrderQuery reads one order from history.
type GetPastOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetPastOrderQuery(orderID kernel.UUID) (GetPastOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetPastOrderQuery{}, err
	}
	return GetPastOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPastOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetPastOrderQueryIsNotConstructed)
}

func (q GetPastOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}
