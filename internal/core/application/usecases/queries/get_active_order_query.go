// Package queries contains the read side of the tracking service: the live
// view of the active order and the order history.
package queries

import (
	"errors"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var ErrGetActiveOrderQueryIsNotConstructed = errors.New(
	"GetActiveOrderQuery must be created via NewGetActiveOrderQuery constructor",
)

// GetActiveOrderQuery reads the tracking view of the active order.
type GetActiveOrderQuery struct {
	guard guard.ConstructorGuard
}

func NewGetActiveOrderQuery() GetActiveOrderQuery {
	return GetActiveOrderQuery{guard: guard.NewConstructorGuard()}
}

func (q GetActiveOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrderQueryIsNotConstructed)
}

// ItemResponse is one line of an order.
type ItemResponse struct {
	MenuItemID  string
	Name        string
	PriceRupees int64
	Quantity    int
}

// DriverResponse is the driver card of the tracking page.
type DriverResponse struct {
	Name  string
	Phone string
}

// PointResponse is a map coordinate in percent.
type PointResponse struct {
	X float64
	Y float64
}

// OrderResponse is the order part shared by the active and history views.
type OrderResponse struct {
	ID                kernel.UUID
	DisplayCode       string
	RestaurantID      string
	RestaurantName    string
	Items             []ItemResponse
	TotalRupees       int64
	DeliveryFeeRupees int64
	PlatformFeeRupees int64
	AmountToPayRupees int64
	PaymentMethod     string
	Status            string
	Driver            *DriverResponse
	PlacedAt          time.Time
}

// GetActiveOrderQueryResponse adds live progress and the marker to the
// order.
type GetActiveOrderQueryResponse struct {
	OrderResponse

	Progress    float64
	X           float64
	Y           float64
	Angle       float64
	Label       string
	Route       []PointResponse
	DeliveredAt *time.Time
}
