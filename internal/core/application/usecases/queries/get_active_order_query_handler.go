package queries

import (
	"context"
	"errors"

	"tracking/internal/core/application/tracking"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/core/domain/model/route"
	"tracking/internal/pkg/errs"
)

// ActiveOrderReader returns the tracked state; tracking.Session implements it.
type ActiveOrderReader interface {
	Snapshot() (tracking.Snapshot, error)
	Route() route.Route
}

type GetActiveOrderQueryHandler struct {
	reader ActiveOrderReader
}

func NewGetActiveOrderQueryHandler(reader ActiveOrderReader) GetActiveOrderQueryHandler {
	return GetActiveOrderQueryHandler{reader: reader}
}

// Handle returns an errs.ObjectNotFoundError when no order is active.
func (h GetActiveOrderQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrderQuery,
) (GetActiveOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetActiveOrderQueryResponse{}, err
	}
	if err := ctx.Err(); err != nil {
		return GetActiveOrderQueryResponse{}, err
	}

	snap, err := h.reader.Snapshot()
	if errors.Is(err, tracking.ErrNoActiveOrder) {
		return GetActiveOrderQueryResponse{}, errs.NewObjectNotFoundErrorWithCause("order", "active", err)
	}
	if err != nil {
		return GetActiveOrderQueryResponse{}, err
	}

	resp := GetActiveOrderQueryResponse{
		OrderResponse: toOrderResponse(snap.Order),
		Progress:      snap.Progress,
		X:             snap.Position.X(),
		Y:             snap.Position.Y(),
		Angle:         snap.Position.Angle,
		Label:         snap.Position.Label(),
	}
	for _, wp := range h.reader.Route().Waypoints() {
		resp.Route = append(resp.Route, PointResponse{X: wp.X(), Y: wp.Y()})
	}
	if !snap.DeliveredAt.IsZero() {
		deliveredAt := snap.DeliveredAt
		resp.DeliveredAt = &deliveredAt
	}

	return resp, nil
}

func toOrderResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:                o.ID(),
		DisplayCode:       o.DisplayCode(),
		RestaurantID:      o.RestaurantID(),
		RestaurantName:    o.RestaurantName(),
		TotalRupees:       o.Total().Rupees(),
		DeliveryFeeRupees: order.DeliveryFeeRupees,
		PlatformFeeRupees: order.PlatformFeeRupees,
		AmountToPayRupees: o.AmountToPay().Rupees(),
		PaymentMethod:     string(o.Payment().Method()),
		Status:            o.Status().String(),
		PlacedAt:          o.PlacedAt(),
	}
	for _, item := range o.Items() {
		resp.Items = append(resp.Items, ItemResponse{
			MenuItemID:  item.MenuItemID(),
			Name:        item.Name(),
			PriceRupees: item.Price().Rupees(),
			Quantity:    item.Quantity(),
		})
	}
	if d := o.Driver(); d != nil {
		resp.Driver = &DriverResponse{Name: d.Name(), Phone: d.Phone()}
	}
	return resp
}
