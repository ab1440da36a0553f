package commands

import (
	"context"

	"tracking/internal/core/domain/model/order"
)

// PlaceOrderCommandHandler creates the order in Placed status and hands it to
// the tracker, which starts the delivery simulation.
type PlaceOrderCommandHandler struct {
	tracker OrderTracker
}

func NewPlaceOrderCommandHandler(tracker OrderTracker) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{tracker: tracker}
}

// Handle fails with tracking.ErrOrderInProgress while another order is on
// its way.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := order.NewOrder(
		cmd.OrderID(),
		cmd.RestaurantID(),
		cmd.RestaurantName(),
		cmd.Items(),
		cmd.Payment(),
		h.tracker.Now(),
	)
	if err != nil {
		return err
	}

	return h.tracker.Start(ctx, o)
}
