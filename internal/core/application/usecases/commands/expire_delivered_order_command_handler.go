package commands

import "context"

type ExpireDeliveredOrderCommandHandler struct {
	tracker OrderTracker
}

func NewExpireDeliveredOrderCommandHandler(tracker OrderTracker) ExpireDeliveredOrderCommandHandler {
	return ExpireDeliveredOrderCommandHandler{tracker: tracker}
}

// Handle reports whether the active order was cleared.
func (h ExpireDeliveredOrderCommandHandler) Handle(ctx context.Context, cmd ExpireDeliveredOrderCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	cutoff := h.tracker.Now().Add(-cmd.Retention())
	return h.tracker.ClearDeliveredBefore(ctx, cutoff), nil
}
