package commands

import "context"

type ClearActiveOrderCommandHandler struct {
	tracker OrderTracker
}

func NewClearActiveOrderCommandHandler(tracker OrderTracker) ClearActiveOrderCommandHandler {
	return ClearActiveOrderCommandHandler{tracker: tracker}
}

// Handle succeeds when there is nothing to clear.
func (h ClearActiveOrderCommandHandler) Handle(ctx context.Context, cmd ClearActiveOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.tracker.Clear(ctx)
}
