package ports

import (
	"context"
	"time"

	"tracking/internal/core/domain/model/kernel"
)

// StatusChangedEvent is emitted once per status transition.
type StatusChangedEvent struct {
	OrderID    kernel.UUID `json:"orderId"`
	From       string      `json:"from,omitempty"`
	To         string      `json:"to"`
	DriverName string      `json:"driverName,omitempty"`
	Progress   float64     `json:"progress"`
	OccurredAt time.Time   `json:"occurredAt"`
}

// ProgressEvent is emitted on every tick while the order is in transit.
type ProgressEvent struct {
	OrderID  kernel.UUID `json:"orderId"`
	Status   string      `json:"status"`
	Progress float64     `json:"progress"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Angle    float64     `json:"angle"`
	Label    string      `json:"label"`
}

// TrackingPublisher pushes tracking state to the presentation layer.
// Implementations must not block.
type TrackingPublisher interface {
	PublishStatusChanged(ctx context.Context, event StatusChangedEvent)
	PublishProgress(ctx context.Context, event ProgressEvent)
	PublishCleared(ctx context.Context, orderID kernel.UUID)
}
