// Package broadcast fans tracking output out to several adapters, so the
// session sees a single notifier and a single publisher.
package broadcast

import (
	"context"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/ports"
)

// Notifiers calls every notifier in order.
type Notifiers []ports.Notifier

func (ns Notifiers) Notify(ctx context.Context, n ports.Notification) {
	for _, notifier := range ns {
		notifier.Notify(ctx, n)
	}
}

// Publishers calls every publisher in order.
type Publishers []ports.TrackingPublisher

func (ps Publishers) PublishStatusChanged(ctx context.Context, event ports.StatusChangedEvent) {
	for _, p := range ps {
		p.PublishStatusChanged(ctx, event)
	}
}

func (ps Publishers) PublishProgress(ctx context.Context, event ports.ProgressEvent) {
	for _, p := range ps {
		p.PublishProgress(ctx, event)
	}
}

func (ps Publishers) PublishCleared(ctx context.Context, orderID kernel.UUID) {
	for _, p := range ps {
		p.PublishCleared(ctx, orderID)
	}
}
