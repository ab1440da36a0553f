// Package logging writes notifications and tracking events to a slog logger.
// It stands in for the push channel when nobody is connected and keeps an
// audit trail of every order.
package logging

import (
	"context"
	"log/slog"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/ports"
)

type Notifier struct {
	logger *slog.Logger
}

func NewNotifier(logger *slog.Logger) *Notifier {
	return &Notifier{logger: logger.With("component", "notifier")}
}

func (n *Notifier) Notify(ctx context.Context, notification ports.Notification) {
	level := slog.LevelInfo
	if notification.Level == ports.NotificationError {
		level = slog.LevelError
	}
	n.logger.Log(ctx, level, notification.Message,
		"order_id", notification.OrderID.String(), "notification_level", string(notification.Level))
}

// Publisher logs transitions at info level and ticks at debug level.
type Publisher struct {
	logger *slog.Logger
}

func NewPublisher(logger *slog.Logger) *Publisher {
	return &Publisher{logger: logger.With("component", "tracking_publisher")}
}

func (p *Publisher) PublishStatusChanged(ctx context.Context, event ports.StatusChangedEvent) {
	p.logger.InfoContext(ctx, "Order status changed",
		"order_id", event.OrderID.String(),
		"from", event.From,
		"to", event.To,
		"driver", event.DriverName,
		"progress", event.Progress,
	)
}

func (p *Publisher) PublishProgress(ctx context.Context, event ports.ProgressEvent) {
	p.logger.DebugContext(ctx, "Order progress",
		"order_id", event.OrderID.String(),
		"progress", event.Progress,
		"label", event.Label,
	)
}

func (p *Publisher) PublishCleared(ctx context.Context, orderID kernel.UUID) {
	p.logger.InfoContext(ctx, "Order tracking cleared", "order_id", orderID.String())
}
