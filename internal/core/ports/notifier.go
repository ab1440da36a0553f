package ports

import (
	"context"

	"tracking/internal/core/domain/model/kernel"
)

// NotificationLevel is the toast style of a notification.
type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationInfo    NotificationLevel = "info"
	NotificationError   NotificationLevel = "error"
)

// Notification is a short customer-facing message about an order.
type Notification struct {
	OrderID kernel.UUID       `json:"orderId"`
	Level   NotificationLevel `json:"level"`
	Message string            `json:"message"`
}

// Notifier delivers notifications. Notify is fire-and-forget: it must not
// block the caller and has no error to report.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}
