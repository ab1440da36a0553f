// Package kafka publishes order status changes to a Kafka topic so other
// services can follow the lifecycle of an order. Progress ticks stay local.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"

	kafkago "github.com/segmentio/kafka-go"
)

const (
	EventTypeHeader     = "event-type"
	EventStatusChanged  = "order.status_changed"
	EventTrackingClosed = "order.tracking_cleared"
)

// MessageWriter is the part of *kafkago.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// NewWriter returns an async writer keyed by order id, so every event of an
// order lands on the same partition.
func NewWriter(host string, topic string) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:         kafkago.TCP(host),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		Async:        true,
		BatchTimeout: 50 * time.Millisecond,
	}
}

type clearedEvent struct {
	OrderID kernel.UUID `json:"orderId"`
}

// OrderChangedPublisher implements ports.TrackingPublisher on top of Kafka.
type OrderChangedPublisher struct {
	writer MessageWriter
	logger *slog.Logger
}

func NewOrderChangedPublisher(writer MessageWriter, logger *slog.Logger) (*OrderChangedPublisher, error) {
	if writer == nil {
		return nil, errs.NewValueIsRequiredError("writer")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	return &OrderChangedPublisher{
		writer: writer,
		logger: logger.With("component", "kafka_order_changed_publisher"),
	}, nil
}

func (p *OrderChangedPublisher) PublishStatusChanged(ctx context.Context, event ports.StatusChangedEvent) {
	p.write(ctx, event.OrderID, EventStatusChanged, event)
}

// PublishProgress is a no-op: ticks are too frequent for the topic.
func (p *OrderChangedPublisher) PublishProgress(context.Context, ports.ProgressEvent) {}

func (p *OrderChangedPublisher) PublishCleared(ctx context.Context, orderID kernel.UUID) {
	p.write(ctx, orderID, EventTrackingClosed, clearedEvent{OrderID: orderID})
}

func (p *OrderChangedPublisher) Close() error {
	return p.writer.Close()
}

func (p *OrderChangedPublisher) write(ctx context.Context, orderID kernel.UUID, eventType string, payload any) {
	value, err := json.Marshal(payload)
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to marshal order event", "event_type", eventType, "error", err)
		return
	}

	msg := kafkago.Message{
		Key:     []byte(orderID.String()),
		Value:   value,
		Headers: []kafkago.Header{{Key: EventTypeHeader, Value: []byte(eventType)}},
	}
	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.ErrorContext(ctx, "Failed to publish order event",
			"order_id", orderID.String(), "event_type", eventType, "error", err)
	}
}
