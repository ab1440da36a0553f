// Package metrics exposes the tracking session as Prometheus metrics.
package metrics

import (
	"context"
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "order_tracking"

// TrackingMetrics counts transitions and notifications and mirrors the
// progress of the active order. It is both a ports.Notifier and a
// ports.TrackingPublisher.
type TrackingMetrics struct {
	transitions   *prometheus.CounterVec
	notifications *prometheus.CounterVec
	cleared       prometheus.Counter
	progress      prometheus.Gauge
	active        prometheus.Gauge
}

func NewTrackingMetrics(reg prometheus.Registerer) (*TrackingMetrics, error) {
	if reg == nil {
		return nil, errs.NewValueIsRequiredError("registerer")
	}

	m := &TrackingMetrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_transitions_total",
			Help:      "Order status transitions by target status.",
		}, []string{"status"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Customer notifications by level.",
		}, []string{"level"}),
		cleared: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_cleared_total",
			Help:      "Active orders cleared.",
		}),
		progress: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_order_progress",
			Help:      "Progress of the active order, 0 to 100.",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_orders",
			Help:      "1 while an order is being tracked.",
		}),
	}

	err := errors.Join(
		reg.Register(m.transitions),
		reg.Register(m.notifications),
		reg.Register(m.cleared),
		reg.Register(m.progress),
		reg.Register(m.active),
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *TrackingMetrics) Notify(_ context.Context, n ports.Notification) {
	m.notifications.WithLabelValues(string(n.Level)).Inc()
}

func (m *TrackingMetrics) PublishStatusChanged(_ context.Context, event ports.StatusChangedEvent) {
	m.transitions.WithLabelValues(event.To).Inc()
	m.active.Set(1)
}

func (m *TrackingMetrics) PublishProgress(_ context.Context, event ports.ProgressEvent) {
	m.progress.Set(event.Progress)
}

func (m *TrackingMetrics) PublishCleared(context.Context, kernel.UUID) {
	m.cleared.Inc()
	m.active.Set(0)
	m.progress.Set(0)
}
