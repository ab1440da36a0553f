package tracking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tracking/internal/core/domain/model/order"
	"tracking/internal/core/domain/model/route"
	"tracking/internal/core/domain/services"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"
)

var (
	// ErrNoActiveOrder is returned by Snapshot when nothing is being tracked.
	ErrNoActiveOrder = errors.New("no active order")

	// ErrOrderInProgress is returned by Start while the active order has not
	// reached a terminal status.
	ErrOrderInProgress = errors.New("another order is in progress")
)

// HistoryRecorder receives an order once it is delivered.
type HistoryRecorder interface {
	RecordDelivered(ctx context.Context, o *order.Order) error
}

// HistoryRecorderFunc adapts a function to HistoryRecorder.
type HistoryRecorderFunc func(ctx context.Context, o *order.Order) error

func (f HistoryRecorderFunc) RecordDelivered(ctx context.Context, o *order.Order) error {
	return f(ctx, o)
}

// Dependencies are the collaborators of a Session. Route defaults to
// route.Default() when left zero; every other field is required.
type Dependencies struct {
	Scheduler  ports.Scheduler
	Dispatcher *services.DriverDispatcher
	Timings    services.SimulationTimings
	Route      *route.Route
	Recorder   HistoryRecorder
	Notifier   ports.Notifier
	Publisher  ports.TrackingPublisher
	Logger     *slog.Logger
}

// Snapshot is a consistent copy of the tracked state.
type Snapshot struct {
	Order    *order.Order
	Progress float64
	Position route.Position
	// DeliveredAt is zero until the order is delivered.
	DeliveredAt time.Time
}

// Session owns the single active order of a storefront and drives its
// simulation on one-shot timers.
//
// Every timer callback and every public method runs under one mutex, so state
// changes are applied one at a time in scheduling order. Recording a delivered
// order is the one step done outside it. Only one timer is
// pending at any moment. Clear and Start bump a generation counter; a callback
// carrying an older generation returns without touching state.
type Session struct {
	mu sync.Mutex

	scheduler  ports.Scheduler
	dispatcher *services.DriverDispatcher
	timings    services.SimulationTimings
	route      route.Route
	recorder   HistoryRecorder
	notifier   ports.Notifier
	publisher  ports.TrackingPublisher
	logger     *slog.Logger

	ctx         context.Context
	active      *services.DeliverySimulation
	generation  uint64
	timer       ports.Timer
	deliveredAt time.Time
}

// NewSession validates the dependencies and returns an empty session.
func NewSession(deps Dependencies) (*Session, error) {
	var errList []error
	if deps.Scheduler == nil {
		errList = append(errList, errs.NewValueIsRequiredError("scheduler"))
	}
	if deps.Dispatcher == nil {
		errList = append(errList, errs.NewValueIsRequiredError("dispatcher"))
	}
	if deps.Recorder == nil {
		errList = append(errList, errs.NewValueIsRequiredError("recorder"))
	}
	if deps.Notifier == nil {
		errList = append(errList, errs.NewValueIsRequiredError("notifier"))
	}
	if deps.Publisher == nil {
		errList = append(errList, errs.NewValueIsRequiredError("publisher"))
	}
	if deps.Logger == nil {
		errList = append(errList, errs.NewValueIsRequiredError("logger"))
	}
	errList = append(errList, deps.Timings.Validate())
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	r := route.Default()
	if deps.Route != nil {
		r = *deps.Route
	}

	return &Session{
		scheduler:  deps.Scheduler,
		dispatcher: deps.Dispatcher,
		timings:    deps.Timings,
		route:      r,
		recorder:   deps.Recorder,
		notifier:   deps.Notifier,
		publisher:  deps.Publisher,
		logger:     deps.Logger.With("component", "tracking_session"),
		ctx:        context.Background(),
	}, nil
}

// Route returns the route markers are placed on.
func (s *Session) Route() route.Route {
	return s.route
}

// Now is the session clock.
func (s *Session) Now() time.Time {
	return s.scheduler.Now()
}

// Start makes o the active order at progress 0 and schedules its first
// transition. o must be in Placed status. A delivered active order is cleared
// first, exactly as Clear would; any other active order makes Start fail with
// ErrOrderInProgress.
//
// Callbacks run with a context detached from ctx's cancellation.
func (s *Session) Start(ctx context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil && !s.active.IsFinished() {
		current := s.active.Order().ID()
		return fmt.Errorf("%w: %w", ErrOrderInProgress, errs.NewObjectConflictError("order", current))
	}

	sim, err := services.NewDeliverySimulation(o, s.dispatcher, s.timings)
	if err != nil {
		return err
	}

	if s.active != nil {
		s.clearLocked(ctx)
	}
	s.stopTimerLocked()
	s.generation++
	s.ctx = context.WithoutCancel(ctx)
	s.active = sim
	s.deliveredAt = time.Time{}

	s.publisher.PublishStatusChanged(s.ctx, ports.StatusChangedEvent{
		OrderID:    o.ID(),
		To:         o.Status().String(),
		OccurredAt: s.scheduler.Now(),
	})
	s.publishProgressLocked()

	s.scheduleLocked(sim.InitialDelay())
	s.logger.InfoContext(ctx, "Order tracking started", "order_id", o.ID().String())
	return nil
}

// Clear drops the active order and cancels its pending timer. It is a no-op
// when nothing is active.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return nil
	}
	s.clearLocked(ctx)
	return nil
}

// ClearDeliveredBefore clears the active order if it was delivered at or
// before cutoff. It reports whether an order was cleared.
func (s *Session) ClearDeliveredBefore(ctx context.Context, cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil || s.active.Order().Status() != order.Delivered {
		return false
	}
	if s.deliveredAt.After(cutoff) {
		return false
	}
	s.clearLocked(ctx)
	return true
}

// Snapshot returns a copy of the active order with its progress and marker
// position, or ErrNoActiveOrder.
func (s *Session) Snapshot() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return Snapshot{}, ErrNoActiveOrder
	}
	progress := s.active.Progress()
	return Snapshot{
		Order:       s.active.Order().Clone(),
		Progress:    progress,
		Position:    s.route.Position(progress),
		DeliveredAt: s.deliveredAt,
	}, nil
}

// Close cancels the pending timer and keeps the active order as is.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimerLocked()
	s.generation++
}

func (s *Session) clearLocked(ctx context.Context) {
	id := s.active.Order().ID()

	s.stopTimerLocked()
	s.generation++
	s.active = nil
	s.deliveredAt = time.Time{}

	s.publisher.PublishCleared(ctx, id)
	s.logger.InfoContext(ctx, "Order tracking cleared", "order_id", id.String())
}

func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) scheduleLocked(d time.Duration) {
	gen := s.generation
	s.timer = s.scheduler.AfterFunc(d, func() { s.fire(gen) })
}

// fire applies one simulation step. A delivered order is recorded after the
// lock is released so a slow recorder never blocks readers.
func (s *Session) fire(gen uint64) {
	ctx, delivered := s.advance(gen)
	if delivered == nil {
		return
	}
	if err := s.recorder.RecordDelivered(ctx, delivered); err != nil {
		s.logger.ErrorContext(ctx, "Failed to record delivered order",
			"order_id", delivered.ID().String(), "error", err)
	}
}

// advance returns a copy of the order when this step delivered it.
func (s *Session) advance(gen uint64) (context.Context, *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.logger.DebugContext(s.ctx, "Stale tracking callback ignored", "generation", gen)
		return s.ctx, nil
	}
	s.timer = nil
	if s.active == nil {
		return s.ctx, nil
	}

	step, err := s.active.Advance()
	if err != nil {
		s.logger.ErrorContext(s.ctx, "Order simulation step failed",
			"order_id", s.active.Order().ID().String(), "error", err)
		return s.ctx, nil
	}

	o := s.active.Order()
	if t := step.Transition; t != nil {
		event := ports.StatusChangedEvent{
			OrderID:    o.ID(),
			From:       t.From.String(),
			To:         t.To.String(),
			Progress:   step.Progress,
			OccurredAt: s.scheduler.Now(),
		}
		if t.Driver != nil {
			event.DriverName = t.Driver.Name()
		}
		s.publisher.PublishStatusChanged(s.ctx, event)

		if msg := t.Message(); msg != "" {
			s.notifier.Notify(s.ctx, ports.Notification{
				OrderID: o.ID(),
				Level:   ports.NotificationSuccess,
				Message: msg,
			})
		}
		s.logger.InfoContext(s.ctx, "Order status changed",
			"order_id", o.ID().String(), "from", t.From.String(), "to", t.To.String())
	}
	s.publishProgressLocked()

	if step.Done {
		s.deliveredAt = s.scheduler.Now()
		return s.ctx, o.Clone()
	}

	s.scheduleLocked(step.Next)
	return s.ctx, nil
}

func (s *Session) publishProgressLocked() {
	o := s.active.Order()
	progress := s.active.Progress()
	pos := s.route.Position(progress)

	s.publisher.PublishProgress(s.ctx, ports.ProgressEvent{
		OrderID:  o.ID(),
		Status:   o.Status().String(),
		Progress: progress,
		X:        pos.X(),
		Y:        pos.Y(),
		Angle:    pos.Angle,
		Label:    pos.Label(),
	})
}
