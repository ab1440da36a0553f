package tracking_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"tracking/internal/adapters/out/scheduler"
	"tracking/internal/core/application/tracking"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/core/domain/model/route"
	"tracking/internal/core/domain/services"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"

	"github.com/facebookgo/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type firstChooser struct{}

func (firstChooser) IntN(int) int { return 0 }

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(_ context.Context, notification ports.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, notification.Message)
}

func (n *recordingNotifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

type recordingPublisher struct {
	mu       sync.Mutex
	statuses []string
	progress []float64
	cleared  []kernel.UUID
}

func (p *recordingPublisher) PublishStatusChanged(_ context.Context, e ports.StatusChangedEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.statuses = append(p.statuses, e.To)
}

func (p *recordingPublisher) PublishProgress(_ context.Context, e ports.ProgressEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.progress = append(p.progress, e.Progress)
}

func (p *recordingPublisher) PublishCleared(_ context.Context, id kernel.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cleared = append(p.cleared, id)
}

func (p *recordingPublisher) Cleared() []kernel.UUID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]kernel.UUID(nil), p.cleared...)
}

func (p *recordingPublisher) Statuses() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.statuses...)
}

type recordingRecorder struct {
	mu     sync.Mutex
	orders []*order.Order
	err    error
}

func (r *recordingRecorder) RecordDelivered(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append([]*order.Order{o}, r.orders...)
	return r.err
}

// manualScheduler hands callbacks back to the test and ignores Stop, so stale
// callbacks can be fired on purpose.
type manualScheduler struct {
	callbacks []func()
}

type noopTimer struct{}

func (noopTimer) Stop() {}

func (s *manualScheduler) AfterFunc(_ time.Duration, f func()) ports.Timer {
	s.callbacks = append(s.callbacks, f)
	return noopTimer{}
}

func (s *manualScheduler) Now() time.Time { return time.Unix(0, 0) }

type fixture struct {
	clock     *clock.Mock
	session   *tracking.Session
	notifier  *recordingNotifier
	publisher *recordingPublisher
	recorder  *recordingRecorder
}

func newFixture(t *testing.T, sched ports.Scheduler) fixture {
	t.Helper()
	f := fixture{
		notifier:  &recordingNotifier{},
		publisher: &recordingPublisher{},
		recorder:  &recordingRecorder{},
	}
	if sched == nil {
		f.clock = clock.NewMock()
		sched = scheduler.New(f.clock)
	}

	dispatcher, err := services.NewDriverDispatcher(services.DefaultDriverNames(), services.DefaultDriverPhone, firstChooser{})
	require.NoError(t, err)

	f.session, err = tracking.NewSession(tracking.Dependencies{
		Scheduler:  sched,
		Dispatcher: dispatcher,
		Timings:    services.DefaultSimulationTimings(),
		Recorder:   f.recorder,
		Notifier:   f.notifier,
		Publisher:  f.publisher,
		Logger:     slog.New(slog.DiscardHandler),
	})
	require.NoError(t, err)
	return f
}

func newPlacedOrder(t *testing.T) *order.Order {
	t.Helper()
	price, err := kernel.NewMoney(500)
	require.NoError(t, err)
	item, err := order.NewItem("A", "Masala Dosa", price, 1)
	require.NoError(t, err)
	payment, err := order.NewPayment(order.PaymentMethodUPI, "customer@okbank")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "r-1", "Udupi Grand", []order.Item{item}, payment, time.Unix(0, 0))
	require.NoError(t, err)
	return o
}

func snapshotStatus(t *testing.T, s *tracking.Session) order.Status {
	t.Helper()
	snap, err := s.Snapshot()
	require.NoError(t, err)
	return snap.Order.Status()
}

func TestSession_FullScenario(t *testing.T) {
	// Given
	f := newFixture(t, nil)
	o := newPlacedOrder(t)

	// When
	require.NoError(t, f.session.Start(t.Context(), o))

	// Then: PLACED with progress 0 at the driver start
	snap, err := f.session.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, order.Placed, snap.Order.Status())
	assert.Zero(t, snap.Progress)
	assert.True(t, snap.Position.Point.IsEqual(route.Default().Start()))

	// When: 2000ms elapse
	f.clock.Add(1999 * time.Millisecond)
	assert.Equal(t, order.Placed, snapshotStatus(t, f.session))
	f.clock.Add(time.Millisecond)

	// Then
	assert.Equal(t, order.FindingDriver, snapshotStatus(t, f.session))
	assert.Empty(t, f.notifier.Messages())

	// When: 3000ms more
	f.clock.Add(3 * time.Second)

	// Then
	snap, err = f.session.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, order.DriverAssigned, snap.Order.Status())
	require.NotNil(t, snap.Order.Driver())
	assert.Equal(t, "Ramesh Kumar", snap.Order.Driver().Name())
	assert.Equal(t, "+91 98765 43210", snap.Order.Driver().Phone())
	assert.Equal(t, []string{"Driver Ramesh Kumar assigned!"}, f.notifier.Messages())

	// When: the ride plays out
	f.clock.Add(time.Minute)

	// Then
	snap, err = f.session.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, order.Delivered, snap.Order.Status())
	assert.Equal(t, route.MaxProgress, snap.Progress)
	assert.True(t, snap.Position.Point.IsEqual(route.Default().Destination()))
	assert.False(t, snap.DeliveredAt.IsZero())

	assert.Equal(t, []string{
		"Driver Ramesh Kumar assigned!",
		"Driver picked up your order!",
		"Order Delivered!",
	}, f.notifier.Messages())
	assert.Equal(t, []string{"PLACED", "FINDING_DRIVER", "DRIVER_ASSIGNED", "PICKED_UP", "DELIVERED"},
		f.publisher.Statuses())

	require.Len(t, f.recorder.orders, 1)
	recorded := f.recorder.orders[0]
	assert.True(t, recorded.ID().IsEqual(o.ID()))
	assert.Equal(t, order.Delivered, recorded.Status())
	assert.Equal(t, int64(500), recorded.Total().Rupees())
	assert.Equal(t, []order.Item{o.Items()[0]}, recorded.Items())
}

func TestSession_ProgressIsMonotonic(t *testing.T) {
	// Given
	f := newFixture(t, nil)
	require.NoError(t, f.session.Start(t.Context(), newPlacedOrder(t)))

	// When
	f.clock.Add(2 * time.Minute)

	// Then
	f.publisher.mu.Lock()
	defer f.publisher.mu.Unlock()
	require.NotEmpty(t, f.publisher.progress)
	for i := 1; i < len(f.publisher.progress); i++ {
		require.GreaterOrEqual(t, f.publisher.progress[i], f.publisher.progress[i-1])
	}
	assert.Contains(t, f.publisher.progress, route.PickupProgress)
	assert.Equal(t, route.MaxProgress, f.publisher.progress[len(f.publisher.progress)-1])
}

func TestSession_PickupHold(t *testing.T) {
	// Given: driver assigned at t=5s
	f := newFixture(t, nil)
	require.NoError(t, f.session.Start(t.Context(), newPlacedOrder(t)))
	f.clock.Add(5 * time.Second)

	// When: 450 ticks of 0.10 reach 45
	for snapshotStatus(t, f.session) == order.DriverAssigned {
		f.clock.Add(30 * time.Millisecond)
	}

	// Then: the hold tick moved to PICKED_UP at exactly 45
	snap, err := f.session.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, order.PickedUp, snap.Order.Status())
	assert.Equal(t, route.PickupProgress, snap.Progress)
	assert.True(t, snap.Position.Point.IsEqual(route.Default().Restaurant()))
	assert.Equal(t, "On the way", snap.Position.Label())
}

func TestSession_ClearBeforeFire(t *testing.T) {
	// Given
	f := newFixture(t, nil)
	o := newPlacedOrder(t)
	require.NoError(t, f.session.Start(t.Context(), o))
	f.clock.Add(time.Second)

	// When
	require.NoError(t, f.session.Clear(t.Context()))
	f.clock.Add(time.Minute)

	// Then
	_, err := f.session.Snapshot()
	require.ErrorIs(t, err, tracking.ErrNoActiveOrder)
	assert.Equal(t, order.Placed, o.Status())
	assert.Nil(t, o.Driver())
	assert.Empty(t, f.notifier.Messages())
	assert.Equal(t, []string{"PLACED"}, f.publisher.Statuses())
	assert.Equal(t, []kernel.UUID{o.ID()}, f.publisher.cleared)
	assert.Empty(t, f.recorder.orders)
}

func TestSession_ClearMidRide(t *testing.T) {
	// Given
	f := newFixture(t, nil)
	require.NoError(t, f.session.Start(t.Context(), newPlacedOrder(t)))
	f.clock.Add(10 * time.Second)
	require.Equal(t, order.DriverAssigned, snapshotStatus(t, f.session))

	// When
	require.NoError(t, f.session.Clear(t.Context()))
	f.clock.Add(time.Minute)

	// Then
	_, err := f.session.Snapshot()
	require.ErrorIs(t, err, tracking.ErrNoActiveOrder)
	assert.Len(t, f.notifier.Messages(), 1)
	assert.Empty(t, f.recorder.orders)
}

func TestSession_Clear_Idempotent(t *testing.T) {
	f := newFixture(t, nil)

	require.NoError(t, f.session.Clear(t.Context()))
	require.NoError(t, f.session.Clear(t.Context()))
	assert.Empty(t, f.publisher.cleared)
}

func TestSession_StaleCallbackIsIgnored(t *testing.T) {
	// Given: a scheduler whose timers cannot be stopped
	sched := &manualScheduler{}
	f := newFixture(t, sched)
	o := newPlacedOrder(t)
	require.NoError(t, f.session.Start(t.Context(), o))
	require.Len(t, sched.callbacks, 1)
	stale := sched.callbacks[0]

	// When: the order is cleared and the old callback fires anyway
	require.NoError(t, f.session.Clear(t.Context()))
	stale()

	// Then
	assert.Equal(t, order.Placed, o.Status())
	assert.Len(t, sched.callbacks, 1)

	// When: a new order starts, the old callback still does nothing
	next := newPlacedOrder(t)
	require.NoError(t, f.session.Start(t.Context(), next))
	stale()

	// Then
	assert.Equal(t, order.Placed, next.Status())

	// and the fresh callback advances the new order
	sched.callbacks[len(sched.callbacks)-1]()
	assert.Equal(t, order.FindingDriver, next.Status())
}

func TestSession_Start(t *testing.T) {
	t.Run("rejects a second order while one is in progress", func(t *testing.T) {
		f := newFixture(t, nil)
		first := newPlacedOrder(t)
		require.NoError(t, f.session.Start(t.Context(), first))
		f.clock.Add(6 * time.Second)

		err := f.session.Start(t.Context(), newPlacedOrder(t))

		require.ErrorIs(t, err, tracking.ErrOrderInProgress)
		require.ErrorIs(t, err, errs.ErrObjectConflict)
		snap, snapErr := f.session.Snapshot()
		require.NoError(t, snapErr)
		assert.True(t, snap.Order.ID().IsEqual(first.ID()))
	})

	t.Run("replaces a delivered order", func(t *testing.T) {
		f := newFixture(t, nil)
		require.NoError(t, f.session.Start(t.Context(), newPlacedOrder(t)))
		f.clock.Add(2 * time.Minute)
		require.Equal(t, order.Delivered, snapshotStatus(t, f.session))
		next := newPlacedOrder(t)

		err := f.session.Start(t.Context(), next)

		require.NoError(t, err)
		snap, snapErr := f.session.Snapshot()
		require.NoError(t, snapErr)
		assert.True(t, snap.Order.ID().IsEqual(next.ID()))
		assert.Zero(t, snap.Progress)
		assert.True(t, snap.DeliveredAt.IsZero())
	})

	t.Run("replacing a delivered order publishes it as cleared", func(t *testing.T) {
		f := newFixture(t, nil)
		first := newPlacedOrder(t)
		require.NoError(t, f.session.Start(t.Context(), first))
		f.clock.Add(2 * time.Minute)

		require.NoError(t, f.session.Start(t.Context(), newPlacedOrder(t)))

		cleared := f.publisher.Cleared()
		require.Len(t, cleared, 1)
		assert.True(t, cleared[0].IsEqual(first.ID()))
		statuses := f.publisher.Statuses()
		assert.Equal(t, order.Placed.String(), statuses[len(statuses)-1])
	})

	t.Run("requires a placed order", func(t *testing.T) {
		f := newFixture(t, nil)
		o := newPlacedOrder(t)
		require.NoError(t, o.FindDriver())

		err := f.session.Start(t.Context(), o)

		require.ErrorIs(t, err, services.ErrOrderIsNotPlaced)
		_, snapErr := f.session.Snapshot()
		require.ErrorIs(t, snapErr, tracking.ErrNoActiveOrder)
	})

	t.Run("callbacks outlive the request context", func(t *testing.T) {
		f := newFixture(t, nil)
		ctx, cancel := context.WithCancel(t.Context())
		require.NoError(t, f.session.Start(ctx, newPlacedOrder(t)))
		cancel()

		f.clock.Add(2 * time.Minute)

		assert.Equal(t, order.Delivered, snapshotStatus(t, f.session))
	})
}

func TestSession_SnapshotIsACopy(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.session.Start(t.Context(), newPlacedOrder(t)))
	snap, err := f.session.Snapshot()
	require.NoError(t, err)

	f.clock.Add(2 * time.Second)

	assert.Equal(t, order.Placed, snap.Order.Status())
	assert.Equal(t, order.FindingDriver, snapshotStatus(t, f.session))
}

func TestSession_ClearDeliveredBefore(t *testing.T) {
	// Given
	f := newFixture(t, nil)
	require.NoError(t, f.session.Start(t.Context(), newPlacedOrder(t)))

	// Then: an order still in flight is kept
	assert.False(t, f.session.ClearDeliveredBefore(t.Context(), f.clock.Now().Add(time.Hour)))

	// Given: the order is delivered
	f.clock.Add(2 * time.Minute)
	snap, err := f.session.Snapshot()
	require.NoError(t, err)
	deliveredAt := snap.DeliveredAt

	// Then
	assert.False(t, f.session.ClearDeliveredBefore(t.Context(), deliveredAt.Add(-time.Second)))
	assert.True(t, f.session.ClearDeliveredBefore(t.Context(), deliveredAt))
	_, err = f.session.Snapshot()
	require.ErrorIs(t, err, tracking.ErrNoActiveOrder)
	assert.False(t, f.session.ClearDeliveredBefore(t.Context(), deliveredAt))
}

func TestSession_RecorderFailureDoesNotStopDelivery(t *testing.T) {
	f := newFixture(t, nil)
	f.recorder.err = errors.New("db is down")
	require.NoError(t, f.session.Start(t.Context(), newPlacedOrder(t)))

	f.clock.Add(2 * time.Minute)

	assert.Equal(t, order.Delivered, snapshotStatus(t, f.session))
	assert.Contains(t, f.notifier.Messages(), "Order Delivered!")
}

// blockingRecorder holds RecordDelivered until release is closed.
type blockingRecorder struct {
	entered chan struct{}
	release chan struct{}
}

func (r *blockingRecorder) RecordDelivered(context.Context, *order.Order) error {
	close(r.entered)
	<-r.release
	return nil
}

func TestSession_SnapshotWhileRecording(t *testing.T) {
	// Given
	clk := clock.NewMock()
	recorder := &blockingRecorder{entered: make(chan struct{}), release: make(chan struct{})}
	dispatcher, err := services.NewDriverDispatcher(services.DefaultDriverNames(), services.DefaultDriverPhone, firstChooser{})
	require.NoError(t, err)
	session, err := tracking.NewSession(tracking.Dependencies{
		Scheduler:  scheduler.New(clk),
		Dispatcher: dispatcher,
		Timings:    services.DefaultSimulationTimings(),
		Recorder:   recorder,
		Notifier:   &recordingNotifier{},
		Publisher:  &recordingPublisher{},
		Logger:     slog.New(slog.DiscardHandler),
	})
	require.NoError(t, err)
	require.NoError(t, session.Start(t.Context(), newPlacedOrder(t)))

	done := make(chan struct{})
	go func() {
		defer close(done)
		clk.Add(2 * time.Minute)
	}()

	// When: the recorder is still writing
	select {
	case <-recorder.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("delivered order was never recorded")
	}

	// Then: readers are not blocked
	snapshots := make(chan order.Status, 1)
	go func() {
		snap, snapErr := session.Snapshot()
		if snapErr == nil {
			snapshots <- snap.Order.Status()
		}
		close(snapshots)
	}()
	select {
	case status := <-snapshots:
		assert.Equal(t, order.Delivered, status)
	case <-time.After(5 * time.Second):
		t.Fatal("snapshot blocked while recording")
	}

	close(recorder.release)
	<-done
}

func TestSession_Close(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.session.Start(t.Context(), newPlacedOrder(t)))

	f.session.Close()
	f.clock.Add(time.Minute)

	assert.Equal(t, order.Placed, snapshotStatus(t, f.session))
}

func TestNewSession_RequiresDependencies(t *testing.T) {
	_, err := tracking.NewSession(tracking.Dependencies{Timings: services.DefaultSimulationTimings()})

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
