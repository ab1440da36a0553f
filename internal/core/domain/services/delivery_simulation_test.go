package services_test

import (
	"testing"
	"time"

	"tracking/internal/core/domain/model/order"
	"tracking/internal/core/domain/model/route"
	"tracking/internal/core/domain/services"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDispatcher(t *testing.T) *services.DriverDispatcher {
	t.Helper()
	d, err := services.NewDriverDispatcher([]string{"Ramesh Kumar"}, services.DefaultDriverPhone, &fixedChooser{picks: []int{0}})
	require.NoError(t, err)
	return d
}

func newSimulation(t *testing.T) *services.DeliverySimulation {
	t.Helper()
	sim, err := services.NewDeliverySimulation(newPlacedOrder(t), newDispatcher(t), services.DefaultSimulationTimings())
	require.NoError(t, err)
	return sim
}

func TestNewDeliverySimulation(t *testing.T) {
	t.Run("starts at zero progress", func(t *testing.T) {
		sim := newSimulation(t)

		assert.Zero(t, sim.Progress())
		assert.Equal(t, order.Placed, sim.Order().Status())
		assert.Equal(t, 2*time.Second, sim.InitialDelay())
		assert.False(t, sim.IsFinished())
	})

	t.Run("rejects order past PLACED", func(t *testing.T) {
		o := newOrderFindingDriver(t)

		_, err := services.NewDeliverySimulation(o, newDispatcher(t), services.DefaultSimulationTimings())

		require.ErrorIs(t, err, services.ErrOrderIsNotPlaced)
	})

	t.Run("rejects missing dispatcher", func(t *testing.T) {
		_, err := services.NewDeliverySimulation(newPlacedOrder(t), nil, services.DefaultSimulationTimings())

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects invalid timings", func(t *testing.T) {
		timings := services.DefaultSimulationTimings()
		timings.TickInterval = 0
		timings.DeliveryStep = -1

		_, err := services.NewDeliverySimulation(newPlacedOrder(t), newDispatcher(t), timings)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestDeliverySimulation_StatusSteps(t *testing.T) {
	// Given
	sim := newSimulation(t)

	// When: Placed -> FindingDriver
	step, err := sim.Advance()

	// Then
	require.NoError(t, err)
	require.NotNil(t, step.Transition)
	assert.Equal(t, order.Placed, step.Transition.From)
	assert.Equal(t, order.FindingDriver, step.Transition.To)
	assert.Empty(t, step.Transition.Message())
	assert.Equal(t, 3*time.Second, step.Next)
	assert.Nil(t, sim.Order().Driver())

	// When: FindingDriver -> DriverAssigned
	step, err = sim.Advance()

	// Then
	require.NoError(t, err)
	require.NotNil(t, step.Transition)
	assert.Equal(t, order.DriverAssigned, step.Transition.To)
	require.NotNil(t, step.Transition.Driver)
	assert.Equal(t, "Driver Ramesh Kumar assigned!", step.Transition.Message())
	assert.Equal(t, 30*time.Millisecond, step.Next)
	assert.Equal(t, "Ramesh Kumar", sim.Order().Driver().Name())
	assert.Equal(t, services.DefaultDriverPhone, sim.Order().Driver().Phone())
	assert.Zero(t, step.Progress)
}

func TestDeliverySimulation_FullRun(t *testing.T) {
	// Given
	sim := newSimulation(t)

	var (
		transitions []order.Status
		messages    []string
		last        float64
		steps       int
	)

	// When
	for !sim.IsFinished() {
		step, err := sim.Advance()
		require.NoError(t, err)
		steps++
		require.Less(t, steps, 5000, "simulation does not terminate")

		// progress never decreases and stays in range
		require.GreaterOrEqual(t, step.Progress, last)
		require.LessOrEqual(t, step.Progress, route.MaxProgress)
		last = step.Progress

		if step.Transition == nil {
			require.True(t, sim.Order().Status().IsInTransit())
			continue
		}
		transitions = append(transitions, step.Transition.To)
		if msg := step.Transition.Message(); msg != "" {
			messages = append(messages, msg)
		}

		switch step.Transition.To {
		case order.PickedUp:
			assert.Equal(t, route.PickupProgress, step.Progress)
		case order.Delivered:
			assert.Equal(t, route.MaxProgress, step.Progress)
			assert.True(t, step.Done)
			assert.Zero(t, step.Next)
		}
	}

	// Then
	assert.Equal(t, []order.Status{
		order.FindingDriver,
		order.DriverAssigned,
		order.PickedUp,
		order.Delivered,
	}, transitions)
	assert.Equal(t, []string{
		"Driver Ramesh Kumar assigned!",
		"Driver picked up your order!",
		"Order Delivered!",
	}, messages)

	_, err := sim.Advance()
	require.ErrorIs(t, err, services.ErrSimulationFinished)
}

func TestDeliverySimulation_PickupHoldTick(t *testing.T) {
	// Given: a driver just assigned
	sim := newSimulation(t)
	_, err := sim.Advance()
	require.NoError(t, err)
	_, err = sim.Advance()
	require.NoError(t, err)

	// When: ticking until the pickup cap is reached
	ticks := 0
	for sim.Progress() < route.PickupProgress {
		step, advanceErr := sim.Advance()
		require.NoError(t, advanceErr)
		require.Nil(t, step.Transition)
		ticks++
	}

	// Then: about 450 ticks of 0.10, still DriverAssigned until the next tick
	assert.InDelta(t, 450, ticks, 1)
	assert.Equal(t, order.DriverAssigned, sim.Order().Status())

	step, err := sim.Advance()
	require.NoError(t, err)
	require.NotNil(t, step.Transition)
	assert.Equal(t, order.PickedUp, step.Transition.To)
	assert.Equal(t, route.PickupProgress, sim.Progress())

	// and the next tick moves on with the delivery step
	step, err = sim.Advance()
	require.NoError(t, err)
	assert.Nil(t, step.Transition)
	assert.InDelta(t, route.PickupProgress+0.05, step.Progress, 1e-9)
}

func TestSimulationTimings_WithSpeed(t *testing.T) {
	base := services.DefaultSimulationTimings()

	fast := base.WithSpeed(10)

	assert.Equal(t, 200*time.Millisecond, fast.FindDriverDelay)
	assert.Equal(t, 300*time.Millisecond, fast.AssignDriverDelay)
	assert.Equal(t, 3*time.Millisecond, fast.TickInterval)
	assert.InDelta(t, base.PickupStep, fast.PickupStep, 1e-12)
	assert.Equal(t, base, base.WithSpeed(0))
	assert.Equal(t, base, base.WithSpeed(-2))
	require.NoError(t, fast.Validate())
}

func TestTransition_Message(t *testing.T) {
	tests := []struct {
		to   order.Status
		want string
	}{
		{order.FindingDriver, ""},
		{order.DriverAssigned, "Driver assigned!"},
		{order.PickedUp, "Driver picked up your order!"},
		{order.Delivered, "Order Delivered!"},
		{order.Cancelled, "Order Cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, services.Transition{To: tt.to}.Message())
		})
	}
}
