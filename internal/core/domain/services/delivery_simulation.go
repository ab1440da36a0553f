package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"tracking/internal/core/domain/model/order"
	"tracking/internal/core/domain/model/route"
	"tracking/internal/pkg/errs"
)

var (
	// ErrSimulationFinished is returned by Advance once the order reached a
	// terminal status.
	ErrSimulationFinished = errors.New("simulation is finished")

	// ErrOrderIsNotPlaced is returned when a simulation is started for an
	// order that already left the Placed status.
	ErrOrderIsNotPlaced = errors.New("order is not in PLACED status")
)

// SimulationTimings holds the pacing of a simulated delivery.
type SimulationTimings struct {
	// FindDriverDelay is the time spent in Placed.
	FindDriverDelay time.Duration
	// AssignDriverDelay is the time spent in FindingDriver.
	AssignDriverDelay time.Duration
	// TickInterval is the period of progress updates while in transit.
	TickInterval time.Duration
	// PickupStep is the progress added per tick before pickup.
	PickupStep float64
	// DeliveryStep is the progress added per tick after pickup.
	DeliveryStep float64
}

// DefaultSimulationTimings: 2s to start searching, 3s to find a driver, then a
// 30ms tick adding 0.10 until pickup and 0.05 until delivery (about 13.5s and
// 33s of animation).
func DefaultSimulationTimings() SimulationTimings {
	return SimulationTimings{
		FindDriverDelay:   2000 * time.Millisecond,
		AssignDriverDelay: 3000 * time.Millisecond,
		TickInterval:      30 * time.Millisecond,
		PickupStep:        0.10,
		DeliveryStep:      0.05,
	}
}

// WithSpeed divides every delay by speed, keeping the steps. A speed of 2
// plays the delivery twice as fast. Non-positive speeds leave t unchanged.
func (t SimulationTimings) WithSpeed(speed float64) SimulationTimings {
	if speed <= 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return t
	}
	scale := func(d time.Duration) time.Duration {
		return max(time.Duration(float64(d)/speed), time.Millisecond)
	}
	t.FindDriverDelay = scale(t.FindDriverDelay)
	t.AssignDriverDelay = scale(t.AssignDriverDelay)
	t.TickInterval = scale(t.TickInterval)
	return t
}

// Validate requires positive delays and steps.
func (t SimulationTimings) Validate() error {
	var errList []error
	for name, d := range map[string]time.Duration{
		"findDriverDelay":   t.FindDriverDelay,
		"assignDriverDelay": t.AssignDriverDelay,
		"tickInterval":      t.TickInterval,
	} {
		if d <= 0 {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is not positive", d)))
		}
	}
	for name, step := range map[string]float64{
		"pickupStep":   t.PickupStep,
		"deliveryStep": t.DeliveryStep,
	} {
		if !(step > 0) || math.IsInf(step, 0) {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%v is not positive", step)))
		}
	}
	return errors.Join(errList...)
}

// Transition is a status change produced by Advance.
type Transition struct {
	From   order.Status
	To     order.Status
	Driver *order.Driver
}

// Message is the customer-facing notification for the transition, empty when
// the transition is silent (Placed -> FindingDriver).
func (t Transition) Message() string {
	switch t.To {
	case order.DriverAssigned:
		if t.Driver != nil {
			return fmt.Sprintf("Driver %s assigned!", t.Driver.Name())
		}
		return "Driver assigned!"
	case order.PickedUp:
		return "Driver picked up your order!"
	case order.Delivered:
		return "Order Delivered!"
	case order.Cancelled:
		return "Order Cancelled"
	default:
		return ""
	}
}

// Step is the outcome of one Advance call.
type Step struct {
	// Transition is set when the status changed, nil for a plain tick.
	Transition *Transition
	// Progress after the step.
	Progress float64
	// Next is the delay before the following Advance. Zero when Done.
	Next time.Duration
	// Done is true once the order reached a terminal status.
	Done bool
}

// DeliverySimulation is the state machine driving one order from Placed to
// Delivered. It has no notion of time: the caller waits Step.Next (or
// InitialDelay for the first call) between Advance calls.
//
// Per call, depending on the status:
//   - Placed: move to FindingDriver
//   - FindingDriver: dispatch a driver, move to DriverAssigned
//   - DriverAssigned: add PickupStep (capped at route.PickupProgress); once
//     the cap is reached, the following call moves to PickedUp and pins
//     progress at route.PickupProgress
//   - PickedUp: add DeliveryStep (capped at route.MaxProgress); once the cap
//     is reached, the following call moves to Delivered
//
// Progress never decreases. DeliverySimulation is not safe for concurrent use.
type DeliverySimulation struct {
	order      *order.Order
	progress   float64
	timings    SimulationTimings
	dispatcher *DriverDispatcher
}

// NewDeliverySimulation starts a simulation at progress 0 for an order in
// Placed status.
func NewDeliverySimulation(
	o *order.Order,
	dispatcher *DriverDispatcher,
	timings SimulationTimings,
) (*DeliverySimulation, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.Status() != order.Placed {
		return nil, ErrOrderIsNotPlaced
	}
	if dispatcher == nil {
		return nil, errs.NewValueIsRequiredError("dispatcher")
	}
	if err := timings.Validate(); err != nil {
		return nil, err
	}

	return &DeliverySimulation{
		order:      o,
		timings:    timings,
		dispatcher: dispatcher,
	}, nil
}

// Order returns the simulated order. Callers that keep it beyond the current
// step must Clone it.
func (s *DeliverySimulation) Order() *order.Order {
	return s.order
}

// Progress is the current progress in [0, route.MaxProgress].
func (s *DeliverySimulation) Progress() float64 {
	return s.progress
}

// InitialDelay is the delay before the first Advance.
func (s *DeliverySimulation) InitialDelay() time.Duration {
	return s.timings.FindDriverDelay
}

// IsFinished reports whether the order reached a terminal status.
func (s *DeliverySimulation) IsFinished() bool {
	return s.order.Status().IsTerminal()
}

// Advance performs one step of the state machine.
func (s *DeliverySimulation) Advance() (Step, error) {
	switch status := s.order.Status(); status {
	case order.Placed:
		if err := s.order.FindDriver(); err != nil {
			return Step{}, err
		}
		return s.transitioned(status, nil, s.timings.AssignDriverDelay), nil

	case order.FindingDriver:
		driver, err := s.dispatcher.Dispatch(s.order)
		if err != nil {
			return Step{}, err
		}
		return s.transitioned(status, &driver, s.timings.TickInterval), nil

	case order.DriverAssigned:
		if s.progress < route.PickupProgress {
			s.progress = min(s.progress+s.timings.PickupStep, route.PickupProgress)
			return s.ticked(), nil
		}
		if err := s.order.PickUp(); err != nil {
			return Step{}, err
		}
		s.progress = route.PickupProgress
		return s.transitioned(status, nil, s.timings.TickInterval), nil

	case order.PickedUp:
		if s.progress < route.MaxProgress {
			s.progress = min(s.progress+s.timings.DeliveryStep, route.MaxProgress)
			return s.ticked(), nil
		}
		if err := s.order.Deliver(); err != nil {
			return Step{}, err
		}
		step := s.transitioned(status, nil, 0)
		step.Done = true
		return step, nil

	case order.Delivered, order.Cancelled:
		return Step{}, ErrSimulationFinished

	default:
		return Step{}, status.Validate()
	}
}

func (s *DeliverySimulation) ticked() Step {
	return Step{Progress: s.progress, Next: s.timings.TickInterval}
}

func (s *DeliverySimulation) transitioned(from order.Status, driver *order.Driver, next time.Duration) Step {
	return Step{
		Transition: &Transition{From: from, To: s.order.Status(), Driver: driver},
		Progress:   s.progress,
		Next:       next,
	}
}
