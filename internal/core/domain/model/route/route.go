package route

import (
	"fmt"
	"math"
	"slices"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
)

const (
	// PickupProgress is the progress value at which the driver reaches the
	// restaurant. Below it the marker runs the pickup leg, from it on the
	// delivery leg.
	PickupProgress = 45.0

	// MaxProgress is the progress value at the customer's door.
	MaxProgress = 100.0

	// WaypointCount is the number of fixed points of a route: start, one
	// turn, restaurant, two turns, destination.
	WaypointCount = 6

	restaurantIndex = 2
)

// Phase tells which leg of the trip a position belongs to.
type Phase int

const (
	// PhasePickup is the leg from the driver's start to the restaurant.
	PhasePickup Phase = iota + 1
	// PhaseDelivery is the leg from the restaurant to the customer.
	PhaseDelivery
)

func (p Phase) String() string {
	switch p {
	case PhasePickup:
		return "PICKUP"
	case PhaseDelivery:
		return "DELIVERY"
	default:
		return "UNKNOWN"
	}
}

// Position is where the driver marker is drawn for a given progress value.
type Position struct {
	Point kernel.Point
	// Angle is the heading of the current segment in degrees, atan2(dy, dx).
	Angle float64
	// Segment is the index of the waypoint the current segment starts at.
	Segment int
	Phase   Phase
}

// X is the horizontal coordinate in percent.
func (p Position) X() float64 { return p.Point.X() }

// Y is the vertical coordinate in percent.
func (p Position) Y() float64 { return p.Point.Y() }

// Label is the caption shown next to the marker.
func (p Position) Label() string {
	if p.Phase == PhasePickup {
		return "Picking up..."
	}
	return "On the way"
}

// Route is the fixed polyline the driver marker follows.
//
// The pickup leg (W0 -> W1 -> W2) is split in two equal halves of
// [0, PickupProgress); the delivery leg (W2 -> W3 -> W4 -> W5) in three equal
// thirds of [PickupProgress, MaxProgress]. Segments are equal in progress,
// not in length, so the marker speed changes between segments.
type Route struct {
	waypoints [WaypointCount]kernel.Point
}

// Default is the route drawn by the storefront map:
// (10,10) (80,10) (80,45) (20,45) (20,80) (90,80).
func Default() Route {
	return Route{waypoints: [WaypointCount]kernel.Point{
		kernel.MustNewPoint(10, 10),
		kernel.MustNewPoint(80, 10),
		kernel.MustNewPoint(80, 45),
		kernel.MustNewPoint(20, 45),
		kernel.MustNewPoint(20, 80),
		kernel.MustNewPoint(90, 80),
	}}
}

// New builds a route from exactly WaypointCount valid points; the third one
// is the restaurant.
func New(waypoints []kernel.Point) (Route, error) {
	if len(waypoints) != WaypointCount {
		return Route{}, errs.NewValueIsInvalidErrorWithCause(
			"waypoints", fmt.Errorf("expected %d waypoints, got %d", WaypointCount, len(waypoints)))
	}

	var r Route
	for i, wp := range waypoints {
		if err := wp.Validate(); err != nil {
			return Route{}, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("waypoints[%d]", i), err)
		}
		r.waypoints[i] = wp
	}
	return r, nil
}

// Waypoints returns the polyline for rendering.
func (r Route) Waypoints() []kernel.Point {
	return slices.Clone(r.waypoints[:])
}

// Start is where the driver begins.
func (r Route) Start() kernel.Point { return r.waypoints[0] }

// Restaurant is where the order is picked up.
func (r Route) Restaurant() kernel.Point { return r.waypoints[restaurantIndex] }

// Destination is the customer's address.
func (r Route) Destination() kernel.Point { return r.waypoints[WaypointCount-1] }

// Position maps progress to the marker position. It is total: progress is
// clamped into [0, MaxProgress] and NaN counts as 0. The anchors are exact:
// Position(0) is Start, Position(PickupProgress) is Restaurant and
// Position(MaxProgress) is Destination.
func (r Route) Position(progress float64) Position {
	progress = clampProgress(progress)

	if progress < PickupProgress {
		return r.along(progress/PickupProgress, 0, restaurantIndex, PhasePickup)
	}
	return r.along(
		(progress-PickupProgress)/(MaxProgress-PickupProgress),
		restaurantIndex, WaypointCount-1, PhaseDelivery,
	)
}

// along splits [first, last] into equal slices of the leg fraction p in [0,1].
func (r Route) along(p float64, first, last int, phase Phase) Position {
	segments := last - first
	scaled := p * float64(segments)
	k := min(int(scaled), segments-1)
	local := scaled - float64(k)

	from := r.waypoints[first+k]
	to := r.waypoints[first+k+1]

	return Position{
		Point:   from.Lerp(to, local),
		Angle:   from.BearingTo(to),
		Segment: first + k,
		Phase:   phase,
	}
}

func clampProgress(progress float64) float64 {
	switch {
	case math.IsNaN(progress), progress < 0:
		return 0
	case progress > MaxProgress:
		return MaxProgress
	default:
		return progress
	}
}
