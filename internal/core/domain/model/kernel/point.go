package kernel

import (
	"errors"
	"fmt"
	"math"

	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

const (
	// PointMin is the lower bound of both axes of the tracking map, in percent.
	PointMin = 0.0
	// PointMax is the upper bound of both axes of the tracking map, in percent.
	PointMax = 100.0
)

// ErrPointIsNotConstructed is returned when a zero-value Point is used.
var ErrPointIsNotConstructed = errs.NewValueIsRequiredError("point must be created via NewPoint")

// Point is a position on the tracking map. Both coordinates are percentages of
// the map size, so (0,0) is the top-left corner and (100,100) the bottom-right
// corner whatever the rendered size is.
//
// Point is an immutable value object; the zero value fails Validate.
type Point struct { //nolint:recvcheck //using for validation
	x     float64
	y     float64
	guard guard.ConstructorGuard
}

// NewPoint validates that both coordinates are finite and within
// [PointMin..PointMax].
func NewPoint(x, y float64) (Point, error) {
	p := Point{guard: guard.NewConstructorGuard()}

	if err := errors.Join(p.setX(x), p.setY(y)); err != nil {
		return Point{}, err
	}

	return p, nil
}

// MustNewPoint is NewPoint for compile-time constants such as route waypoints.
// It panics on invalid coordinates.
func MustNewPoint(x, y float64) Point {
	p, err := NewPoint(x, y)
	if err != nil {
		panic(err)
	}
	return p
}

// Validate returns ErrPointIsNotConstructed for a zero-value Point.
func (p Point) Validate() error {
	return p.guard.Validate(ErrPointIsNotConstructed)
}

// X returns the horizontal coordinate in percent.
func (p Point) X() float64 {
	return p.x
}

// Y returns the vertical coordinate in percent.
func (p Point) Y() float64 {
	return p.y
}

// Lerp returns the point at fraction t of the way from p to to. t is clamped
// to [0,1], so Lerp(to, 0) is p and Lerp(to, 1) is to. The result lies on the
// segment and therefore inside the map.
func (p Point) Lerp(to Point, t float64) Point {
	t = clamp(t, 0, 1)
	return Point{
		x:     p.x + (to.x-p.x)*t,
		y:     p.y + (to.y-p.y)*t,
		guard: guard.NewConstructorGuard(),
	}
}

// BearingTo returns the heading from p to to in degrees, measured as
// atan2(dy, dx). Because the y axis grows downwards on screen, 90 means
// "heading down" and -90 "heading up". Identical points yield 0.
func (p Point) BearingTo(to Point) float64 {
	return math.Atan2(to.y-p.y, to.x-p.x) * 180 / math.Pi
}

// IsEqual compares coordinates only.
func (p Point) IsEqual(other Point) bool {
	return p.x == other.x && p.y == other.y
}

// String renders the point as "Point(x,y)" with two decimals.
func (p Point) String() string {
	return fmt.Sprintf("Point(%.2f,%.2f)", p.x, p.y)
}

func (p *Point) setX(x float64) error {
	if math.IsNaN(x) || x < PointMin || x > PointMax {
		return errs.NewValueIsOutOfRangeError("x", x, PointMin, PointMax)
	}
	p.x = x
	return nil
}

func (p *Point) setY(y float64) error {
	if math.IsNaN(y) || y < PointMin || y > PointMax {
		return errs.NewValueIsOutOfRangeError("y", y, PointMin, PointMax)
	}
	p.y = y
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
