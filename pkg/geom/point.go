// Package geom provides the small amount of plane geometry the layout engine
// needs: points with tolerant comparison and line segment intersection.
//
// Positions in a layout are produced by repeated additive translation, so two
// coordinates that should be equal can drift apart in the last bits. Every
// comparison in this package uses [Epsilon] to absorb that drift.
package geom

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used by all coordinate comparisons.
const Epsilon = 1e-5

// Point is a position in layout units. Y grows downward, so ancestors have
// smaller Y values than descendants.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point { return Point{X: p.X + dx, Y: p.Y + dy} }

// Midpoint returns the point halfway between p and q.
func (p Point) Midpoint(q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Equal reports whether p and q coincide within Epsilon on both axes.
func (p Point) Equal(q Point) bool {
	return Near(p.X, q.X) && Near(p.Y, q.Y)
}

// Less orders points by Y, then by X, treating near-equal values as equal.
func (p Point) Less(q Point) bool {
	if !Near(p.Y, q.Y) {
		return p.Y < q.Y
	}
	if !Near(p.X, q.X) {
		return p.X < q.X
	}
	return false
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Near reports whether a and b differ by less than Epsilon.
func Near(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Sign returns -1, 0 or 1 according to the sign of v, treating values
// within Epsilon of zero as zero.
func Sign(v float64) int {
	switch {
	case v > Epsilon:
		return 1
	case v < -Epsilon:
		return -1
	default:
		return 0
	}
}
