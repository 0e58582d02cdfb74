package geom

import "math"

// Segment is the closed line segment between A and B.
type Segment struct {
	A, B Point
}

// Seg is shorthand for Segment{A: a, B: b}.
func Seg(a, b Point) Segment { return Segment{A: a, B: b} }

// Bounds returns the corners of the smallest axis-aligned box holding s.
func (s Segment) Bounds() (lo, hi Point) {
	lo.X, hi.X = minmax(s.A.X, s.B.X)
	lo.Y, hi.Y = minmax(s.A.Y, s.B.Y)
	return lo, hi
}

// HasEndpoint reports whether p is one of the segment's endpoints.
func (s Segment) HasEndpoint(p Point) bool {
	return s.A.Equal(p) || s.B.Equal(p)
}

// Intersection returns the single point where s and t meet. The boolean is
// false when the segments are disjoint or collinear (collinear segments meet
// in a range rather than a point; see [Segment.Crosses]).
func (s Segment) Intersection(t Segment) (Point, bool) {
	r := sub(s.B, s.A)
	q := sub(t.B, t.A)
	d := cross(r, q)
	if math.Abs(d) < Epsilon {
		return Point{}, false
	}
	if !s.touches(t) {
		return Point{}, false
	}
	u := cross(sub(t.A, s.A), q) / d
	return Point{X: s.A.X + u*r.X, Y: s.A.Y + u*r.Y}, true
}

// Crosses reports whether s and t meet anywhere other than at an endpoint
// they share. Segments that only touch at a common vertex do not cross;
// a T-junction (one segment's endpoint lying inside the other) does.
// Collinear segments cross when they overlap along a positive length.
func (s Segment) Crosses(t Segment) bool {
	if !s.touches(t) {
		return false
	}
	if s.collinear(t) {
		return s.overlap(t) > Epsilon
	}
	p, ok := s.Intersection(t)
	if !ok {
		return false
	}
	return !(s.HasEndpoint(p) && t.HasEndpoint(p))
}

func (s Segment) touches(t Segment) bool {
	o1 := orient(s.A, s.B, t.A)
	o2 := orient(s.A, s.B, t.B)
	o3 := orient(t.A, t.B, s.A)
	o4 := orient(t.A, t.B, s.B)
	if o1 == 0 && o2 == 0 && o3 == 0 && o4 == 0 {
		return s.overlap(t) > -Epsilon
	}
	return o1*o2 <= 0 && o3*o4 <= 0
}

func (s Segment) collinear(t Segment) bool {
	return orient(s.A, s.B, t.A) == 0 && orient(s.A, s.B, t.B) == 0
}

// overlap projects both segments onto the dominant axis of s and returns the
// length of the shared interval, negative when they are apart.
func (s Segment) overlap(t Segment) float64 {
	axis := func(p Point) float64 { return p.X }
	if math.Abs(s.B.Y-s.A.Y) > math.Abs(s.B.X-s.A.X) {
		axis = func(p Point) float64 { return p.Y }
	}
	lo1, hi1 := minmax(axis(s.A), axis(s.B))
	lo2, hi2 := minmax(axis(t.A), axis(t.B))
	return math.Min(hi1, hi2) - math.Max(lo1, lo2)
}

func orient(a, b, c Point) int {
	return Sign(cross(sub(b, a), sub(c, a)))
}

func sub(a, b Point) Point { return Point{X: a.X - b.X, Y: a.Y - b.Y} }

func cross(a, b Point) float64 { return a.X*b.Y - a.Y*b.X }

func minmax(a, b float64) (float64, float64) {
	if a < b {
		return a, b
	}
	return b, a
}
