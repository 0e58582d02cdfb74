package layout

import (
	"cmp"
	"slices"

	"github.com/Andre-Pham/FamApp-sub000/pkg/geom"
)

// CountPositionConflicts returns the number of pairs of distinct positioned
// people that share a coordinate.
func CountPositionConflicts(people []*PositionedPerson) int {
	var placed []*PositionedPerson
	for _, pp := range people {
		if pp.placed {
			placed = append(placed, pp)
		}
	}
	slices.SortFunc(placed, byX)

	n := 0
	for i, a := range placed {
		for _, b := range placed[i+1:] {
			if b.x()-a.x() > geom.Epsilon {
				break
			}
			if a != b && a.pos.Equal(b.pos) {
				n++
			}
		}
	}
	return n
}

// CountConnectionConflicts returns the number of pairs of child connectors
// that cross somewhere other than a shared endpoint.
func CountConnectionConflicts(children []ChildConnection) int {
	type boxed struct {
		seg    geom.Segment
		lo, hi geom.Point
	}
	segs := make([]boxed, len(children))
	for i, c := range children {
		s := c.Segment()
		lo, hi := s.Bounds()
		segs[i] = boxed{seg: s, lo: lo, hi: hi}
	}
	slices.SortFunc(segs, func(a, b boxed) int { return cmp.Compare(a.lo.X, b.lo.X) })

	// Segments can only cross where their bounding boxes overlap.
	n := 0
	for i, a := range segs {
		for _, b := range segs[i+1:] {
			if b.lo.X > a.hi.X+geom.Epsilon {
				break
			}
			if b.lo.Y > a.hi.Y+geom.Epsilon || a.lo.Y > b.hi.Y+geom.Epsilon {
				continue
			}
			if a.seg.Crosses(b.seg) {
				n++
			}
		}
	}
	return n
}
