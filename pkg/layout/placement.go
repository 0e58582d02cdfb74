package layout

import (
	"github.com/Andre-Pham/FamApp-sub000/pkg/geom"
)

// relation describes how a newly placed person relates to its anchor.
type relation int

const (
	relSpouse relation = iota
	relExSpouse
	relParent // the new person is a parent of the anchor
	relChild  // the new person is a child of the anchor
)

func (r relation) String() string {
	switch r {
	case relSpouse:
		return "spouse"
	case relExSpouse:
		return "ex-spouse"
	case relParent:
		return "parent"
	default:
		return "child"
	}
}

// placeNext positions n against an already placed relative and then runs
// the structural rules and repairs.
func (p *pass) placeNext(n *PositionedPerson) {
	anchor, rel := p.findAnchor(n)
	switch rel {
	case relSpouse:
		p.placeSpouse(n, anchor)
	case relExSpouse:
		p.placeExSpouse(n, anchor)
	case relParent:
		p.placeVertical(n, anchor, -p.pad())
	case relChild:
		p.placeVertical(n, anchor, p.pad())
	}
	p.log.Debug("placed", "person", n.ID(), "as", rel, "of", anchor.ID(), "at", n.pos)

	p.containAncestors(n)
	if rel == relChild {
		p.spreadFromParents(n)
		p.keepNearSiblings(n)
	}
	p.repairConnections(n)
	p.reconcileSpouses(n)
}

// findAnchor picks the relative n is placed against. A placed spouse always
// wins so that partners end up side by side; otherwise the most recently
// placed spouse, ex-spouse, child or parent is used.
func (p *pass) findAnchor(n *PositionedPerson) (*PositionedPerson, relation) {
	if s := p.spouseOf(n); s != nil {
		return s, relSpouse
	}
	for i := len(p.placed) - 1; i >= 0; i-- {
		q := p.placed[i]
		switch {
		case n.person.IsExSpouseOf(q.person):
			return q, relExSpouse
		case q.person.IsChildOf(n.person):
			return q, relParent
		case n.person.IsChildOf(q.person):
			return q, relChild
		}
	}
	invariant("%s has no positioned relative to be placed against", n.ID())
	return nil, 0
}

// placeSpouse puts n one padding unit to its preferred side of its partner.
// An occupied slot is vacated by pushing everything beyond it outward, which
// keeps the couple adjacent.
func (p *pass) placeSpouse(n, partner *PositionedPerson) {
	d := n.direction
	target := partner.pos.Add(d.Sign()*p.pad(), 0)
	if !p.free(target) {
		// Partners must end up exactly one padding unit apart, so n cannot
		// slide past the occupant. The occupant and everyone beyond it
		// move out instead.
		p.log.Debug("making room for spouse", "person", n.ID(), "at", target)
		p.makeRoom(target.X, d, p.pad(), partner)
	}
	p.place(n, target)
}

// placeExSpouse puts n one padding unit to its preferred side of the former
// partner and slides it further that way until the slot is free.
func (p *pass) placeExSpouse(n, former *PositionedPerson) {
	d := n.direction
	p.place(n, former.pos.Add(d.Sign()*p.pad(), 0))
	p.slide(n, d)
}

// placeVertical puts n half a padding unit to its preferred side of the
// anchor, one level up (dy < 0) or down (dy > 0). Occupied slots are
// resolved by searching outward on both sides.
func (p *pass) placeVertical(n, anchor *PositionedPerson, dy float64) {
	d := n.direction
	start := anchor.pos.Add(d.Sign()*p.half(), dy)
	p.place(n, p.searchOutward(start, d, func(pt geom.Point) bool {
		return p.fits(n, pt)
	}))
}

// fits reports whether n can take pt, leaving room for a partner that has
// not been placed yet.
func (p *pass) fits(n *PositionedPerson, pt geom.Point) bool {
	if !p.free(pt) {
		return false
	}
	s := p.g.Spouse(n.person)
	if s == nil {
		return true
	}
	sp, ok := p.byID[s.ID]
	if !ok || sp.placed {
		return true
	}
	return p.free(pt.Add(sp.direction.Sign()*p.pad(), 0))
}

// searchOutward returns the first point accepted by ok among start,
// start+d*k*P and start-d*k*P for k = 1, 2, ...
func (p *pass) searchOutward(start geom.Point, d Direction, ok func(geom.Point) bool) geom.Point {
	if ok(start) {
		return start
	}
	for k := 1; ; k++ {
		step := d.Sign() * float64(k) * p.pad()
		if pt := start.Add(step, 0); ok(pt) {
			return pt
		}
		if pt := start.Add(-step, 0); ok(pt) {
			return pt
		}
	}
}

// makeRoom shifts every placed person at or beyond boundary in direction d
// outward by amount, except those listed. Partners of shifted people move
// with them so couples stay together.
func (p *pass) makeRoom(boundary float64, d Direction, amount float64, except ...*PositionedPerson) {
	skip := make(map[*PositionedPerson]bool, len(except))
	for _, e := range except {
		skip[e] = true
	}

	moving := make(map[*PositionedPerson]bool)
	for _, q := range p.placed {
		if !skip[q] && (q.x()-boundary)*d.Sign() >= -geom.Epsilon {
			moving[q] = true
		}
	}
	for _, q := range p.placed {
		if !moving[q] {
			continue
		}
		if s := p.spouseOf(q); s != nil && !skip[s] && geom.Near(s.y(), q.y()) {
			moving[s] = true
		}
	}

	for _, q := range p.placed {
		if moving[q] {
			p.shift(q, d.Sign()*amount)
		}
	}
	p.log.Debug("made room", "boundary", boundary, "direction", d, "moved", len(moving))
}
