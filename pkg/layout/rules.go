package layout

import (
	"math"

	"github.com/Andre-Pham/FamApp-sub000/pkg/geom"
)

// couple returns n together with its positioned partner on the same level.
func (p *pass) couple(n *PositionedPerson) []*PositionedPerson {
	group := []*PositionedPerson{n}
	if s := p.spouseOf(n); s != nil && geom.Near(s.y(), n.y()) {
		group = append(group, s)
	}
	return group
}

// reach is x measured along d, so that larger always means further out.
func reach(pp *PositionedPerson, d Direction) float64 { return pp.x() * d.Sign() }

// containAncestors keeps a parent outside the subtrees it heads: for each
// side, n and its partner must sit beyond the farthest child preferring that
// side who already has positioned children of their own.
func (p *pass) containAncestors(n *PositionedPerson) {
	kids := p.childrenOf(n)
	if len(kids) == 0 {
		return
	}
	for _, d := range []Direction{n.direction, n.direction.Opposite()} {
		var far *PositionedPerson
		for _, k := range kids {
			if k.direction != d || len(p.childrenOf(k)) == 0 {
				continue
			}
			if far == nil || reach(k, d) > reach(far, d) {
				far = k
			}
		}
		if far == nil {
			continue
		}

		pair := p.couple(n)
		near := pair[0]
		for _, m := range pair[1:] {
			if reach(m, d) < reach(near, d) {
				near = m
			}
		}
		if reach(near, d) > reach(far, d)+geom.Epsilon {
			continue
		}

		dx := far.x() + d.Sign()*p.half() - near.x()
		for _, m := range pair {
			p.shift(m, dx)
		}
		p.slideGroup(pair, d)
		p.log.Debug("moved parents outside subtree", "person", n.ID(), "side", d, "beyond", far.ID())
	}
}

// spreadFromParents moves a newly placed child strictly beyond both of its
// parents on the child's preferred side.
func (p *pass) spreadFromParents(n *PositionedPerson) {
	parents := p.parentsOf(n)
	if len(parents) == 0 {
		return
	}
	d := n.direction
	bound := parents[0]
	for _, q := range parents[1:] {
		if reach(q, d) > reach(bound, d) {
			bound = q
		}
	}
	if reach(n, d) > reach(bound, d)+geom.Epsilon {
		return
	}
	p.move(n, geom.Pt(bound.x()+d.Sign()*p.half(), n.y()))
	p.slide(n, d)
	p.log.Debug("moved child beyond parents", "person", n.ID(), "side", d, "at", n.pos)
}

// keepNearSiblings pulls a newly placed child next to its nearest sibling
// (or sibling's partner) on the same level when none is within one padding
// unit.
func (p *pass) keepNearSiblings(n *PositionedPerson) {
	var group []*PositionedPerson
	seen := map[*PositionedPerson]bool{n: true}
	add := func(q *PositionedPerson) {
		if q != nil && !seen[q] && geom.Near(q.y(), n.y()) {
			seen[q] = true
			group = append(group, q)
		}
	}
	for _, sib := range p.siblingsOf(n) {
		add(sib)
		add(p.spouseOf(sib))
	}
	if len(group) == 0 {
		return
	}

	var nearest *PositionedPerson
	best := math.Inf(1)
	for _, m := range group {
		dist := math.Abs(m.x() - n.x())
		if dist <= p.pad()+geom.Epsilon {
			return
		}
		if dist < best-geom.Epsilon {
			nearest, best = m, dist
		}
	}

	toward := Right
	if nearest.x() < n.x() {
		toward = Left
	}
	p.move(n, geom.Pt(nearest.x()-toward.Sign()*p.pad(), n.y()))
	p.slide(n, toward.Opposite())
	p.log.Debug("moved next to sibling", "person", n.ID(), "sibling", nearest.ID(), "at", n.pos)
}

// reconcileSpouses swaps n and its partner, positions and preferred sides
// both, when that brings each of them closer to their own parents.
func (p *pass) reconcileSpouses(n *PositionedPerson) {
	s := p.spouseOf(n)
	if s == nil || !geom.Near(s.y(), n.y()) {
		return
	}
	current := p.parentDistance(n, n.x()) + p.parentDistance(s, s.x())
	swapped := p.parentDistance(n, s.x()) + p.parentDistance(s, n.x())
	if swapped >= current-geom.Epsilon {
		return
	}

	ok := p.attempt(func() {
		np, sp := n.pos, s.pos
		p.move(n, sp)
		p.move(s, np)
		n.direction, s.direction = s.direction, n.direction
	}, noWorse)
	if ok {
		p.log.Debug("swapped partners toward their parents", "person", n.ID(), "spouse", s.ID())
	}
}

// parentDistance is how far x is from the mean x of pp's positioned parents.
func (p *pass) parentDistance(pp *PositionedPerson, x float64) float64 {
	parents := p.parentsOf(pp)
	if len(parents) == 0 {
		return 0
	}
	var sum float64
	for _, q := range parents {
		sum += q.x()
	}
	return math.Abs(x - sum/float64(len(parents)))
}
