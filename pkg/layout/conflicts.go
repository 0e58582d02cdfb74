package layout

import (
	"github.com/Andre-Pham/FamApp-sub000/pkg/geom"
)

// unit is a positioned couple together with their positioned common
// children. Positions are read live, so a unit stays valid while people move.
type unit struct {
	a, b *PositionedPerson
	kids []*PositionedPerson
}

func (u *unit) y() float64   { return u.a.y() }
func (u *unit) mid() float64 { return (u.a.x() + u.b.x()) / 2 }

func (u *unit) span() (lo, hi float64) {
	lo, hi = u.kids[0].x(), u.kids[0].x()
	for _, k := range u.kids[1:] {
		lo, hi = min(lo, k.x()), max(hi, k.x())
	}
	return lo, hi
}

func (u *unit) has(pp *PositionedPerson) bool { return u.a == pp || u.b == pp }

// ends returns the partner on the left and the partner on the right.
func (u *unit) ends() (l, r *PositionedPerson) {
	if u.b.x() < u.a.x() {
		return u.b, u.a
	}
	return u.a, u.b
}

// conflict is a pair of same-level units whose children ranges overlap.
// left has the smaller midpoint.
type conflict struct {
	left, right *unit
}

// units lists every positioned couple with at least one positioned child, in
// placement order of the first partner.
func (p *pass) units() []*unit {
	var out []*unit
	seen := make(map[*PositionedPerson]bool)
	for _, q := range p.placed {
		if seen[q] {
			continue
		}
		s := p.spouseOf(q)
		if s == nil || !geom.Near(s.y(), q.y()) {
			continue
		}
		seen[q], seen[s] = true, true

		u := &unit{a: q, b: s}
		for _, c := range p.g.Children(q.person) {
			if c.IsChildOf(s.person) {
				if k := p.wrap(c); k != nil {
					u.kids = append(u.kids, k)
				}
			}
		}
		if len(u.kids) > 0 {
			out = append(out, u)
		}
	}
	return out
}

// order returns u and v sorted by midpoint; ties keep u first.
func order(u, v *unit) (l, r *unit) {
	if v.mid() < u.mid()-geom.Epsilon {
		return v, u
	}
	return u, v
}

func overlapping(l, r *unit) bool {
	_, lhi := l.span()
	rlo, _ := r.span()
	return lhi > rlo+geom.Epsilon
}

// conflicts returns every conflicting pair among us.
func conflicts(us []*unit) []conflict {
	var out []conflict
	for i := range us {
		for j := i + 1; j < len(us); j++ {
			if !geom.Near(us[i].y(), us[j].y()) {
				continue
			}
			l, r := order(us[i], us[j])
			if overlapping(l, r) {
				out = append(out, conflict{left: l, right: r})
			}
		}
	}
	return out
}

// rival returns the first unit in conflict with u, or nil.
func rival(u *unit, us []*unit) *unit {
	for _, v := range us {
		if v == u || !geom.Near(u.y(), v.y()) {
			continue
		}
		if l, r := order(u, v); overlapping(l, r) {
			return v
		}
	}
	return nil
}

// parentUnit returns the unit formed by n's parents, if both are positioned
// partners.
func parentUnit(n *PositionedPerson, us []*unit) *unit {
	for _, u := range us {
		for _, k := range u.kids {
			if k == n {
				return u
			}
		}
	}
	return nil
}

// =============================================================================
// Repair
// =============================================================================

// repairConnections tries to untangle crossing child connectors after n was
// placed. Strategies run from least to most disruptive and each one only
// sticks when it lowers the crossing count without creating collisions.
// Couples are swapped first, then n alone is moved relative to its parents.
// Whatever still crosses is untangled level by level, and finally siblings
// that earlier moves pulled apart are drawn back together.
func (p *pass) repairConnections(n *PositionedPerson) {
	defer clear(p.moved)

	us := p.units()
	if len(conflicts(us)) > 0 {
		p.swapConflictingCouples(us)
		p.repairAround(n, us)
	}
	if len(conflicts(p.units())) > 0 {
		if p.attempt(p.untangle, improves) {
			p.log.Debug("untangled levels", "after", n.ID())
		}
	}
	p.regroupSiblings()
}

// repairAround moves n relative to its parents while their couple is still
// in conflict.
func (p *pass) repairAround(n *PositionedPerson, us []*unit) {
	own := parentUnit(n, us)
	if own == nil || rival(own, us) == nil {
		return
	}
	if p.swapWithSiblings(n, own, us) {
		return
	}
	if p.shiftClear(n, own, us) {
		return
	}
	if p.attempt(func() { p.anchorUnderParent(n, own, us) }, improves) {
		p.log.Debug("anchored under parent", "person", n.ID(), "at", n.pos)
	}
}

// stirred reports whether any member of u moved since the last repair.
func (p *pass) stirred(u *unit) bool {
	if p.moved[u.a] || p.moved[u.b] {
		return true
	}
	for _, k := range u.kids {
		if p.moved[k] {
			return true
		}
	}
	return false
}

// swapConflictingCouples exchanges the slots of conflicting couples until no
// swap helps any more. Only conflicts involving someone who moved since the
// last repair are tried; the rest already resisted every swap.
func (p *pass) swapConflictingCouples(us []*unit) {
	for range p.placed {
		progressed := false
		for _, c := range conflicts(us) {
			if !p.stirred(c.left) && !p.stirred(c.right) {
				continue
			}
			if p.attempt(func() { p.swapUnits(c.left, c.right) }, improves) {
				p.log.Debug("swapped couples",
					"left", c.left.a.ID(), "right", c.right.a.ID())
				progressed = true
				break
			}
		}
		if !progressed {
			return
		}
	}
}

// swapUnits trades the horizontal slots of two same-level couples. Adjacent
// couples are shuffled so the gap between them is preserved; otherwise each
// partner takes the matching partner's former slot.
func (p *pass) swapUnits(l, r *unit) {
	ll, lr := l.ends()
	rl, rr := r.ends()

	if p.adjacent(lr, rl) {
		gap := rl.x() - lr.x()
		lw, rw := lr.x()-ll.x(), rr.x()-rl.x()
		start := ll.x()
		p.move(rl, geom.Pt(start, rl.y()))
		p.move(rr, geom.Pt(start+rw, rr.y()))
		p.move(ll, geom.Pt(start+rw+gap, ll.y()))
		p.move(lr, geom.Pt(start+rw+gap+lw, lr.y()))
		return
	}

	llp, lrp := ll.pos, lr.pos
	p.move(ll, rl.pos)
	p.move(lr, rr.pos)
	p.move(rl, llp)
	p.move(rr, lrp)
}

// adjacent reports whether nobody sits strictly between a and b on their
// level.
func (p *pass) adjacent(a, b *PositionedPerson) bool {
	lo, hi := min(a.x(), b.x()), max(a.x(), b.x())
	for _, q := range p.placed {
		if q == a || q == b || !geom.Near(q.y(), a.y()) {
			continue
		}
		if q.x() > lo+geom.Epsilon && q.x() < hi-geom.Epsilon {
			return false
		}
	}
	return true
}

// swapWithSiblings trades n's slot with each sibling in turn, partners
// moving along, and stops at the first swap that clears n's parents.
func (p *pass) swapWithSiblings(n *PositionedPerson, own *unit, us []*unit) bool {
	for _, sib := range own.kids {
		if sib == n {
			continue
		}
		ok := p.attempt(func() { p.swapPeople(n, sib) }, improves)
		if ok {
			p.log.Debug("swapped with sibling", "person", n.ID(), "sibling", sib.ID())
			if rival(own, us) == nil {
				return true
			}
		}
	}
	return false
}

// swapPeople trades the slots of two same-level people. Each partner keeps
// its offset from the person it belongs to.
func (p *pass) swapPeople(a, b *PositionedPerson) {
	ga, gb := p.couple(a), p.couple(b)
	dx := b.x() - a.x()
	for _, m := range ga {
		if m != b {
			p.shift(m, dx)
		}
	}
	for _, m := range gb {
		if m != a {
			p.shift(m, -dx)
		}
	}
}

// away returns the side of own that faces away from v.
func away(own, v *unit) Direction {
	if own.mid() < v.mid() {
		return Left
	}
	return Right
}

// shiftClear moves n and its partner away from the conflicting couple one
// padding unit at a time until the conflict clears. Once n has travelled past
// both children ranges further steps cannot help, so the search stops there.
func (p *pass) shiftClear(n *PositionedPerson, own *unit, us []*unit) bool {
	v := rival(own, us)
	d := away(own, v)
	pair := p.couple(n)

	olo, ohi := own.span()
	vlo, vhi := v.span()
	steps := int((max(ohi, vhi)-min(olo, vlo))/p.pad()+geom.Epsilon) + 2
	for k := 1; k <= steps; k++ {
		dx := d.Sign() * float64(k) * p.pad()
		ok := p.attempt(func() {
			for _, m := range pair {
				p.shift(m, dx)
			}
		}, func(before, after score) bool {
			return improves(before, after) && rival(own, us) == nil
		})
		if ok {
			p.log.Debug("shifted clear of conflict", "person", n.ID(), "side", d, "units", k)
			return true
		}
	}
	return false
}

// anchorUnderParent is the last resort: n goes just outside its parents on
// the side away from the conflict, past any siblings already there. If that
// slot is taken, everyone else on that side is pushed out to make room.
func (p *pass) anchorUnderParent(n *PositionedPerson, own *unit, us []*unit) {
	d := away(own, rival(own, us))
	bound := own.a
	if reach(own.b, d) > reach(bound, d) {
		bound = own.b
	}

	pair := p.couple(n)
	relatives := make(map[*PositionedPerson]bool)
	for _, k := range own.kids {
		relatives[k] = true
		if s := p.spouseOf(k); s != nil {
			relatives[s] = true
		}
	}
	target := geom.Pt(bound.x()+d.Sign()*p.half(), n.y())
	for {
		q := p.occupant(target, pair...)
		if q == nil || !relatives[q] {
			break
		}
		target = target.Add(d.Sign()*p.pad(), 0)
	}

	dx := target.X - n.x()
	for _, m := range pair {
		p.shift(m, dx)
	}

	clash := false
	for _, m := range pair {
		if p.collides(m, pair...) {
			clash = true
			break
		}
	}
	if !clash {
		return
	}

	edge := pair[0]
	for _, m := range pair[1:] {
		if reach(m, d) < reach(edge, d) {
			edge = m
		}
	}
	except := append([]*PositionedPerson{own.a, own.b}, pair...)
	p.makeRoom(edge.x(), d, float64(len(pair))*p.pad(), except...)
}
