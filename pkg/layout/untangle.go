package layout

import (
	"cmp"
	"maps"
	"math"
	"slices"

	"github.com/Andre-Pham/FamApp-sub000/pkg/geom"
)

// Child connectors only ever join two neighbouring levels, so whether two of
// them cross depends on nothing but the left-to-right order of the parents'
// midpoints and of the children. Moving people on one level without changing
// that order is therefore free; reordering a level is what untangles it.

func byX(a, b *PositionedPerson) int { return cmp.Compare(a.x(), b.x()) }

// block is a person and their partner on the same level, left to right.
// Blocks move as one so couples stay adjacent.
type block []*PositionedPerson

func (b block) left() float64  { return b[0].x() }
func (b block) right() float64 { return b[len(b)-1].x() }
func (b block) center() float64 { return (b.left() + b.right()) / 2 }

// blocks groups people, given in x order, into couple blocks.
func (p *pass) blocks(people []*PositionedPerson) []block {
	var out []block
	seen := make(map[*PositionedPerson]bool)
	for _, q := range people {
		if seen[q] {
			continue
		}
		b := block(p.couple(q))
		slices.SortStableFunc(b, byX)
		for _, m := range b {
			seen[m] = true
		}
		out = append(out, b)
	}
	return out
}

func (p *pass) shiftBlock(b block, dx float64) {
	for _, m := range b {
		p.shift(m, dx)
	}
}

// onLevel returns the people placed on level l in x order.
func (p *pass) onLevel(l int) []*PositionedPerson {
	people := slices.Clone(p.levels[l])
	slices.SortStableFunc(people, byX)
	return people
}

// untangle walks the levels top down. Wherever couples on a level still have
// overlapping children, the level below is reordered to follow them.
func (p *pass) untangle() {
	byLevel := make(map[int][]*unit)
	for _, u := range p.units() {
		l := p.level(u.y())
		byLevel[l] = append(byLevel[l], u)
	}
	for _, l := range slices.Sorted(maps.Keys(byLevel)) {
		if len(conflicts(byLevel[l])) > 0 {
			p.reorderLevel(l+1, byLevel[l])
		}
	}
}

// reorderLevel sorts the blocks on level l by the midpoint of the parents
// they descend from; blocks without parents among parents keep their own x
// as the key. The blocks are then packed left to right: siblings one padding
// apart, everyone else at their old x unless that would overlap.
func (p *pass) reorderLevel(l int, parents []*unit) {
	type keyed struct {
		b    block
		from *unit
		key  float64
		left float64
	}
	var ks []keyed
	for _, b := range p.blocks(p.onLevel(l)) {
		k := keyed{b: b, key: b.left(), left: b.left()}
		for _, m := range b {
			if u := parentUnit(m, parents); u != nil {
				k.from, k.key = u, u.mid()
				break
			}
		}
		ks = append(ks, k)
	}
	slices.SortStableFunc(ks, func(a, b keyed) int {
		if c := cmp.Compare(a.key, b.key); c != 0 {
			return c
		}
		return cmp.Compare(a.left, b.left)
	})

	var prev *keyed
	for i := range ks {
		k := &ks[i]
		target := k.left
		switch {
		case prev == nil:
		case k.from != nil && k.from == prev.from:
			target = prev.b.right() + p.pad()
		default:
			target = max(target, prev.b.right()+p.pad())
		}
		if dx := target - k.left; dx != 0 {
			p.shiftBlock(k.b, dx)
		}
		prev = k
	}
}

// regroupSiblings draws apart siblings back together. Between two sibling
// blocks with nobody in the gap, the block farther from the parents slides
// in to one padding unit. Order on the level never changes.
func (p *pass) regroupSiblings() {
	for _, u := range p.units() {
		l := p.level(u.kids[0].y())
		var kids []*PositionedPerson
		for _, k := range u.kids {
			if p.level(k.y()) == l {
				kids = append(kids, k)
			}
		}
		slices.SortStableFunc(kids, byX)
		bs := p.blocks(kids)
		slices.SortStableFunc(bs, func(a, b block) int { return cmp.Compare(a.left(), b.left()) })
		if !p.scattered(l, bs) {
			continue
		}

		mid := u.mid()
		home, best := 0, math.Inf(1)
		for i, b := range bs {
			if d := math.Abs(b.center() - mid); d < best {
				home, best = i, d
			}
		}
		ok := p.attempt(func() {
			for i := home + 1; i < len(bs); i++ {
				if gap := bs[i].left() - bs[i-1].right(); p.closable(l, bs[i-1], bs[i]) {
					p.shiftBlock(bs[i], p.pad()-gap)
				}
			}
			for i := home - 1; i >= 0; i-- {
				if gap := bs[i+1].left() - bs[i].right(); p.closable(l, bs[i], bs[i+1]) {
					p.shiftBlock(bs[i], gap-p.pad())
				}
			}
		}, noWorse)
		if ok {
			p.log.Debug("regrouped siblings", "parent", u.a.ID(), "spouse", u.b.ID())
		}
	}
}

// scattered reports whether any neighbouring pair of bs can be closed up.
func (p *pass) scattered(l int, bs []block) bool {
	for i := 1; i < len(bs); i++ {
		if p.closable(l, bs[i-1], bs[i]) {
			return true
		}
	}
	return false
}

// closable reports whether a and b, a to the left, are more than one
// padding unit apart with nobody on level l between them.
func (p *pass) closable(l int, a, b block) bool {
	lo, hi := a.right(), b.left()
	if hi-lo <= p.pad()+geom.Epsilon {
		return false
	}
	for _, q := range p.levels[l] {
		if q.x() > lo+geom.Epsilon && q.x() < hi-geom.Epsilon {
			return false
		}
	}
	return true
}
