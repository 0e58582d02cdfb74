package layout

import (
	"maps"
	"math"

	"github.com/Andre-Pham/FamApp-sub000/pkg/geom"
)

// score summarises how far the current state is from a clean layout.
type score struct {
	pos  int
	conn int
}

func (s score) add(o score) score {
	return score{pos: s.pos + o.pos, conn: s.conn + o.conn}
}

// level maps a y coordinate to its generation index.
func (p *pass) level(y float64) int { return int(math.Round(y / p.pad())) }

// touch records that pp was placed or moved. Scores are cached per level and
// only dirty levels are recounted: pp's own level for collisions, plus the
// levels of the connectors pp hangs from or fans out of.
func (p *pass) touch(pp *PositionedPerson) {
	p.moved[pp] = true
	p.dirty[p.level(pp.y())] = true
	if s := p.spouseOf(pp); s != nil {
		p.dirty[p.level((pp.y()+s.y())/2)] = true
	}
	for _, par := range p.parentsOf(pp) {
		if s := p.spouseOf(par); s != nil {
			p.dirty[p.level((par.y()+s.y())/2)] = true
		}
	}
}

// levelScore counts the collisions on level l and the crossings among child
// connectors whose parents' midpoint lies on l. Connectors of different
// levels span disjoint bands, so they never cross each other.
func (p *pass) levelScore(l int) score {
	var children []ChildConnection
	seen := make(map[*PositionedPerson]bool)
	for _, band := range []int{l - 1, l, l + 1} {
		for _, q := range p.levels[band] {
			if seen[q] {
				continue
			}
			s := p.spouseOf(q)
			if s == nil || p.level((q.y()+s.y())/2) != l {
				continue
			}
			seen[q], seen[s] = true, true

			c := newCouple(q, s)
			for _, kid := range p.g.Children(q.person) {
				if !kid.IsChildOf(s.person) {
					continue
				}
				if k := p.wrap(kid); k != nil {
					children = append(children, ChildConnection{Parents: c, Child: k})
				}
			}
		}
	}
	return score{
		pos:  CountPositionConflicts(p.levels[l]),
		conn: CountConnectionConflicts(children),
	}
}

// score returns the totals for the current state, recounting dirty levels.
func (p *pass) score() score {
	for l := range p.dirty {
		p.scores[l] = p.levelScore(l)
	}
	clear(p.dirty)

	var total score
	for _, s := range p.scores {
		total = total.add(s)
	}
	return total
}

type saved struct {
	pp        *PositionedPerson
	pos       geom.Point
	direction Direction
}

type snapshot []saved

func (p *pass) snapshot() snapshot {
	s := make(snapshot, len(p.placed))
	for i, pp := range p.placed {
		s[i] = saved{pp: pp, pos: pp.pos, direction: pp.direction}
	}
	return s
}

func (s snapshot) restore() {
	for _, v := range s {
		v.pp.pos = v.pos
		v.pp.direction = v.direction
	}
}

// attempt applies a tentative change and keeps it only if accept approves
// the scores taken before and after. Rejected changes are rolled back along
// with the score cache.
func (p *pass) attempt(apply func(), accept func(before, after score) bool) bool {
	snap := p.snapshot()
	before := p.score()
	scores, moved := maps.Clone(p.scores), maps.Clone(p.moved)
	apply()
	if accept(before, p.score()) {
		return true
	}
	snap.restore()
	p.scores = scores
	clear(p.moved)
	maps.Copy(p.moved, moved)
	clear(p.dirty)
	return false
}

// improves accepts changes that remove connection conflicts without adding
// position conflicts.
func improves(before, after score) bool {
	return after.pos <= before.pos && after.conn < before.conn
}

// noWorse accepts changes that add neither kind of conflict.
func noWorse(before, after score) bool {
	return after.pos <= before.pos && after.conn <= before.conn
}
