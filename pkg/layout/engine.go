package layout

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/Andre-Pham/FamApp-sub000/pkg/errors"
	"github.com/Andre-Pham/FamApp-sub000/pkg/family"
	"github.com/Andre-Pham/FamApp-sub000/pkg/geom"
)

// Engine computes layouts. An Engine holds only configuration, so one value
// can serve any number of concurrent Layout calls.
type Engine struct {
	cfg config
}

// New creates an engine with the given options applied over the defaults.
func New(opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Engine{cfg: cfg}
}

// Compute is shorthand for New(opts...).Layout(g, rootID).
func Compute(g *family.Graph, rootID string, opts ...Option) (*Result, error) {
	return New(opts...).Layout(g, rootID)
}

// ComputeContext is shorthand for New(opts...).LayoutContext(ctx, g, rootID).
func ComputeContext(ctx context.Context, g *family.Graph, rootID string, opts ...Option) (*Result, error) {
	return New(opts...).LayoutContext(ctx, g, rootID)
}

// Padding returns the placement padding in use.
func (e *Engine) Padding() float64 { return e.cfg.padding }

// CouplePadding returns the tightened partner spacing in use.
func (e *Engine) CouplePadding() float64 { return e.cfg.couplePadding }

// Layout positions everyone reachable from rootID. The graph is only read.
//
// It returns an INVALID_ROOT error when rootID is not a member of g. Any
// other failure is a broken internal invariant and panics with an
// ALGORITHM_INVARIANT error.
func (e *Engine) Layout(g *family.Graph, rootID string) (*Result, error) {
	return e.LayoutContext(context.Background(), g, rootID)
}

// LayoutContext is Layout with cancellation. ctx is checked before each
// placement; once it is done the pass stops and ctx.Err() is returned.
func (e *Engine) LayoutContext(ctx context.Context, g *family.Graph, rootID string) (*Result, error) {
	root, ok := g.Person(rootID)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidRoot, "root %q is not a member of the graph", rootID)
	}

	p := newPass(g, e.cfg, traverse(g, root))
	limit := len(p.order)
	if e.cfg.limited {
		limit = min(limit, e.cfg.stepLimit)
	}
	p.log.Debug("layout start", "root", rootID, "reachable", len(p.order), "limit", limit)

	for i := 0; i < limit; i++ {
		if err := ctx.Err(); err != nil {
			p.log.Debug("layout cancelled", "root", rootID, "positioned", i)
			return nil, err
		}
		if i == 0 {
			p.place(p.order[0], geom.Point{})
			continue
		}
		p.placeNext(p.order[i])
	}

	couples, children := BuildConnections(g, p.order)
	p.tighten(couples)

	res := &Result{
		Root:     rootID,
		People:   p.order,
		Couples:  couples,
		Children: children,
		index:    p.byID,
	}
	p.log.Debug("layout done",
		"positioned", res.Positioned(),
		"position_conflicts", res.PositionConflicts(),
		"connection_conflicts", res.ConnectionConflicts())
	return res, nil
}

// =============================================================================
// Result
// =============================================================================

// Result is the outcome of a layout pass.
type Result struct {
	// Root is the id the pass started from. It is placed at the origin
	// before couples are tightened.
	Root string

	// People lists everyone reachable from the root in breadth-first order.
	// People beyond a step limit are present but unpositioned.
	People []*PositionedPerson

	// Couples has one entry per pair of positioned spouses.
	Couples []CoupleConnection

	// Children has one entry per positioned child of a couple.
	Children []ChildConnection

	index map[string]*PositionedPerson
}

// Lookup returns the positioned wrapper for a person id.
func (r *Result) Lookup(id string) (*PositionedPerson, bool) {
	pp, ok := r.index[id]
	return pp, ok
}

// Positioned returns the number of people that received a position.
func (r *Result) Positioned() int {
	n := 0
	for _, pp := range r.People {
		if pp.placed {
			n++
		}
	}
	return n
}

// PositionConflicts counts pairs of people sharing a coordinate.
func (r *Result) PositionConflicts() int { return CountPositionConflicts(r.People) }

// ConnectionConflicts counts pairs of child connectors that cross.
func (r *Result) ConnectionConflicts() int { return CountConnectionConflicts(r.Children) }

// =============================================================================
// Pass State
// =============================================================================

// pass is the private state of one Layout call.
type pass struct {
	g      *family.Graph
	cfg    config
	log    *log.Logger
	order  []*PositionedPerson
	byID   map[string]*PositionedPerson
	placed []*PositionedPerson

	// Score cache, keyed by level. See txn.go.
	levels map[int][]*PositionedPerson
	scores map[int]score
	dirty  map[int]bool
	moved  map[*PositionedPerson]bool
}

func newPass(g *family.Graph, cfg config, people []*family.Person) *pass {
	p := &pass{
		g:     g,
		cfg:   cfg,
		log:   cfg.logger,
		order: make([]*PositionedPerson, len(people)),
		byID:  make(map[string]*PositionedPerson, len(people)),

		levels: make(map[int][]*PositionedPerson),
		scores: make(map[int]score),
		dirty:  make(map[int]bool),
		moved:  make(map[*PositionedPerson]bool),
	}
	for i, person := range people {
		pp := newPositioned(person, i)
		p.order[i] = pp
		p.byID[person.ID] = pp
	}
	return p
}

func (p *pass) pad() float64  { return p.cfg.padding }
func (p *pass) half() float64 { return p.cfg.padding / 2 }

// invariant aborts the pass.
var invariant = errors.Invariant

// place gives pp its first position.
func (p *pass) place(pp *PositionedPerson, at geom.Point) {
	if pp.placed {
		invariant("%s is already positioned at %v", pp.ID(), pp.pos)
	}
	pp.pos = at
	pp.placed = true
	p.placed = append(p.placed, pp)
	l := p.level(at.Y)
	p.levels[l] = append(p.levels[l], pp)
	p.touch(pp)
}

// move repositions someone who is already placed. Levels are fixed at
// placement, so only x may change.
func (p *pass) move(pp *PositionedPerson, to geom.Point) {
	if !pp.placed {
		invariant("cannot move unpositioned %s", pp.ID())
	}
	if !geom.Near(to.Y, pp.pos.Y) {
		invariant("cannot move %s between levels (%v to %v)", pp.ID(), pp.pos, to)
	}
	pp.pos = to
	p.touch(pp)
}

func (p *pass) shift(pp *PositionedPerson, dx float64) {
	p.move(pp, pp.pos.Add(dx, 0))
}

// wrap returns the positioned wrapper of a person, or nil when the person is
// nil, unreachable, or not yet placed.
func (p *pass) wrap(person *family.Person) *PositionedPerson {
	if person == nil {
		return nil
	}
	pp := p.byID[person.ID]
	if pp == nil || !pp.placed {
		return nil
	}
	return pp
}

func (p *pass) wrapAll(people []*family.Person) []*PositionedPerson {
	var out []*PositionedPerson
	for _, person := range people {
		if pp := p.wrap(person); pp != nil {
			out = append(out, pp)
		}
	}
	return out
}

func (p *pass) spouseOf(pp *PositionedPerson) *PositionedPerson {
	return p.wrap(p.g.Spouse(pp.person))
}

func (p *pass) parentsOf(pp *PositionedPerson) []*PositionedPerson {
	return p.wrapAll(p.g.Parents(pp.person))
}

func (p *pass) childrenOf(pp *PositionedPerson) []*PositionedPerson {
	return p.wrapAll(p.g.Children(pp.person))
}

func (p *pass) siblingsOf(pp *PositionedPerson) []*PositionedPerson {
	return p.wrapAll(p.g.Siblings(pp.person))
}

// occupant returns the first placed person at pt other than those in except.
func (p *pass) occupant(pt geom.Point, except ...*PositionedPerson) *PositionedPerson {
next:
	for _, q := range p.placed {
		for _, e := range except {
			if q == e {
				continue next
			}
		}
		if q.pos.Equal(pt) {
			return q
		}
	}
	return nil
}

func (p *pass) free(pt geom.Point, except ...*PositionedPerson) bool {
	return p.occupant(pt, except...) == nil
}

// collides reports whether someone else shares pp's position.
func (p *pass) collides(pp *PositionedPerson, except ...*PositionedPerson) bool {
	if !pp.placed {
		invariant("collision check for unpositioned %s", pp.ID())
	}
	return p.occupant(pp.pos, append(except, pp)...) != nil
}

// slide moves pp one padding unit at a time in direction d until it no
// longer shares a coordinate with anyone.
func (p *pass) slide(pp *PositionedPerson, d Direction) {
	if !pp.placed {
		invariant("cannot resolve collision for unpositioned %s", pp.ID())
	}
	for p.collides(pp) {
		p.shift(pp, d.Sign()*p.pad())
	}
}

// slideGroup moves all members together in direction d until none of them
// collides with a non-member.
func (p *pass) slideGroup(group []*PositionedPerson, d Direction) {
	for {
		clash := false
		for _, pp := range group {
			if p.collides(pp, group...) {
				clash = true
				break
			}
		}
		if !clash {
			return
		}
		for _, pp := range group {
			p.shift(pp, d.Sign()*p.pad())
		}
	}
}

// tighten pulls every couple together to the couple padding.
func (p *pass) tighten(couples []CoupleConnection) {
	step := (p.cfg.padding - p.cfg.couplePadding) / 2
	if step <= 0 {
		return
	}
	for _, c := range couples {
		l, r := c.Left, c.Right
		if !geom.Near(l.y(), r.y()) {
			continue
		}
		if r.x() < l.x() {
			l, r = r, l
		}
		p.shift(l, step)
		p.shift(r, -step)
	}
}
