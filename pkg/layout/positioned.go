package layout

import (
	"github.com/Andre-Pham/FamApp-sub000/pkg/family"
	"github.com/Andre-Pham/FamApp-sub000/pkg/geom"
)

// Direction is the side a person prefers relative to the relative they are
// placed against.
type Direction int

const (
	Left  Direction = -1
	Right Direction = 1
)

// DefaultDirection returns the conventional side for a person: men to the
// left, women to the right.
func DefaultDirection(p *family.Person) Direction {
	if p.Sex == family.Female {
		return Right
	}
	return Left
}

// Sign returns -1 for Left and +1 for Right.
func (d Direction) Sign() float64 { return float64(d) }

// Opposite returns the other side.
func (d Direction) Opposite() Direction { return -d }

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// PositionedPerson wraps a person for the duration of a single layout pass.
// Only the engine mutates it; callers read it from a [Result].
type PositionedPerson struct {
	person    *family.Person
	pos       geom.Point
	placed    bool
	direction Direction
	index     int
}

func newPositioned(p *family.Person, index int) *PositionedPerson {
	return &PositionedPerson{person: p, direction: DefaultDirection(p), index: index}
}

// Person returns the wrapped person.
func (pp *PositionedPerson) Person() *family.Person { return pp.person }

// ID returns the wrapped person's id.
func (pp *PositionedPerson) ID() string { return pp.person.ID }

// Position returns the assigned point. The boolean is false for people the
// pass never reached (see [WithStepLimit]).
func (pp *PositionedPerson) Position() (geom.Point, bool) { return pp.pos, pp.placed }

// IsPositioned reports whether the person received a position.
func (pp *PositionedPerson) IsPositioned() bool { return pp.placed }

// Direction returns the person's preferred side. Spouses may trade
// directions during reconciliation, so this can differ from
// [DefaultDirection].
func (pp *PositionedPerson) Direction() Direction { return pp.direction }

// Index returns the person's position in breadth-first order.
func (pp *PositionedPerson) Index() int { return pp.index }

func (pp *PositionedPerson) x() float64 { return pp.pos.X }
func (pp *PositionedPerson) y() float64 { return pp.pos.Y }
