package layout

import (
	"github.com/Andre-Pham/FamApp-sub000/pkg/family"
	"github.com/Andre-Pham/FamApp-sub000/pkg/geom"
)

// CoupleConnection links two positioned spouses. Left is the partner with
// the smaller x.
type CoupleConnection struct {
	Left  *PositionedPerson
	Right *PositionedPerson
}

// Midpoint returns the point halfway between the partners.
func (c CoupleConnection) Midpoint() geom.Point {
	return c.Left.pos.Midpoint(c.Right.pos)
}

// ChildConnection links a couple to one of their positioned children.
type ChildConnection struct {
	Parents CoupleConnection
	Child   *PositionedPerson
}

// Segment returns the connector drawn from the parents' midpoint to the
// child.
func (c ChildConnection) Segment() geom.Segment {
	return geom.Seg(c.Parents.Midpoint(), c.Child.pos)
}

// BuildConnections derives couple and child connections from positioned
// people. Output order follows people: couples by their first partner, and
// each couple's children in the order they were added to the graph.
//
// Connections reference the wrappers, so they track any later movement.
func BuildConnections(g *family.Graph, people []*PositionedPerson) ([]CoupleConnection, []ChildConnection) {
	byID := make(map[string]*PositionedPerson, len(people))
	for _, pp := range people {
		byID[pp.ID()] = pp
	}
	positioned := func(p *family.Person) *PositionedPerson {
		if p == nil {
			return nil
		}
		if pp := byID[p.ID]; pp != nil && pp.placed {
			return pp
		}
		return nil
	}

	var (
		couples  []CoupleConnection
		children []ChildConnection
		seen     = make(map[*PositionedPerson]bool)
	)
	for _, pp := range people {
		if !pp.placed || seen[pp] {
			continue
		}
		spouse := positioned(g.Spouse(pp.person))
		if spouse == nil {
			continue
		}
		seen[pp], seen[spouse] = true, true

		c := newCouple(pp, spouse)
		couples = append(couples, c)
		for _, kid := range g.Children(pp.person) {
			if !kid.IsChildOf(spouse.person) {
				continue
			}
			if k := positioned(kid); k != nil {
				children = append(children, ChildConnection{Parents: c, Child: k})
			}
		}
	}
	return couples, children
}

func newCouple(a, b *PositionedPerson) CoupleConnection {
	switch {
	case b.x() < a.x()-geom.Epsilon:
		return CoupleConnection{Left: b, Right: a}
	case a.x() < b.x()-geom.Epsilon:
		return CoupleConnection{Left: a, Right: b}
	case b.direction == Left && a.direction == Right:
		return CoupleConnection{Left: b, Right: a}
	default:
		return CoupleConnection{Left: a, Right: b}
	}
}
