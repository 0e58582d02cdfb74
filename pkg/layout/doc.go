// Package layout computes deterministic 2D positions for a family graph.
//
// Given a [family.Graph] and a root person, [Engine.Layout] walks the graph
// breadth-first and places each reachable person against a relative that is
// already positioned. The result is a [Result] holding every reachable
// person as a [PositionedPerson] plus the derived [CoupleConnection] and
// [ChildConnection] lists that a renderer draws as connectors.
//
// # Geometry
//
// The root sits at the origin. y grows downward: parents are one padding
// unit ([DefaultPadding]) above their children and siblings share a level.
// Men prefer the left side of a relative and women the right (see
// [DefaultDirection]); partners sit one padding unit apart while placing and
// are pulled together to [DefaultCouplePadding] once placement finishes.
//
// # Placement
//
// Each person is placed next to a positioned relative:
//
//   - a spouse goes one padding unit to its preferred side of the partner
//   - an ex-spouse likewise, sliding further out on collision
//   - a parent goes half a padding unit to its side and one level up
//   - a child goes half a padding unit to its side and one level down
//
// After each placement a set of structural rules keeps parents outside the
// subtrees they head, spreads children outward from their parents and keeps
// siblings together. Crossing connectors between couples on the same level
// are then repaired by swapping couples, swapping siblings, shifting, or
// pushing the rest of the row aside. Crossings that survive are untangled
// by reordering the level below to follow its parents, and siblings pulled
// apart along the way are drawn back together.
//
// [Engine.LayoutContext] checks its context before each placement, so a
// deadline stops a large pass early.
//
// # Determinism
//
// The outcome depends only on the graph structure and the root. There is no
// randomness and no map iteration on any path that influences positions, so
// running the same input twice yields identical results.
//
//	res, err := layout.Compute(g, "homer")
//	if err != nil {
//	    return err
//	}
//	for _, pp := range res.People {
//	    pos, _ := pp.Position()
//	    fmt.Println(pp.ID(), pos)
//	}
//
// Topologies that force crossing connectors are not errors. They are
// reported through [Result.ConnectionConflicts].
package layout
