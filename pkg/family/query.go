package family

// =============================================================================
// Relationship Queries
// =============================================================================

// Mother returns p's mother, or nil.
func (g *Graph) Mother(p *Person) *Person { return g.lookup(p.motherID) }

// Father returns p's father, or nil.
func (g *Graph) Father(p *Person) *Person { return g.lookup(p.fatherID) }

// Spouse returns p's current spouse, or nil.
func (g *Graph) Spouse(p *Person) *Person { return g.lookup(p.spouseID) }

// Parents returns p's known parents, mother first.
func (g *Graph) Parents(p *Person) []*Person {
	var out []*Person
	if m := g.Mother(p); m != nil {
		out = append(out, m)
	}
	if f := g.Father(p); f != nil {
		out = append(out, f)
	}
	return out
}

// Children returns p's children in the order they were assigned.
func (g *Graph) Children(p *Person) []*Person {
	return g.resolve(p.childIDs)
}

// ExSpouses returns p's former spouses in the order they were assigned.
func (g *Graph) ExSpouses(p *Person) []*Person {
	return g.resolve(p.exSpouseIDs)
}

// Siblings returns everyone sharing at least one parent with p, excluding p.
// The mother's children come first, then any half-siblings through the father.
func (g *Graph) Siblings(p *Person) []*Person {
	var out []*Person
	seen := map[string]bool{p.ID: true}
	for _, parent := range g.Parents(p) {
		for _, c := range g.Children(parent) {
			if !seen[c.ID] {
				seen[c.ID] = true
				out = append(out, c)
			}
		}
	}
	return out
}

// HasNoParents reports whether neither parent of p is recorded.
func (g *Graph) HasNoParents(p *Person) bool {
	return g.Mother(p) == nil && g.Father(p) == nil
}

// IsParent reports whether p has at least one child.
func (g *Graph) IsParent(p *Person) bool {
	return len(p.childIDs) > 0
}

// AncestorCount returns the number of distinct ancestors of p.
func (g *Graph) AncestorCount(p *Person) int {
	seen := make(map[string]bool)
	var walk func(*Person)
	walk = func(q *Person) {
		for _, parent := range g.Parents(q) {
			if !seen[parent.ID] {
				seen[parent.ID] = true
				walk(parent)
			}
		}
	}
	walk(p)
	return len(seen)
}

// DefaultRoot picks a root for callers that have no preference: the member
// with the most ancestors, earliest created on ties. The layout engine never
// calls this; it always takes an explicit root.
func (g *Graph) DefaultRoot() (*Person, bool) {
	var best *Person
	bestCount := -1
	for _, p := range g.members {
		if n := g.AncestorCount(p); n > bestCount {
			best, bestCount = p, n
		}
	}
	return best, best != nil
}

// Reachable returns every member connected to root through any supported
// relationship, in breadth-first discovery order starting with root.
func (g *Graph) Reachable(root *Person) []*Person {
	if !g.Contains(root) {
		return nil
	}
	seen := map[string]bool{root.ID: true}
	queue := []*Person{root}
	for i := 0; i < len(queue); i++ {
		p := queue[i]
		next := []*Person{g.Spouse(p)}
		next = append(next, g.ExSpouses(p)...)
		next = append(next, g.Mother(p), g.Father(p))
		next = append(next, g.Children(p)...)
		for _, q := range next {
			if q != nil && !seen[q.ID] {
				seen[q.ID] = true
				queue = append(queue, q)
			}
		}
	}
	return queue
}

func (g *Graph) lookup(id string) *Person {
	if id == "" {
		return nil
	}
	return g.people[id]
}

func (g *Graph) resolve(ids []string) []*Person {
	out := make([]*Person, 0, len(ids))
	for _, id := range ids {
		if p := g.lookup(id); p != nil {
			out = append(out, p)
		}
	}
	return out
}
