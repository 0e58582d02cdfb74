package layout

import "github.com/Andre-Pham/FamApp-sub000/pkg/family"

// traverse returns everyone reachable from root in breadth-first order.
// The order in which relatives are visited is fixed by nextPeople and is the
// sole source of determinism for the whole pass.
func traverse(g *family.Graph, root *family.Person) []*family.Person {
	visited := map[string]bool{root.ID: true}
	order := []*family.Person{root}
	for i := 0; i < len(order); i++ {
		for _, q := range nextPeople(g, order[i]) {
			if q != nil && !visited[q.ID] {
				visited[q.ID] = true
				order = append(order, q)
			}
		}
	}
	return order
}

// nextPeople lists p's relatives in visiting order: spouse, ex-spouses,
// mother and her spouse (when not p's father), father and his spouse (when
// not p's mother), then each child followed by that child's spouse.
// Entries may be nil.
func nextPeople(g *family.Graph, p *family.Person) []*family.Person {
	next := []*family.Person{g.Spouse(p)}
	next = append(next, g.ExSpouses(p)...)

	mother, father := g.Mother(p), g.Father(p)
	if mother != nil {
		next = append(next, mother)
		if s := g.Spouse(mother); s != nil && s != father {
			next = append(next, s)
		}
	}
	if father != nil {
		next = append(next, father)
		if s := g.Spouse(father); s != nil && s != mother {
			next = append(next, s)
		}
	}

	for _, c := range g.Children(p) {
		next = append(next, c, g.Spouse(c))
	}
	return next
}
