// Package family provides the genealogy graph that the layout engine reads.
//
// A [Graph] is an arena of [Person] values keyed by stable ids. People refer
// to each other only by id (mother, father, spouse, ex-spouses, children), so
// the graph has no ownership cycles and a person can always be resolved
// through the graph that created it.
//
// # Relationships
//
// Four relationship kinds are supported: mother, father, spouse and
// ex-spouse. Children lists are maintained automatically from parent
// assignments. All assignments are symmetric:
//
//	g := family.New()
//	a, _ := g.AddPerson(family.Person{ID: "a", Sex: family.Male})
//	b, _ := g.AddPerson(family.Person{ID: "b", Sex: family.Female})
//	_ = g.AssignSpouse(a, b) // a.SpouseID() == "b" and b.SpouseID() == "a"
//
// Assigning a relationship between people that do not belong to the same
// graph fails with an UNRELATED_ASSIGNMENT error.
//
// # Determinism
//
// Every enumeration (members, children, siblings) follows creation or
// assignment order, never map iteration order. The layout engine depends on
// this to produce identical output for identical input.
package family

import (
	"slices"

	"github.com/google/uuid"

	"github.com/Andre-Pham/FamApp-sub000/pkg/errors"
)

// Graph owns a set of people and their relationships.
// A Graph is not safe for concurrent mutation; concurrent reads are fine.
type Graph struct {
	people  map[string]*Person
	members []*Person
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{people: make(map[string]*Person)}
}

// AddPerson registers a new member built from p's identity and name fields.
// Relationship state on p is ignored; use the Assign* methods afterwards.
// An empty ID is replaced with a random UUID. Adding an id twice fails with
// INVALID_INPUT.
func (g *Graph) AddPerson(p Person) (*Person, error) {
	id := p.ID
	if id == "" {
		id = uuid.NewString()
	}
	if _, exists := g.people[id]; exists {
		return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate person id %q", id)
	}
	person := &Person{
		ID:        id,
		Sex:       p.Sex,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		seq:       len(g.members),
	}
	g.people[id] = person
	g.members = append(g.members, person)
	return person, nil
}

// Person returns the member with the given id.
func (g *Graph) Person(id string) (*Person, bool) {
	p, ok := g.people[id]
	return p, ok
}

// Contains reports whether p is a member of this graph.
func (g *Graph) Contains(p *Person) bool {
	return p != nil && g.people[p.ID] == p
}

// Len returns the number of members.
func (g *Graph) Len() int { return len(g.members) }

// Members returns all people in creation order.
func (g *Graph) Members() []*Person { return slices.Clone(g.members) }

// =============================================================================
// Mutation
// =============================================================================

// AssignSpouse makes a and b each other's spouse. Any previous spouse of
// either is released, and a and b are no longer listed as exes of each other.
func (g *Graph) AssignSpouse(a, b *Person) error {
	if err := g.checkPair(a, b, "spouse"); err != nil {
		return err
	}
	if a.spouseID == b.ID {
		return nil
	}
	g.releaseSpouse(a)
	g.releaseSpouse(b)
	a.spouseID = b.ID
	b.spouseID = a.ID
	a.exSpouseIDs = slices.DeleteFunc(a.exSpouseIDs, func(id string) bool { return id == b.ID })
	b.exSpouseIDs = slices.DeleteFunc(b.exSpouseIDs, func(id string) bool { return id == a.ID })
	return nil
}

// AssignExSpouse records a and b as former spouses of each other. If they
// are currently married the marriage is dissolved.
func (g *Graph) AssignExSpouse(a, b *Person) error {
	if err := g.checkPair(a, b, "ex-spouse"); err != nil {
		return err
	}
	if a.spouseID == b.ID {
		a.spouseID = ""
		b.spouseID = ""
	}
	if !slices.Contains(a.exSpouseIDs, b.ID) {
		a.exSpouseIDs = append(a.exSpouseIDs, b.ID)
	}
	if !slices.Contains(b.exSpouseIDs, a.ID) {
		b.exSpouseIDs = append(b.exSpouseIDs, a.ID)
	}
	return nil
}

// AssignParent records parent as child's mother or father, chosen by the
// parent's sex. A previously recorded parent in that slot loses the child.
func (g *Graph) AssignParent(child, parent *Person) error {
	if err := g.checkPair(child, parent, "parent"); err != nil {
		return err
	}
	slot := &child.fatherID
	if parent.Sex == Female {
		slot = &child.motherID
	}
	if *slot == parent.ID {
		return nil
	}
	if previous, ok := g.people[*slot]; ok {
		previous.childIDs = slices.DeleteFunc(previous.childIDs, func(id string) bool { return id == child.ID })
	}
	*slot = parent.ID
	if !slices.Contains(parent.childIDs, child.ID) {
		parent.childIDs = append(parent.childIDs, child.ID)
	}
	return nil
}

// AssignChild is AssignParent with the arguments the other way around.
func (g *Graph) AssignChild(parent, child *Person) error {
	return g.AssignParent(child, parent)
}

func (g *Graph) checkPair(a, b *Person, relation string) error {
	if a == nil || b == nil {
		return errors.New(errors.ErrCodeInvalidInput, "%s assignment requires two people", relation)
	}
	if !g.Contains(a) || !g.Contains(b) {
		return errors.New(errors.ErrCodeUnrelatedAssignment,
			"cannot assign %s between %s and %s: not members of the same graph", relation, a.ID, b.ID)
	}
	if a == b {
		return errors.New(errors.ErrCodeInvalidInput, "%s cannot be their own %s", a.ID, relation)
	}
	return nil
}

func (g *Graph) releaseSpouse(p *Person) {
	if old, ok := g.people[p.spouseID]; ok {
		old.spouseID = ""
	}
	p.spouseID = ""
}
