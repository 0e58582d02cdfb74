package family

import (
	"slices"
	"strings"

	"github.com/Andre-Pham/FamApp-sub000/pkg/errors"
)

// Sex is a person's recorded sex. The layout engine only uses it to pick a
// default side for the person; it carries no other meaning.
type Sex int

const (
	Male Sex = iota
	Female
)

func (s Sex) String() string {
	if s == Female {
		return "female"
	}
	return "male"
}

// ParseSex parses "male"/"female" (and the single-letter forms m/f),
// ignoring case.
func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return Male, nil
	case "female", "f":
		return Female, nil
	default:
		return Male, errors.New(errors.ErrCodeInvalidInput, "unknown sex %q", s)
	}
}

// Person is a member of a [Graph].
//
// Identity and name fields are plain data. Relationships are stored as ids of
// other members of the same graph and can only be changed through the graph's
// Assign* methods, which keep both sides of every relationship consistent.
type Person struct {
	ID        string
	Sex       Sex
	FirstName string
	LastName  string

	motherID    string
	fatherID    string
	spouseID    string
	exSpouseIDs []string
	childIDs    []string

	// seq is the creation index within the owning graph.
	seq int
}

// FullName joins the first and last name, skipping empty parts.
func (p *Person) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// MotherID returns the mother's id, or "" when unknown.
func (p *Person) MotherID() string { return p.motherID }

// FatherID returns the father's id, or "" when unknown.
func (p *Person) FatherID() string { return p.fatherID }

// SpouseID returns the current spouse's id, or "".
func (p *Person) SpouseID() string { return p.spouseID }

// ExSpouseIDs returns the ids of former spouses in assignment order.
func (p *Person) ExSpouseIDs() []string { return slices.Clone(p.exSpouseIDs) }

// ChildIDs returns the ids of the person's children in assignment order.
func (p *Person) ChildIDs() []string { return slices.Clone(p.childIDs) }

// Seq returns the creation index of the person within its graph.
func (p *Person) Seq() int { return p.seq }

// IsChildOf reports whether parent is recorded as p's mother or father.
func (p *Person) IsChildOf(parent *Person) bool {
	if parent == nil {
		return false
	}
	return p.motherID == parent.ID || p.fatherID == parent.ID
}

// IsSpouseOf reports whether other is p's current spouse.
func (p *Person) IsSpouseOf(other *Person) bool {
	return other != nil && p.spouseID != "" && p.spouseID == other.ID
}

// IsExSpouseOf reports whether other is one of p's former spouses.
func (p *Person) IsExSpouseOf(other *Person) bool {
	return other != nil && slices.Contains(p.exSpouseIDs, other.ID)
}

func (p *Person) String() string {
	if name := p.FullName(); name != "" {
		return p.ID + " (" + name + ")"
	}
	return p.ID
}
