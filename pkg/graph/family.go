package graph

import (
	"github.com/Andre-Pham/FamApp-sub000/pkg/errors"
	"github.com/Andre-Pham/FamApp-sub000/pkg/family"
)

// =============================================================================
// FamilyFile - Family Graph Serialization
// =============================================================================

// FamilyFile is the canonical serialization format for family graphs.
// Root is optional; when empty, callers fall back to [family.Graph.DefaultRoot].
type FamilyFile struct {
	Root   string         `json:"root,omitempty" toml:"root,omitempty" yaml:"root,omitempty" bson:"root,omitempty"`
	People []PersonRecord `json:"people" toml:"people" yaml:"people" bson:"people"`
}

// PersonRecord is one person with the ids of their direct relatives.
type PersonRecord struct {
	ID        string   `json:"id" toml:"id" yaml:"id" bson:"id"`
	Sex       string   `json:"sex" toml:"sex" yaml:"sex" bson:"sex"`
	FirstName string   `json:"first_name,omitempty" toml:"first_name,omitempty" yaml:"first_name,omitempty" bson:"first_name,omitempty"`
	LastName  string   `json:"last_name,omitempty" toml:"last_name,omitempty" yaml:"last_name,omitempty" bson:"last_name,omitempty"`
	Mother    string   `json:"mother,omitempty" toml:"mother,omitempty" yaml:"mother,omitempty" bson:"mother,omitempty"`
	Father    string   `json:"father,omitempty" toml:"father,omitempty" yaml:"father,omitempty" bson:"father,omitempty"`
	Spouse    string   `json:"spouse,omitempty" toml:"spouse,omitempty" yaml:"spouse,omitempty" bson:"spouse,omitempty"`
	ExSpouses []string `json:"ex_spouses,omitempty" toml:"ex_spouses,omitempty" yaml:"ex_spouses,omitempty" bson:"ex_spouses,omitempty"`
}

// FromGraph converts a family graph to its serialization format. People are
// written in creation order.
func FromGraph(g *family.Graph, root string) FamilyFile {
	members := g.Members()
	out := FamilyFile{Root: root, People: make([]PersonRecord, len(members))}
	for i, p := range members {
		out.People[i] = PersonRecord{
			ID:        p.ID,
			Sex:       p.Sex.String(),
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Mother:    p.MotherID(),
			Father:    p.FatherID(),
			Spouse:    p.SpouseID(),
			ExSpouses: p.ExSpouseIDs(),
		}
	}
	return out
}

// ToGraph builds a family graph from the file.
//
// Returns INVALID_INPUT for malformed records (bad sex, duplicate ids,
// contradicting spouses), PERSON_NOT_FOUND for references to unknown ids
// and INVALID_ROOT when Root names nobody in the file.
func (f FamilyFile) ToGraph() (*family.Graph, error) {
	g := family.New()
	for _, rec := range f.People {
		if rec.ID != "" {
			if err := errors.ValidateID(rec.ID); err != nil {
				return nil, err
			}
		}
		sex, err := family.ParseSex(rec.Sex)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "person %q", rec.ID)
		}
		if _, err := g.AddPerson(family.Person{
			ID:        rec.ID,
			Sex:       sex,
			FirstName: rec.FirstName,
			LastName:  rec.LastName,
		}); err != nil {
			return nil, err
		}
	}

	if f.Root != "" {
		if _, ok := g.Person(f.Root); !ok {
			return nil, errors.New(errors.ErrCodeInvalidRoot, "root %q is not listed in people", f.Root)
		}
	}

	if err := f.apply(g); err != nil {
		return nil, err
	}
	return g, nil
}

func (f FamilyFile) apply(g *family.Graph) error {
	resolve := func(owner, id, relation string) (*family.Person, error) {
		p, ok := g.Person(id)
		if !ok {
			return nil, errors.New(errors.ErrCodePersonNotFound, "%s of %q: unknown person %q", relation, owner, id)
		}
		return p, nil
	}

	for _, rec := range f.People {
		if rec.ID == "" {
			continue
		}
		self, _ := g.Person(rec.ID)
		links := []struct {
			relation, id string
			sex          family.Sex
		}{
			{"mother", rec.Mother, family.Female},
			{"father", rec.Father, family.Male},
		}
		for _, link := range links {
			if link.id == "" {
				continue
			}
			parent, err := resolve(rec.ID, link.id, link.relation)
			if err != nil {
				return err
			}
			if parent.Sex != link.sex {
				return errors.New(errors.ErrCodeInvalidInput, "%s of %q (%q) is not %s", link.relation, rec.ID, link.id, link.sex)
			}
			if err := g.AssignParent(self, parent); err != nil {
				return err
			}
		}
	}

	for _, rec := range f.People {
		if rec.ID == "" {
			continue
		}
		self, _ := g.Person(rec.ID)
		for _, id := range rec.ExSpouses {
			ex, err := resolve(rec.ID, id, "ex-spouse")
			if err != nil {
				return err
			}
			if !self.IsExSpouseOf(ex) {
				if err := g.AssignExSpouse(self, ex); err != nil {
					return err
				}
			}
		}
	}

	declared := make(map[string]string)
	for _, rec := range f.People {
		if rec.ID != "" && rec.Spouse != "" {
			declared[rec.ID] = rec.Spouse
		}
	}
	for _, rec := range f.People {
		if rec.ID == "" || rec.Spouse == "" {
			continue
		}
		self, _ := g.Person(rec.ID)
		spouse, err := resolve(rec.ID, rec.Spouse, "spouse")
		if err != nil {
			return err
		}
		if back, ok := declared[rec.Spouse]; ok && back != rec.ID {
			return errors.New(errors.ErrCodeInvalidInput, "%q lists %q as spouse but %q lists %q", rec.ID, rec.Spouse, rec.Spouse, back)
		}
		if !self.IsSpouseOf(spouse) {
			if err := g.AssignSpouse(self, spouse); err != nil {
				return err
			}
		}
	}
	return nil
}
