package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Andre-Pham/FamApp-sub000/pkg/layout"
)

// =============================================================================
// LayoutDocument - Layout Serialization
// =============================================================================

// LayoutDocument is the serialization format for a computed layout.
//
// People keep breadth-first order. People beyond a step limit are listed
// with Positioned false and zero coordinates.
type LayoutDocument struct {
	Root      string      `json:"root"`
	People    []Placement `json:"people"`
	Couples   []Couple    `json:"couples"`
	Children  []Child     `json:"children"`
	Conflicts Conflicts   `json:"conflicts"`
}

// Placement is one person's position.
type Placement struct {
	ID         string  `json:"id"`
	Name       string  `json:"name,omitempty"`
	Sex        string  `json:"sex"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Positioned bool    `json:"positioned"`
	Direction  string  `json:"direction"`
}

// Label returns the name if set, otherwise the ID.
func (p Placement) Label() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// Couple links two partners. Left has the smaller x.
type Couple struct {
	Left  string  `json:"left"`
	Right string  `json:"right"`
	MidX  float64 `json:"mid_x"`
	MidY  float64 `json:"mid_y"`
}

// Child links a couple to one of their children.
type Child struct {
	Left  string `json:"left"`
	Right string `json:"right"`
	Child string `json:"child"`
}

// Conflicts carries the diagnostic counters of a layout.
type Conflicts struct {
	Position   int `json:"position"`
	Connection int `json:"connection"`
}

// FromResult converts a layout result to its serialization format.
func FromResult(res *layout.Result) LayoutDocument {
	doc := LayoutDocument{
		Root:     res.Root,
		People:   make([]Placement, len(res.People)),
		Couples:  make([]Couple, len(res.Couples)),
		Children: make([]Child, len(res.Children)),
		Conflicts: Conflicts{
			Position:   res.PositionConflicts(),
			Connection: res.ConnectionConflicts(),
		},
	}
	for i, pp := range res.People {
		pos, ok := pp.Position()
		doc.People[i] = Placement{
			ID:         pp.ID(),
			Name:       pp.Person().FullName(),
			Sex:        pp.Person().Sex.String(),
			X:          pos.X,
			Y:          pos.Y,
			Positioned: ok,
			Direction:  pp.Direction().String(),
		}
	}
	for i, c := range res.Couples {
		mid := c.Midpoint()
		doc.Couples[i] = Couple{Left: c.Left.ID(), Right: c.Right.ID(), MidX: mid.X, MidY: mid.Y}
	}
	for i, c := range res.Children {
		doc.Children[i] = Child{Left: c.Parents.Left.ID(), Right: c.Parents.Right.ID(), Child: c.Child.ID()}
	}
	return doc
}

// Lookup returns the placement of a person.
func (d LayoutDocument) Lookup(id string) (Placement, bool) {
	for _, p := range d.People {
		if p.ID == id {
			return p, true
		}
	}
	return Placement{}, false
}

// Positioned returns only the people that received a position.
func (d LayoutDocument) Positioned() []Placement {
	var out []Placement
	for _, p := range d.People {
		if p.Positioned {
			out = append(out, p)
		}
	}
	return out
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a LayoutDocument to pretty-printed JSON bytes.
func MarshalLayout(d LayoutDocument) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a LayoutDocument.
func UnmarshalLayout(data []byte) (LayoutDocument, error) {
	var d LayoutDocument
	if err := json.Unmarshal(data, &d); err != nil {
		return LayoutDocument{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if d.Root == "" {
		return LayoutDocument{}, fmt.Errorf("layout document must name its root")
	}
	return d, nil
}

// WriteLayoutFile writes a LayoutDocument to a JSON file.
func WriteLayoutFile(d LayoutDocument, path string) error {
	data, err := MarshalLayout(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a LayoutDocument from a JSON file.
func ReadLayoutFile(path string) (LayoutDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LayoutDocument{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
