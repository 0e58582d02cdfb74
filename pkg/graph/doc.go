// Package graph provides serialization types for family graphs and layouts.
//
// This package defines the canonical wire format for famlayout's data, used
// for family files, API requests and responses, and the family stores.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [FamilyFile], [LayoutDocument]: Serialization types (this package)
//   - pkg/family.Graph: Internal graph representation
//   - pkg/layout.Result: Internal layout (positioned people, connections)
//
// Use [FromGraph]/[FamilyFile.ToGraph] and [FromResult] to convert between
// them.
//
// # Family Files
//
// A family file lists people and the ids of their relatives:
//
//	{
//	  "root": "homer",
//	  "people": [
//	    {"id": "homer", "sex": "male", "spouse": "marge"},
//	    {"id": "marge", "sex": "female", "spouse": "homer"},
//	    {"id": "bart", "sex": "male", "mother": "marge", "father": "homer"}
//	  ]
//	}
//
// The same structure can be written as TOML or YAML; [FormatFromPath] picks
// the codec from the file extension:
//
//	f, _ := graph.ReadFamilyFile("simpsons.yaml")
//	g, _ := f.ToGraph()
//
// Relationships are applied after every person has been added: parents
// first, then former spouses, then current spouses, each pass in file order.
// Children therefore appear in the order their records appear in the file.
//
// # Layout Documents
//
// [LayoutDocument] is the JSON shape of a computed layout, consumed by the
// renderers and returned by the HTTP API.
package graph
