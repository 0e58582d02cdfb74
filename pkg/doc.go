// Package pkg provides the core libraries for famlayout family-tree layouts.
//
// # Overview
//
// famlayout turns a family graph into 2D coordinates: parents one row above
// their children, partners side by side, and as few crossing parent-child
// connectors as the engine can manage. The pkg directory is organized into
// these areas:
//
//  1. [family] - The family graph: people and their relations
//  2. [layout] - The layout engine, connections and conflict counters
//  3. [graph] - Serialization types for family files and layouts
//  4. [render] - SVG and Graphviz drawings of a layout
//  5. [pipeline] - Orchestration (load → layout → render)
//  6. [store], [cache] - Persistence of families and computed layouts
//  7. [observability], [errors], [geom], [buildinfo] - Support packages
//
// # Architecture
//
// The typical data flow:
//
//	family.yaml / JSON / TOML
//	         ↓
//	    [graph] package (decode + build the family graph)
//	         ↓
//	    [layout] package (breadth-first placement + repairs)
//	         ↓
//	    [render] package (SVG, DOT, Graphviz SVG)
//
// # Quick Start
//
//	import (
//	    "github.com/Andre-Pham/FamApp-sub000/pkg/graph"
//	    "github.com/Andre-Pham/FamApp-sub000/pkg/layout"
//	)
//
//	f, _ := graph.ReadFamilyFile("simpsons.yaml")
//	g, _ := f.ToGraph()
//	res, _ := layout.Compute(g, "bart")
//	for _, pp := range res.People {
//	    pos, _ := pp.Position()
//	    fmt.Println(pp.ID(), pos)
//	}
//
// Or run everything at once with [pipeline.Runner].
package pkg
