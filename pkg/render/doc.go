// Package render draws computed family layouts.
//
// # Overview
//
// Renderers consume a [graph.LayoutDocument], the serialized form of a
// layout, so they work the same for a fresh layout and one read back from
// disk or received over HTTP. Two backends are provided:
//
//   - [RenderSVG] draws name chips and connectors directly with svgo at the
//     exact layout coordinates.
//   - [ToDOT] emits Graphviz DOT with every person pinned to its position;
//     [RenderGraphvizSVG] runs it through Graphviz (neato honours the pins).
//
//	doc := graph.FromResult(res)
//	var buf bytes.Buffer
//	_ = render.RenderSVG(&buf, doc, render.Options{})
//
//	dot := render.ToDOT(doc)
//	svg, err := render.RenderGraphvizSVG(ctx, dot)
//
// # Coordinates
//
// Layout coordinates have y growing downward and the root near the origin.
// [Bounds] measures the occupied area; the SVG renderer translates it so the
// drawing starts at the margin. Graphviz uses y growing upward, so ToDOT
// flips the sign.
//
// Only positioned people are drawn. Unpositioned people (beyond a step
// limit) and their connectors are skipped.
package render
