package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/Andre-Pham/FamApp-sub000/pkg/graph"
)

// ToDOT converts a layout document to Graphviz DOT with every positioned
// person pinned to its layout position. Each couple gets an invisible
// junction node at its midpoint from which child edges start.
func ToDOT(doc graph.LayoutDocument) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  splines=line;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, width=1.25, height=0.5, fixedsize=true];\n")
	buf.WriteString("\n")

	placed := make(map[string]bool)
	for _, p := range doc.People {
		if !p.Positioned {
			continue
		}
		placed[p.ID] = true
		fmt.Fprintf(&buf, "  %q [label=%q, pos=%q, fillcolor=%q];\n",
			p.ID, p.Label(), pin(p.X, p.Y), fillFor(p.Sex))
	}

	buf.WriteString("\n")
	junctions := make(map[string]string)
	for i, c := range doc.Couples {
		if !placed[c.Left] || !placed[c.Right] {
			continue
		}
		j := fmt.Sprintf("couple_%d", i)
		junctions[c.Left+"\x00"+c.Right] = j
		fmt.Fprintf(&buf, "  %q [shape=point, width=0.05, label=\"\", pos=%q];\n", j, pin(c.MidX, c.MidY))
		fmt.Fprintf(&buf, "  %q -- %q [penwidth=2, color=%q];\n", c.Left, c.Right, colorCouple)
	}

	for _, c := range doc.Children {
		j, ok := junctions[c.Left+"\x00"+c.Right]
		if !ok || !placed[c.Child] {
			continue
		}
		fmt.Fprintf(&buf, "  %q -- %q [color=%q];\n", j, c.Child, colorChild)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// pin formats a pinned Graphviz position. Graphviz y grows upward.
func pin(x, y float64) string {
	up := -y
	if up == 0 {
		up = 0 // no "-0"
	}
	return strconv.FormatFloat(x, 'f', -1, 64) + "," + strconv.FormatFloat(up, 'f', -1, 64) + "!"
}

func fillFor(sex string) string {
	if strings.EqualFold(sex, "female") {
		return colorFemale
	}
	return colorMale
}

// RenderGraphvizSVG renders a DOT graph to SVG using Graphviz's neato engine,
// which keeps pinned positions.
func RenderGraphvizSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.-]+)\s+([0-9.-]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites Graphviz's root element so the drawing scales
// with its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
