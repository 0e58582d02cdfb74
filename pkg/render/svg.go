package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/Andre-Pham/FamApp-sub000/pkg/graph"
)

// Default chip geometry, in layout units.
const (
	DefaultChipWidth  = 90
	DefaultChipHeight = 36
	DefaultMargin     = 40
)

// Options configures SVG rendering.
type Options struct {
	ChipWidth  int
	ChipHeight int
	Margin     int

	// HighlightConflicts draws crossing connectors in the warning colour.
	HighlightConflicts bool
}

func (o Options) withDefaults() Options {
	if o.ChipWidth <= 0 {
		o.ChipWidth = DefaultChipWidth
	}
	if o.ChipHeight <= 0 {
		o.ChipHeight = DefaultChipHeight
	}
	if o.Margin < 0 {
		o.Margin = 0
	} else if o.Margin == 0 {
		o.Margin = DefaultMargin
	}
	return o
}

// Palette.
const (
	colorBackground = "#ffffff"
	colorCouple     = "#8c6d62"
	colorChild      = "#6b7280"
	colorConflict   = "#dc2626"
	colorText       = "#111827"
	colorMale       = "#dbeafe"
	colorFemale     = "#fce7f3"
	colorStroke     = "#374151"
)

// Bounds is the axis-aligned box around every positioned person's centre.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns MaxX - MinX.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxY - MinY.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// LayoutBounds measures the positioned people of a document. The boolean is
// false when nobody is positioned.
func LayoutBounds(doc graph.LayoutDocument) (Bounds, bool) {
	b := Bounds{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	found := false
	for _, p := range doc.People {
		if !p.Positioned {
			continue
		}
		found = true
		b.MinX, b.MaxX = math.Min(b.MinX, p.X), math.Max(b.MaxX, p.X)
		b.MinY, b.MaxY = math.Min(b.MinY, p.Y), math.Max(b.MaxY, p.Y)
	}
	if !found {
		return Bounds{}, false
	}
	return b, true
}

// RenderSVG writes the layout as a standalone SVG document.
func RenderSVG(w io.Writer, doc graph.LayoutDocument, opts Options) error {
	opts = opts.withDefaults()

	bounds, ok := LayoutBounds(doc)
	halfW, halfH := float64(opts.ChipWidth)/2, float64(opts.ChipHeight)/2
	width := int(math.Ceil(bounds.Width()+2*halfW)) + 2*opts.Margin
	height := int(math.Ceil(bounds.Height()+2*halfH)) + 2*opts.Margin
	if !ok {
		width, height = 2*opts.Margin, 2*opts.Margin
	}

	// to maps layout coordinates to canvas pixels.
	to := func(x, y float64) (int, int) {
		return int(math.Round(x - bounds.MinX + halfW + float64(opts.Margin))),
			int(math.Round(y - bounds.MinY + halfH + float64(opts.Margin)))
	}

	placed := make(map[string]graph.Placement, len(doc.People))
	for _, p := range doc.People {
		if p.Positioned {
			placed[p.ID] = p
		}
	}

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Title(fmt.Sprintf("Family of %s", doc.Root))
	canvas.Rect(0, 0, width, height, "fill:"+colorBackground)

	crossing := map[int]bool{}
	if opts.HighlightConflicts {
		crossing = crossingChildren(doc, placed)
	}

	canvas.Gid("connectors")
	for i, c := range doc.Children {
		kid, ok := placed[c.Child]
		couple, found := findCouple(doc, c.Left, c.Right)
		if !ok || !found {
			continue
		}
		x1, y1 := to(couple.MidX, couple.MidY)
		x2, y2 := to(kid.X, kid.Y-halfH)
		stroke := colorChild
		if crossing[i] {
			stroke = colorConflict
		}
		canvas.Line(x1, y1, x2, y2, fmt.Sprintf("stroke:%s;stroke-width:2", stroke))
	}
	for _, c := range doc.Couples {
		l, lok := placed[c.Left]
		r, rok := placed[c.Right]
		if !lok || !rok {
			continue
		}
		x1, y1 := to(l.X, l.Y)
		x2, y2 := to(r.X, r.Y)
		canvas.Line(x1, y1, x2, y2, fmt.Sprintf("stroke:%s;stroke-width:3", colorCouple))
	}
	canvas.Gend()

	canvas.Gid("people")
	for _, p := range doc.People {
		if !p.Positioned {
			continue
		}
		cx, cy := to(p.X, p.Y)
		fill := colorMale
		if p.Sex == "female" {
			fill = colorFemale
		}
		canvas.Roundrect(cx-opts.ChipWidth/2, cy-opts.ChipHeight/2, opts.ChipWidth, opts.ChipHeight, 8, 8,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1.5", fill, colorStroke))
		canvas.Text(cx, cy+4, p.Label(),
			fmt.Sprintf("fill:%s;font-size:12px;font-family:system-ui,sans-serif;text-anchor:middle", colorText))
	}
	canvas.Gend()

	canvas.End()
	return nil
}

func findCouple(doc graph.LayoutDocument, left, right string) (graph.Couple, bool) {
	for _, c := range doc.Couples {
		if c.Left == left && c.Right == right {
			return c, true
		}
	}
	return graph.Couple{}, false
}

// crossingChildren marks child connectors that cross a connector of another
// couple on the same level.
func crossingChildren(doc graph.LayoutDocument, placed map[string]graph.Placement) map[int]bool {
	type seg struct {
		top, bottom, y float64
		couple         string
	}
	segs := make(map[int]seg)
	for i, c := range doc.Children {
		kid, ok := placed[c.Child]
		couple, found := findCouple(doc, c.Left, c.Right)
		if ok && found {
			segs[i] = seg{top: couple.MidX, bottom: kid.X, y: couple.MidY, couple: c.Left + "+" + c.Right}
		}
	}

	out := make(map[int]bool)
	for i := range doc.Children {
		a, ok := segs[i]
		if !ok {
			continue
		}
		for j := i + 1; j < len(doc.Children); j++ {
			b, ok := segs[j]
			if !ok || a.couple == b.couple || a.y != b.y {
				continue
			}
			if (a.top-b.top)*(a.bottom-b.bottom) < 0 {
				out[i], out[j] = true, true
			}
		}
	}
	return out
}
