package layout_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/Andre-Pham/FamApp-sub000/pkg/errors"
	"github.com/Andre-Pham/FamApp-sub000/pkg/family"
	"github.com/Andre-Pham/FamApp-sub000/pkg/geom"
	"github.com/Andre-Pham/FamApp-sub000/pkg/layout"
)

// =============================================================================
// Fixtures
// =============================================================================

type builder struct {
	t *testing.T
	g *family.Graph
}

func newBuilder(t *testing.T) *builder {
	t.Helper()
	return &builder{t: t, g: family.New()}
}

func (b *builder) man(ids ...string) *builder   { return b.add(family.Male, ids) }
func (b *builder) woman(ids ...string) *builder { return b.add(family.Female, ids) }

func (b *builder) add(sex family.Sex, ids []string) *builder {
	b.t.Helper()
	for _, id := range ids {
		if _, err := b.g.AddPerson(family.Person{ID: id, Sex: sex}); err != nil {
			b.t.Fatalf("AddPerson(%s): %v", id, err)
		}
	}
	return b
}

func (b *builder) get(id string) *family.Person {
	b.t.Helper()
	p, ok := b.g.Person(id)
	if !ok {
		b.t.Fatalf("unknown person %q", id)
	}
	return p
}

func (b *builder) marry(x, y string) *builder {
	b.t.Helper()
	if err := b.g.AssignSpouse(b.get(x), b.get(y)); err != nil {
		b.t.Fatalf("AssignSpouse(%s, %s): %v", x, y, err)
	}
	return b
}

func (b *builder) divorce(x, y string) *builder {
	b.t.Helper()
	if err := b.g.AssignExSpouse(b.get(x), b.get(y)); err != nil {
		b.t.Fatalf("AssignExSpouse(%s, %s): %v", x, y, err)
	}
	return b
}

func (b *builder) child(kid string, parents ...string) *builder {
	b.t.Helper()
	for _, parent := range parents {
		if err := b.g.AssignParent(b.get(kid), b.get(parent)); err != nil {
			b.t.Fatalf("AssignParent(%s, %s): %v", kid, parent, err)
		}
	}
	return b
}

func (b *builder) layout(root string, opts ...layout.Option) *layout.Result {
	b.t.Helper()
	res, err := layout.Compute(b.g, root, opts...)
	if err != nil {
		b.t.Fatalf("Compute(%s): %v", root, err)
	}
	return res
}

// simpsons is a couple with three children.
func simpsons(t *testing.T) *builder {
	return newBuilder(t).
		man("homer", "bart").
		woman("marge", "lisa", "maggie").
		marry("homer", "marge").
		child("bart", "homer", "marge").
		child("lisa", "homer", "marge").
		child("maggie", "homer", "marge")
}

// inLaws is a married couple with both sets of parents.
func inLaws(t *testing.T) *builder {
	return newBuilder(t).
		man("s", "x", "sf").
		woman("e", "y", "sm").
		marry("e", "s").
		marry("x", "y").
		marry("sf", "sm").
		child("e", "x", "y").
		child("s", "sf", "sm")
}

// crossedInLaws marries two daughters of one couple to two sons of another.
// Whatever the order, one son sits between the daughters or one daughter
// between the sons, so exactly one pair of connectors has to cross.
func crossedInLaws(t *testing.T) *builder {
	return newBuilder(t).
		man("a1", "b1", "v1", "v2").
		woman("a2", "b2", "u1", "u2").
		marry("a1", "a2").
		marry("b1", "b2").
		child("u1", "a1", "a2").
		child("u2", "a1", "a2").
		child("v1", "b1", "b2").
		child("v2", "b1", "b2").
		marry("u1", "v1").
		marry("u2", "v2")
}

// cousins is three generations: a couple with three married children, and
// five grandchildren between them. Bulk moves used to split the middle
// couple's children around a cousin, crossing their connectors.
func cousins(t *testing.T) *builder {
	return newBuilder(t).
		man("p0", "p2", "p5", "p7", "p9", "p10", "p11", "p13").
		woman("p1", "p3", "p4", "p6", "p8", "p12").
		marry("p0", "p1").
		child("p2", "p0", "p1").
		marry("p2", "p3").
		child("p4", "p0", "p1").
		marry("p4", "p5").
		child("p6", "p0", "p1").
		marry("p6", "p7").
		child("p8", "p2", "p3").
		marry("p8", "p9").
		child("p10", "p2", "p3").
		child("p11", "p4", "p5").
		marry("p11", "p12").
		child("p13", "p6", "p7")
}

// sistersWithInLaws has three sisters, the middle one married to a man
// whose own parents are placed on the grandparents' level.
func sistersWithInLaws(t *testing.T) *builder {
	return newBuilder(t).
		man("hal", "tom", "ted").
		woman("ida", "ann", "bea", "cat", "tess").
		marry("hal", "ida").
		child("ann", "hal", "ida").
		child("bea", "hal", "ida").
		child("cat", "hal", "ida").
		marry("bea", "tom").
		marry("ted", "tess").
		child("tom", "ted", "tess")
}

func positions(res *layout.Result) map[string]geom.Point {
	out := make(map[string]geom.Point)
	for _, pp := range res.People {
		if pos, ok := pp.Position(); ok {
			out[pp.ID()] = pos
		}
	}
	return out
}

// =============================================================================
// Scenarios
// =============================================================================

func TestLayoutParentsOfRoot(t *testing.T) {
	b := newBuilder(t).
		man("a", "father").
		woman("mother").
		marry("father", "mother").
		child("a", "father", "mother")
	res := b.layout("a")

	// The parents start half a padding unit either side of a (±75) and are
	// pulled in to half the couple padding (±50) when couples are tightened.
	want := map[string]geom.Point{
		"a":      geom.Pt(0, 0),
		"mother": geom.Pt(50, -150),
		"father": geom.Pt(-50, -150),
	}
	if diff := cmp.Diff(want, positions(res)); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
	if got := res.PositionConflicts(); got != 0 {
		t.Errorf("PositionConflicts() = %d, want 0", got)
	}
	if got := res.ConnectionConflicts(); got != 0 {
		t.Errorf("ConnectionConflicts() = %d, want 0", got)
	}
}

func TestLayoutNuclearFamily(t *testing.T) {
	res := simpsons(t).layout("homer")

	want := map[string]geom.Point{
		"homer":  geom.Pt(25, 0),
		"marge":  geom.Pt(125, 0),
		"bart":   geom.Pt(-75, 150),
		"lisa":   geom.Pt(75, 150),
		"maggie": geom.Pt(225, 150),
	}
	if diff := cmp.Diff(want, positions(res)); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
	if len(res.Couples) != 1 || len(res.Children) != 3 {
		t.Fatalf("got %d couples and %d children, want 1 and 3", len(res.Couples), len(res.Children))
	}
	if got := res.Couples[0].Left.ID(); got != "homer" {
		t.Errorf("Couples[0].Left = %s, want homer", got)
	}
	if got := res.Couples[0].Midpoint(); !got.Equal(geom.Pt(75, 0)) {
		t.Errorf("Couples[0].Midpoint() = %v, want (75, 0)", got)
	}
}

func TestLayoutInLaws(t *testing.T) {
	res := inLaws(t).layout("e")

	want := map[string]geom.Point{
		"e":  geom.Pt(-25, 0),
		"s":  geom.Pt(-125, 0),
		"y":  geom.Pt(50, -150),
		"x":  geom.Pt(-50, -150),
		"sm": geom.Pt(-250, -150),
		"sf": geom.Pt(-350, -150),
	}
	if diff := cmp.Diff(want, positions(res)); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
	if res.PositionConflicts() != 0 || res.ConnectionConflicts() != 0 {
		t.Errorf("conflicts = %d/%d, want 0/0", res.PositionConflicts(), res.ConnectionConflicts())
	}
}

func TestLayoutStepParentAndExSpouse(t *testing.T) {
	b := newBuilder(t).
		man("k", "fa", "st").
		woman("mo").
		child("k", "mo", "fa").
		divorce("mo", "fa").
		marry("mo", "st")
	res := b.layout("k")

	var order []string
	for _, pp := range res.People {
		order = append(order, pp.ID())
	}
	if diff := cmp.Diff([]string{"k", "mo", "st", "fa"}, order); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	want := map[string]geom.Point{
		"k":  geom.Pt(0, 0),
		"mo": geom.Pt(50, -150),
		"st": geom.Pt(-50, -150),
		"fa": geom.Pt(-225, -150),
	}
	if diff := cmp.Diff(want, positions(res)); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
	if len(res.Children) != 0 {
		t.Errorf("len(Children) = %d, want 0 (k is not a child of the current couple)", len(res.Children))
	}
}

func TestLayoutSwapsPartnersTowardParents(t *testing.T) {
	b := newBuilder(t).
		man("p", "s").
		woman("q", "w").
		marry("p", "q").
		child("s", "p", "q").
		marry("s", "w")
	res := b.layout("p")

	want := map[string]geom.Point{
		"p": geom.Pt(25, 0),
		"q": geom.Pt(125, 0),
		"s": geom.Pt(50, 150),
		"w": geom.Pt(-50, 150),
	}
	if diff := cmp.Diff(want, positions(res)); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}

	s, _ := res.Lookup("s")
	w, _ := res.Lookup("w")
	if s.Direction() != layout.Right || w.Direction() != layout.Left {
		t.Errorf("directions = %v/%v, want right/left after swapping", s.Direction(), w.Direction())
	}
}

func TestLayoutForcedConflict(t *testing.T) {
	res := crossedInLaws(t).layout("u1")

	if got := res.Positioned(); got != 8 {
		t.Errorf("Positioned() = %d, want 8", got)
	}
	if got := res.PositionConflicts(); got != 0 {
		t.Errorf("PositionConflicts() = %d, want 0", got)
	}
	if got := res.ConnectionConflicts(); got != 1 {
		t.Errorf("ConnectionConflicts() = %d, want 1", got)
	}
}

func TestLayoutKeepsSiblingsTogether(t *testing.T) {
	b := cousins(t)
	res := b.layout("p10")

	want := map[string]geom.Point{
		"p0":  geom.Pt(-725, -300),
		"p1":  geom.Pt(-625, -300),
		"p4":  geom.Pt(-350, -150),
		"p5":  geom.Pt(-250, -150),
		"p2":  geom.Pt(-50, -150),
		"p3":  geom.Pt(50, -150),
		"p6":  geom.Pt(250, -150),
		"p7":  geom.Pt(350, -150),
		"p12": geom.Pt(-575, 0),
		"p11": geom.Pt(-475, 0),
		"p10": geom.Pt(-300, 0),
		"p8":  geom.Pt(-125, 0),
		"p9":  geom.Pt(-25, 0),
		"p13": geom.Pt(150, 0),
	}
	if diff := cmp.Diff(want, positions(res)); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}

	for _, root := range []string{"p0", "p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8", "p9", "p10", "p11", "p12", "p13"} {
		res := b.layout(root)
		if res.PositionConflicts() != 0 || res.ConnectionConflicts() != 0 {
			t.Errorf("root %s: conflicts = %d/%d, want 0/0", root, res.PositionConflicts(), res.ConnectionConflicts())
		}
	}
}

func TestLayoutInLawBetweenSisters(t *testing.T) {
	b := sistersWithInLaws(t)
	res := b.layout("hal")

	// tom's parents are placed last, after all three sisters, and land to
	// the right of hal and ida. The crossing between cat's and tom's
	// connectors stays.
	want := map[string]geom.Point{
		"hal":  geom.Pt(-125, 0),
		"ida":  geom.Pt(-25, 0),
		"ted":  geom.Pt(325, 0),
		"tess": geom.Pt(425, 0),
		"ann":  geom.Pt(75, 150),
		"bea":  geom.Pt(250, 150),
		"tom":  geom.Pt(350, 150),
		"cat":  geom.Pt(525, 150),
	}
	if diff := cmp.Diff(want, positions(res)); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
	if got := res.PositionConflicts(); got != 0 {
		t.Errorf("PositionConflicts() = %d, want 0", got)
	}
	if got := res.ConnectionConflicts(); got != 1 {
		t.Errorf("ConnectionConflicts() = %d, want 1", got)
	}

	for _, root := range []string{"ida", "ann", "bea", "cat", "tom", "ted", "tess"} {
		res := b.layout(root)
		if res.PositionConflicts() != 0 || res.ConnectionConflicts() > 1 {
			t.Errorf("root %s: conflicts = %d/%d, want 0 and at most 1", root, res.PositionConflicts(), res.ConnectionConflicts())
		}
	}
}

// Each family below is the smallest found where one repair step has to
// fire for the layout to come out clean. The debug trace shows which ones
// did.
func TestLayoutRepairSteps(t *testing.T) {
	married := func(t *testing.T) *builder {
		return newBuilder(t).
			man("p1", "p2", "p4", "p6").
			woman("p0", "p3", "p5").
			marry("p0", "p1").
			child("p2", "p1", "p0").
			child("p3", "p4", "p5").
			marry("p2", "p3").
			marry("p4", "p5").
			child("p6", "p1", "p0")
	}
	nephews := func(t *testing.T) *builder {
		return newBuilder(t).
			man("p0", "p2", "p4", "p7").
			woman("p1", "p3", "p5", "p6").
			marry("p0", "p1").
			child("p2", "p0", "p1").
			marry("p2", "p3").
			child("p4", "p0", "p1").
			child("p5", "p2", "p3").
			child("p6", "p2", "p3").
			marry("p6", "p7")
	}
	twoHouseholds := func(t *testing.T) *builder {
		return newBuilder(t).
			man("p1", "p3", "p5", "p7").
			woman("p0", "p2", "p4", "p6", "p8").
			marry("p0", "p1").
			child("p2", "p1", "p0").
			marry("p2", "p3").
			child("p4", "p1", "p0").
			marry("p4", "p5").
			child("p6", "p3", "p2").
			child("p7", "p3", "p2").
			child("p8", "p5", "p4")
	}
	threeHouseholds := func(t *testing.T) *builder {
		return newBuilder(t).
			man("p1", "p2", "p4", "p6", "p7").
			woman("p0", "p3", "p5", "p8").
			marry("p0", "p1").
			child("p2", "p1", "p0").
			child("p3", "p1", "p0").
			marry("p3", "p4").
			child("p5", "p1", "p0").
			marry("p5", "p6").
			child("p7", "p4", "p3").
			child("p8", "p6", "p5")
	}
	fourGenerations := func(t *testing.T) *builder {
		return newBuilder(t).
			man("p1", "p2", "p4", "p7", "p9", "p10", "p12", "p14", "p15").
			woman("p0", "p3", "p5", "p6", "p8", "p11", "p13", "p16").
			marry("p0", "p1").
			child("p2", "p1", "p0").
			marry("p2", "p3").
			child("p4", "p2", "p3").
			marry("p4", "p5").
			child("p6", "p2", "p3").
			marry("p6", "p7").
			child("p8", "p2", "p3").
			marry("p8", "p9").
			child("p10", "p4", "p5").
			marry("p10", "p11").
			child("p12", "p7", "p6").
			child("p13", "p7", "p6").
			marry("p13", "p14").
			child("p15", "p9", "p8").
			marry("p15", "p16")
	}

	tests := []struct {
		name   string
		family func(*testing.T) *builder
		root   string
		steps  []string
	}{
		{"swap with sibling", married, "p4", []string{"swapped with sibling", "regrouped siblings"}},
		{"untangle levels", married, "p0", []string{"untangled levels"}},
		{"regroup after making room", nephews, "p4", []string{"made room", "regrouped siblings"}},
		{"shift clear", twoHouseholds, "p4", []string{"shifted clear of conflict"}},
		{"swap couples", threeHouseholds, "p5", []string{"swapped couples"}},
		{"anchor and make room", fourGenerations, "p15", []string{"swapped couples", "anchored under parent", "made room", "regrouped siblings"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := log.New(&buf)
			logger.SetLevel(log.DebugLevel)

			res := tt.family(t).layout(tt.root, layout.WithLogger(logger))
			if res.PositionConflicts() != 0 || res.ConnectionConflicts() != 0 {
				t.Errorf("conflicts = %d/%d, want 0/0", res.PositionConflicts(), res.ConnectionConflicts())
			}
			for _, step := range tt.steps {
				if !strings.Contains(buf.String(), step) {
					t.Errorf("trace has no %q:\n%s", step, buf.String())
				}
			}
		})
	}
}

// =============================================================================
// Properties
// =============================================================================

func TestLayoutDeterministic(t *testing.T) {
	fixtures := map[string]func(*testing.T) *builder{
		"simpsons":      simpsons,
		"inLaws":        inLaws,
		"crossedInLaws": crossedInLaws,
	}
	roots := map[string]string{"simpsons": "lisa", "inLaws": "sm", "crossedInLaws": "v2"}

	for name, fixture := range fixtures {
		t.Run(name, func(t *testing.T) {
			b := fixture(t)
			first := b.layout(roots[name])
			second := b.layout(roots[name])

			type placed struct {
				ID  string
				Pos geom.Point
				Ok  bool
			}
			flatten := func(res *layout.Result) []placed {
				var out []placed
				for _, pp := range res.People {
					pos, ok := pp.Position()
					out = append(out, placed{pp.ID(), pos, ok})
				}
				for _, c := range res.Couples {
					out = append(out, placed{c.Left.ID() + "+" + c.Right.ID(), c.Midpoint(), true})
				}
				for _, c := range res.Children {
					out = append(out, placed{c.Parents.Left.ID() + ">" + c.Child.ID(), c.Segment().B, true})
				}
				return out
			}
			if diff := cmp.Diff(flatten(first), flatten(second)); diff != "" {
				t.Errorf("second run differs (-first +second):\n%s", diff)
			}
		})
	}
}

func TestLayoutGeometry(t *testing.T) {
	tests := []struct {
		name string
		b    func(*testing.T) *builder
		root string
	}{
		{"simpsons", simpsons, "homer"},
		{"simpsons from child", simpsons, "maggie"},
		{"in-laws", inLaws, "e"},
		{"in-laws from grandparent", inLaws, "sf"},
		{"crossed in-laws", crossedInLaws, "u1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tt.b(t).layout(tt.root)

			if res.Positioned() != len(res.People) {
				t.Errorf("Positioned() = %d, want all %d", res.Positioned(), len(res.People))
			}
			for _, c := range res.Couples {
				l, _ := c.Left.Position()
				r, _ := c.Right.Position()
				if !geom.Near(l.Y, r.Y) {
					t.Errorf("couple %s+%s on different levels", c.Left.ID(), c.Right.ID())
				}
				if !geom.Near(r.X-l.X, layout.DefaultCouplePadding) {
					t.Errorf("couple %s+%s spacing = %g, want %g", c.Left.ID(), c.Right.ID(), r.X-l.X, layout.DefaultCouplePadding)
				}
				if c.Left.Direction() != layout.Left || c.Right.Direction() != layout.Right {
					t.Errorf("couple %s+%s sides = %v/%v", c.Left.ID(), c.Right.ID(), c.Left.Direction(), c.Right.Direction())
				}
			}
			for _, c := range res.Children {
				parent := c.Parents.Midpoint()
				kid, _ := c.Child.Position()
				if !geom.Near(kid.Y, parent.Y+layout.DefaultPadding) {
					t.Errorf("child %s at y=%g, parents at y=%g", c.Child.ID(), kid.Y, parent.Y)
				}
			}
		})
	}
}

func TestLayoutStepLimit(t *testing.T) {
	tests := []struct {
		limit int
		want  int
	}{
		{0, 0},
		{1, 1},
		{3, 3},
		{5, 5},
		{99, 5},
		{-4, 0},
	}
	for _, tt := range tests {
		res := simpsons(t).layout("homer", layout.WithStepLimit(tt.limit))
		if got := res.Positioned(); got != tt.want {
			t.Errorf("WithStepLimit(%d): Positioned() = %d, want %d", tt.limit, got, tt.want)
		}
		if len(res.People) != 5 {
			t.Errorf("WithStepLimit(%d): len(People) = %d, want 5", tt.limit, len(res.People))
		}
		for i, pp := range res.People {
			if want := i < tt.want; pp.IsPositioned() != want {
				t.Errorf("WithStepLimit(%d): %s positioned = %v, want %v", tt.limit, pp.ID(), pp.IsPositioned(), want)
			}
		}
	}
}

func TestLayoutStepLimitMatchesFullRunPrefix(t *testing.T) {
	b := simpsons(t)
	res := b.layout("homer", layout.WithStepLimit(3))

	want := map[string]geom.Point{
		"homer": geom.Pt(25, 0),
		"marge": geom.Pt(125, 0),
		"bart":  geom.Pt(-75, 150),
	}
	if diff := cmp.Diff(want, positions(res)); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
	if len(res.Children) != 1 {
		t.Errorf("len(Children) = %d, want 1", len(res.Children))
	}
}

func TestLayoutContext(t *testing.T) {
	b := cousins(t)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	expired, stop := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer stop()

	tests := []struct {
		name string
		ctx  context.Context
		want error
	}{
		{"cancelled", cancelled, context.Canceled},
		{"deadline passed", expired, context.DeadlineExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := layout.ComputeContext(tt.ctx, b.g, "p10")
			if err != tt.want {
				t.Errorf("ComputeContext() error = %v, want %v", err, tt.want)
			}
			if res != nil {
				t.Error("ComputeContext() returned a result for a done context")
			}
		})
	}

	res, err := layout.ComputeContext(context.Background(), b.g, "p10")
	if err != nil {
		t.Fatalf("ComputeContext(background): %v", err)
	}
	if diff := cmp.Diff(positions(b.layout("p10")), positions(res)); diff != "" {
		t.Errorf("ComputeContext differs from Compute (-want +got):\n%s", diff)
	}
}

func TestLayoutInvalidRoot(t *testing.T) {
	b := simpsons(t)
	_, err := layout.Compute(b.g, "ned")
	if !errors.Is(err, errors.ErrCodeInvalidRoot) {
		t.Errorf("Compute(ned) error = %v, want INVALID_ROOT", err)
	}
}

func TestLayoutOnlyReachable(t *testing.T) {
	b := simpsons(t).man("ned")
	res := b.layout("homer")
	if _, ok := res.Lookup("ned"); ok {
		t.Error("unreachable person should not be part of the result")
	}
	if len(res.People) != 5 {
		t.Errorf("len(People) = %d, want 5", len(res.People))
	}
}

func TestLayoutLeavesGraphUntouched(t *testing.T) {
	b := simpsons(t)
	homer := b.get("homer")
	before := homer.ChildIDs()
	_ = b.layout("lisa")
	if diff := cmp.Diff(before, homer.ChildIDs()); diff != "" {
		t.Errorf("children changed (-before +after):\n%s", diff)
	}
	if b.g.Len() != 5 {
		t.Errorf("Len() = %d, want 5", b.g.Len())
	}
}

func TestWithPadding(t *testing.T) {
	b := newBuilder(t).
		man("a", "father").
		woman("mother").
		marry("father", "mother").
		child("a", "father", "mother")
	res := b.layout("a", layout.WithPadding(200, 80))

	// ±100 before tightening, ±40 after.
	want := map[string]geom.Point{
		"a":      geom.Pt(0, 0),
		"mother": geom.Pt(40, -200),
		"father": geom.Pt(-40, -200),
	}
	if diff := cmp.Diff(want, positions(res)); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}

	e := layout.New(layout.WithPadding(100, 300))
	if e.Padding() != 100 || e.CouplePadding() != 100 {
		t.Errorf("padding = %g/%g, want 100/100", e.Padding(), e.CouplePadding())
	}
}
