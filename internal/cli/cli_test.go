package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/Andre-Pham/FamApp-sub000/pkg/cache"
	"github.com/Andre-Pham/FamApp-sub000/pkg/graph"
	"github.com/Andre-Pham/FamApp-sub000/pkg/pipeline"
	"github.com/Andre-Pham/FamApp-sub000/pkg/store"
)

const simpsonsYAML = `root: homer
people:
  - id: homer
    sex: male
    first_name: Homer
    last_name: Simpson
    spouse: marge
  - id: marge
    sex: female
    first_name: Marge
    last_name: Simpson
  - id: bart
    sex: male
    first_name: Bart
    father: homer
    mother: marge
  - id: lisa
    sex: female
    first_name: Lisa
    father: homer
    mother: marge
`

func writeFamily(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "simpsons.yaml")
	if err := os.WriteFile(path, []byte(simpsonsYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "dot", []string{"dot"}},
		{"multiple formats", "svg,dot,json", []string{"svg", "dot", "json"}},
		{"spaces trimmed", " svg , graphviz ", []string{"svg", "graphviz"}},
		{"empty entries dropped", "svg,,json,", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestOutputExt(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{pipeline.FormatJSON, ".layout.json"},
		{pipeline.FormatSVG, ".svg"},
		{pipeline.FormatDOT, ".dot"},
		{pipeline.FormatGraphviz, ".graphviz.svg"},
	}

	for _, tt := range tests {
		if got := outputExt(tt.format); got != tt.want {
			t.Errorf("outputExt(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestRenderBase(t *testing.T) {
	tests := []struct {
		input, output, want string
	}{
		{"family.yaml", "", "family"},
		{"dir/family.json", "", "dir/family"},
		{"family.yaml", "out/tree", "out/tree"},
		{"family.yaml", "out/tree.svg", "out/tree"},
	}

	for _, tt := range tests {
		if got := renderBase(tt.input, tt.output); got != tt.want {
			t.Errorf("renderBase(%q, %q) = %q, want %q", tt.input, tt.output, got, tt.want)
		}
	}
}

func TestLayoutFlagsOptions(t *testing.T) {
	f := layoutFlags{root: "bart", stepLimit: 3, padding: 200, couplePadding: 120}
	want := pipeline.Options{Root: "bart", StepLimit: 3, Padding: 200, CouplePadding: 120}
	if diff := cmp.Diff(want, f.options(), cmp.AllowUnexported(pipeline.Options{})); diff != "" {
		t.Errorf("options() mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteArtifacts(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "tree")
	artifacts := map[string][]byte{
		pipeline.FormatSVG: []byte("<svg/>"),
		pipeline.FormatDOT: []byte("digraph {}"),
	}

	paths, err := writeArtifacts(artifacts, []string{pipeline.FormatDOT, pipeline.FormatSVG, pipeline.FormatJSON}, base)
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	want := []string{base + ".dot", base + ".svg"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
	data, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("svg = %q, want <svg/>", data)
	}
}

func TestServeStoreConfig(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")

	cfg, err := serveOpts{backend: store.BackendFile}.storeConfig()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/data", appName, "families"); cfg.Dir != want {
		t.Errorf("Dir = %q, want %q", cfg.Dir, want)
	}

	cfg, err = serveOpts{backend: store.BackendFile, dataDir: "/tmp/x"}.storeConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Dir != "/tmp/x" {
		t.Errorf("Dir = %q, want /tmp/x", cfg.Dir)
	}

	cfg, err = serveOpts{backend: store.BackendRedis, redisAddr: "cache:6379"}.storeConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Dir != "" || cfg.RedisAddr != "cache:6379" {
		t.Errorf("redis config = %+v", cfg)
	}
}

func TestServeOpenCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	ctx := context.Background()

	c, err := serveOpts{cache: serveCacheNone}.openCache(ctx)
	if err != nil || c != nil {
		t.Errorf("none: cache = %v, err = %v, want nil, nil", c, err)
	}

	c, err = serveOpts{cache: serveCacheFile}.openCache(ctx)
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	if _, ok := c.(*cache.FileCache); !ok {
		t.Errorf("file: cache = %T, want *cache.FileCache", c)
	}

	if _, err := (serveOpts{cache: "memcached"}).openCache(ctx); err == nil {
		t.Error("unknown cache: expected error")
	}
}

func TestLayoutCommandCaches(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	input := writeFamily(t)
	c := New(io.Discard, LogInfo)

	first, err := c.newRunner(false).Execute(context.Background(), mustLoad(t, input), pipeline.Options{Formats: []string{pipeline.FormatJSON}})
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.newRunner(false).Execute(context.Background(), mustLoad(t, input), pipeline.Options{Formats: []string{pipeline.FormatJSON}})
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHit || !second.CacheHit {
		t.Errorf("CacheHit = %v, %v, want false, true", first.CacheHit, second.CacheHit)
	}

	uncached, err := c.newRunner(true).Execute(context.Background(), mustLoad(t, input), pipeline.Options{Formats: []string{pipeline.FormatJSON}})
	if err != nil {
		t.Fatal(err)
	}
	if uncached.CacheHit {
		t.Error("--no-cache runner hit the cache")
	}
}

func mustLoad(t *testing.T, path string) graph.FamilyFile {
	t.Helper()
	f, err := loadFamily(path)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"completion", "layout", "render", "serve", "step", "version"}
	var got []string
	for _, cmd := range root.Commands() {
		got = append(got, cmd.Name())
	}
	for _, name := range want {
		found := false
		for _, g := range got {
			if g == name {
				found = true
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered (have %v)", name, got)
		}
	}
}

func TestLayoutCommand(t *testing.T) {
	input := writeFamily(t)
	output := filepath.Join(t.TempDir(), "out.layout.json")

	if _, err := execute(t, "layout", input, "-o", output); err != nil {
		t.Fatalf("layout: %v", err)
	}

	doc, err := graph.ReadLayoutFile(output)
	if err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}
	if doc.Root != "homer" {
		t.Errorf("Root = %q, want homer", doc.Root)
	}
	if len(doc.People) != 4 {
		t.Errorf("len(People) = %d, want 4", len(doc.People))
	}
	if len(doc.Couples) != 1 || len(doc.Children) != 2 {
		t.Errorf("couples, children = %d, %d, want 1, 2", len(doc.Couples), len(doc.Children))
	}
	if doc.Conflicts.Position != 0 {
		t.Errorf("Conflicts.Position = %d, want 0", doc.Conflicts.Position)
	}
}

func TestLayoutCommandDefaultOutput(t *testing.T) {
	input := writeFamily(t)

	if _, err := execute(t, "layout", input, "--root", "bart", "--step-limit", "2"); err != nil {
		t.Fatalf("layout: %v", err)
	}

	doc, err := graph.ReadLayoutFile(basePath(input) + ".layout.json")
	if err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}
	if doc.Root != "bart" {
		t.Errorf("Root = %q, want bart", doc.Root)
	}
	if got := len(doc.Positioned()); got != 2 {
		t.Errorf("positioned = %d, want 2", got)
	}
}

func TestLayoutCommandErrors(t *testing.T) {
	input := writeFamily(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"layout", filepath.Join(t.TempDir(), "nope.yaml")}},
		{"unknown root", []string{"layout", input, "--root", "flanders", "-o", filepath.Join(t.TempDir(), "x.json")}},
		{"negative step limit", []string{"layout", input, "-n", "-1", "-o", filepath.Join(t.TempDir(), "x.json")}},
		{"no args", []string{"layout"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Errorf("%v: expected error", tt.args)
			}
		})
	}
}

func TestRenderCommand(t *testing.T) {
	input := writeFamily(t)
	base := filepath.Join(t.TempDir(), "out", "tree")

	if _, err := execute(t, "render", input, "-f", "svg,dot,json", "-o", base); err != nil {
		t.Fatalf("render: %v", err)
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Errorf("svg output missing <svg")
	}
	dot, err := os.ReadFile(base + ".dot")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(dot), `"homer"`) {
		t.Errorf("dot output missing homer node:\n%s", dot)
	}
	if _, err := graph.ReadLayoutFile(base + ".layout.json"); err != nil {
		t.Errorf("layout json: %v", err)
	}
}

func TestRenderCommandRejectsUnknownFormat(t *testing.T) {
	input := writeFamily(t)
	if _, err := execute(t, "render", input, "-f", "png"); err == nil {
		t.Error("expected error for png format")
	}
}

func TestStepCommandPlain(t *testing.T) {
	input := writeFamily(t)

	out, err := execute(t, "step", input, "--plain")
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "step 1: Homer Simpson at (0, 0)") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[3], "step 4:") {
		t.Errorf("line 3 = %q", lines[3])
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, appName) || !strings.Contains(out, "version:") {
		t.Errorf("version output = %q", out)
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := execute(t, "completion", shell)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out, appName) {
				t.Errorf("%s completion does not mention %s", shell, appName)
			}
		})
	}
	if _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("expected error for unsupported shell")
	}
}

func TestCompleteFamilyFile(t *testing.T) {
	exts, dir := completeFamilyFile(nil, nil, "")
	if dir != cobra.ShellCompDirectiveFilterFileExt {
		t.Errorf("directive = %v, want FilterFileExt", dir)
	}
	if diff := cmp.Diff(familyExtensions, exts); diff != "" {
		t.Errorf("extensions mismatch (-want +got):\n%s", diff)
	}
	if _, dir := completeFamilyFile(nil, []string{"simpsons.yaml"}, ""); dir != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("second argument directive = %v, want NoFileComp", dir)
	}
}
