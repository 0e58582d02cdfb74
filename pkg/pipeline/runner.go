package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Andre-Pham/FamApp-sub000/pkg/cache"
	"github.com/Andre-Pham/FamApp-sub000/pkg/errors"
	"github.com/Andre-Pham/FamApp-sub000/pkg/family"
	"github.com/Andre-Pham/FamApp-sub000/pkg/graph"
	"github.com/Andre-Pham/FamApp-sub000/pkg/layout"
	"github.com/Andre-Pham/FamApp-sub000/pkg/observability"
	"github.com/Andre-Pham/FamApp-sub000/pkg/render"
)

// DefaultCacheTTL is how long cached layouts stay valid.
const DefaultCacheTTL = 7 * 24 * time.Hour

// Runner executes pipelines. It holds no per-run state, so one Runner can
// serve concurrent requests with different options.
type Runner struct {
	Logger *log.Logger

	// Cache holds layout documents keyed by family and layout options.
	// Nil or a NullCache disables caching.
	Cache cache.Cache

	// CacheTTL bounds cached entries. Zero means DefaultCacheTTL.
	CacheTTL time.Duration
}

// NewRunner creates a runner whose cache never hits. A nil logger falls back
// to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger, Cache: cache.NewNullCache()}
}

// NewCachedRunner creates a runner that reuses layouts through c.
func NewCachedRunner(logger *log.Logger, c cache.Cache) *Runner {
	r := NewRunner(logger)
	r.Cache = c
	return r
}

// Execute runs the complete load → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, f graph.FamilyFile, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	g, root, err := r.Load(ctx, f, opts)
	if err != nil {
		return nil, err
	}
	result.Graph, result.Root = g, root
	result.Stats.LoadTime = time.Since(loadStart)

	r.Logger.Info("loaded family",
		"people", g.Len(),
		"root", root,
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	key := layoutKey(f, root, opts)
	if doc, ok := r.cachedLayout(ctx, key); ok {
		result.Document = doc
		result.CacheHit = true
	} else {
		res, err := r.ComputeLayout(ctx, g, root, opts)
		if err != nil {
			return nil, err
		}
		result.Layout = res
		result.Document = graph.FromResult(res)
		r.storeLayout(ctx, key, result.Document)
	}
	result.Stats.LayoutTime = time.Since(layoutStart)
	fillStats(&result.Stats, result.Document)

	r.Logger.Info("computed layout",
		"positioned", result.Stats.Positioned,
		"couples", result.Stats.Couples,
		"crossings", result.Stats.ConnectionConflicts,
		"cached", result.CacheHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, result.Document, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load builds the family graph and resolves the root: opts.Root, then the
// file's root, then [family.Graph.DefaultRoot].
func (r *Runner) Load(ctx context.Context, f graph.FamilyFile, opts Options) (g *family.Graph, root string, err error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, f.Root)
	start := time.Now()
	defer func() {
		n := 0
		if g != nil {
			n = g.Len()
		}
		hooks.OnLoadComplete(ctx, root, n, time.Since(start), err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	if opts.Root != "" {
		f.Root = opts.Root
	}
	g, err = f.ToGraph()
	if err != nil {
		return nil, "", err
	}

	root = f.Root
	if root == "" {
		p, ok := g.DefaultRoot()
		if !ok {
			return nil, "", errors.New(errors.ErrCodeInvalidInput, "family has no people")
		}
		root = p.ID
		r.Logger.Debug("picked default root", "root", root)
	}
	return g, root, nil
}

// ComputeLayout runs the layout engine. It gives up with ctx's error once
// ctx is done, checking between placements.
func (r *Runner) ComputeLayout(ctx context.Context, g *family.Graph, root string, opts Options) (res *layout.Result, err error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, root, g.Len())
	start := time.Now()
	defer func() {
		var s Stats
		if res != nil {
			fillStats(&s, graph.FromResult(res))
		}
		hooks.OnLayoutComplete(ctx, root, s.hookStats(), time.Since(start), err)
	}()

	return layout.ComputeContext(ctx, g, root, opts.LayoutOptions()...)
}

// Render produces every requested format from a layout document.
func (r *Runner) Render(ctx context.Context, doc graph.LayoutDocument, opts Options) (artifacts map[string][]byte, err error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	artifacts = make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := renderFormat(ctx, doc, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, doc graph.LayoutDocument, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return graph.MarshalLayout(doc)
	case FormatSVG:
		var buf bytes.Buffer
		err := render.RenderSVG(&buf, doc, render.Options{HighlightConflicts: opts.HighlightConflicts})
		return buf.Bytes(), err
	case FormatDOT:
		return []byte(render.ToDOT(doc)), nil
	case FormatGraphviz:
		return render.RenderGraphvizSVG(ctx, render.ToDOT(doc))
	default:
		return nil, ValidateFormat(format)
	}
}

func fillStats(s *Stats, doc graph.LayoutDocument) {
	s.People = len(doc.People)
	s.Positioned = len(doc.Positioned())
	s.Couples = len(doc.Couples)
	s.Children = len(doc.Children)
	s.PositionConflicts = doc.Conflicts.Position
	s.ConnectionConflicts = doc.Conflicts.Connection
}

// =============================================================================
// Layout Cache
// =============================================================================

// layoutKey identifies a layout by the family content, the resolved root and
// every option that changes placement.
func layoutKey(f graph.FamilyFile, root string, opts Options) string {
	return cache.Key("layout", f.People, root, opts.StepLimit, opts.Padding, opts.CouplePadding)
}

// cachedLayout returns a cached document. Cache failures and undecodable
// entries count as misses.
func (r *Runner) cachedLayout(ctx context.Context, key string) (graph.LayoutDocument, bool) {
	if r.Cache == nil {
		return graph.LayoutDocument{}, false
	}
	data, ok, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("layout cache read failed", "error", err)
		return graph.LayoutDocument{}, false
	}
	if !ok {
		return graph.LayoutDocument{}, false
	}
	doc, err := graph.UnmarshalLayout(data)
	if err != nil {
		r.Logger.Debug("discarding cached layout", "error", err)
		return graph.LayoutDocument{}, false
	}
	r.Logger.Debug("layout cache hit", "root", doc.Root)
	return doc, true
}

func (r *Runner) storeLayout(ctx context.Context, key string, doc graph.LayoutDocument) {
	if r.Cache == nil {
		return
	}
	data, err := graph.MarshalLayout(doc)
	if err != nil {
		r.Logger.Warn("layout cache encode failed", "error", err)
		return
	}
	ttl := r.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("layout cache write failed", "error", err)
	}
}
