// Package pipeline provides the load → layout → render pipeline for famlayout.
//
// The CLI and the HTTP server both run families through this package, so
// defaults, validation and instrumentation are identical for every entry
// point.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Build a family graph from a [graph.FamilyFile] and pick the root
//  2. Layout: Run the layout engine from that root
//  3. Render: Produce artifacts in the requested formats (JSON, SVG, DOT)
//
// Each stage can be run on its own or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, family, pipeline.Options{
//	    Root:    "lisa",
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Andre-Pham/FamApp-sub000/pkg/errors"
	"github.com/Andre-Pham/FamApp-sub000/pkg/family"
	"github.com/Andre-Pham/FamApp-sub000/pkg/graph"
	"github.com/Andre-Pham/FamApp-sub000/pkg/layout"
	"github.com/Andre-Pham/FamApp-sub000/pkg/observability"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultStepLimit places everyone.
	DefaultStepLimit = 0

	// DefaultPadding is the engine's placement spacing.
	DefaultPadding = layout.DefaultPadding

	// DefaultCouplePadding is the partner spacing after tightening.
	DefaultCouplePadding = layout.DefaultCouplePadding
)

// Format constants for output formats.
const (
	FormatJSON     = "json"     // layout document
	FormatSVG      = "svg"      // native SVG
	FormatDOT      = "dot"      // Graphviz source with pinned positions
	FormatGraphviz = "graphviz" // SVG rendered by Graphviz from the DOT source
)

// Formats lists every output format in a stable order.
var Formats = []string{FormatJSON, FormatSVG, FormatDOT, FormatGraphviz}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Root string `json:"root,omitempty"` // overrides the family file's root

	// Layout options
	StepLimit     int     `json:"step_limit,omitempty"` // 0 places everyone
	Padding       float64 `json:"padding,omitempty"`
	CouplePadding float64 `json:"couple_padding,omitempty"`

	// Render options
	Formats            []string `json:"formats,omitempty"`
	HighlightConflicts bool     `json:"highlight_conflicts,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the loaded family graph.
	Graph *family.Graph

	// Root is the id the layout started from.
	Root string

	// Layout is the engine result. It is nil when the document came from
	// the cache.
	Layout *layout.Result

	// CacheHit reports whether the layout was served from the cache.
	CacheHit bool

	// Document is the serializable form of Layout.
	Document graph.LayoutDocument

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	People              int
	Positioned          int
	Couples             int
	Children            int
	PositionConflicts   int
	ConnectionConflicts int
	LoadTime            time.Duration
	LayoutTime          time.Duration
	RenderTime          time.Duration
}

func (s Stats) hookStats() observability.LayoutStats {
	return observability.LayoutStats{
		People:              s.People,
		Positioned:          s.Positioned,
		Couples:             s.Couples,
		Children:            s.Children,
		PositionConflicts:   s.PositionConflicts,
		ConnectionConflicts: s.ConnectionConflicts,
	}
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, Formats...)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout validates the root and layout fields and sets their
// defaults.
func (o *Options) ValidateForLayout() error {
	if o.Root != "" {
		if err := errors.ValidateID(o.Root); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRoot, err, "invalid root %q", o.Root)
		}
	}
	if err := errors.ValidateStepLimit(o.StepLimit); err != nil {
		return err
	}
	if o.Padding < 0 || o.CouplePadding < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "padding cannot be negative")
	}
	if o.Padding > 0 && o.CouplePadding > o.Padding {
		return errors.New(errors.ErrCodeInvalidInput,
			"couple padding %g exceeds padding %g", o.CouplePadding, o.Padding)
	}
	o.SetLayoutDefaults()
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Padding == 0 {
		o.Padding = DefaultPadding
	}
	if o.CouplePadding == 0 {
		o.CouplePadding = min(DefaultCouplePadding, o.Padding)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates formats and sets render defaults.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutOptions translates the options for the layout engine.
func (o *Options) LayoutOptions() []layout.Option {
	opts := []layout.Option{
		layout.WithPadding(o.Padding, o.CouplePadding),
		layout.WithLogger(o.Logger),
	}
	if o.StepLimit > 0 {
		opts = append(opts, layout.WithStepLimit(o.StepLimit))
	}
	return opts
}

// Wants reports whether format was requested.
func (o *Options) Wants(format string) bool {
	for _, f := range o.Formats {
		if f == format {
			return true
		}
	}
	return false
}
