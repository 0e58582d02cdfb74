// Package cli implements the famlayout command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Andre-Pham/FamApp-sub000/pkg/buildinfo"
	"github.com/Andre-Pham/FamApp-sub000/pkg/cache"
	"github.com/Andre-Pham/FamApp-sub000/pkg/graph"
	"github.com/Andre-Pham/FamApp-sub000/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "famlayout"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "famlayout lays out family trees on a 2D grid",
		Long: `famlayout computes deterministic 2D layouts for family graphs: parents above
children, partners side by side, and as few crossing parent-child connectors
as possible. Layouts can be written as JSON, drawn as SVG or Graphviz, stepped
through interactively, or served over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.stepCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())
	root.AddCommand(c.versionCommand())

	return root
}

// =============================================================================
// Shared Flags
// =============================================================================

// layoutFlags are the engine settings every layout-producing command takes.
type layoutFlags struct {
	root          string
	stepLimit     int
	padding       float64
	couplePadding float64
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.root, "root", "r", "", "id of the person to lay out from (default: file root, then most ancestors)")
	cmd.Flags().IntVarP(&f.stepLimit, "step-limit", "n", pipeline.DefaultStepLimit, "stop after placing this many people (0 places everyone)")
	cmd.Flags().Float64Var(&f.padding, "padding", pipeline.DefaultPadding, "spacing between generations and siblings")
	cmd.Flags().Float64Var(&f.couplePadding, "couple-padding", pipeline.DefaultCouplePadding, "spacing between partners")
}

func (f *layoutFlags) options() pipeline.Options {
	return pipeline.Options{
		Root:          f.root,
		StepLimit:     f.stepLimit,
		Padding:       f.padding,
		CouplePadding: f.couplePadding,
	}
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Layouts are cached on disk
// unless noCache is set or the cache directory cannot be created.
func (c *CLI) newRunner(noCache bool) *pipeline.Runner {
	if noCache {
		return pipeline.NewRunner(c.Logger)
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("layout cache disabled", "error", err)
		return pipeline.NewRunner(c.Logger)
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Debug("layout cache disabled", "error", err)
		return pipeline.NewRunner(c.Logger)
	}
	return pipeline.NewCachedRunner(c.Logger, fc)
}

// loadFamily reads a family file in any supported format.
func loadFamily(path string) (graph.FamilyFile, error) {
	return graph.ReadFamilyFile(path)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/famlayout/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// dataDir returns the data directory using XDG standard (~/.local/share/famlayout/).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

// basePath strips the family file extension from input.
func basePath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// outputExt is the file suffix written for each format.
func outputExt(format string) string {
	switch format {
	case pipeline.FormatJSON:
		return ".layout.json"
	case pipeline.FormatDOT:
		return ".dot"
	case pipeline.FormatGraphviz:
		return ".graphviz.svg"
	default:
		return "." + format
	}
}
