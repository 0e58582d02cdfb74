package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Andre-Pham/FamApp-sub000/pkg/pipeline"
)

// renderCommand creates the render command for drawing family layouts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags      layoutFlags
		output     string
		formatsStr string
		highlight  bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "render [family.yaml]",
		Short: "Draw a family layout as SVG, DOT or Graphviz SVG",
		Long: `Draw a family layout as SVG, DOT or Graphviz SVG.

The render command runs the full pipeline: load the family, compute the
layout and write one file per requested format next to the input (or under
the base path given with -o).

Formats:
  svg       native SVG drawing (default)
  dot       Graphviz source with pinned positions
  graphviz  SVG rendered by Graphviz from the DOT source
  json      layout document`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFamilyFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options()
			opts.Formats = parseFormats(formatsStr)
			opts.HighlightConflicts = highlight
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: <input> without extension)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, graphviz, json (comma-separated)")
	cmd.Flags().BoolVar(&highlight, "highlight", false, "mark people on crossing connectors")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	f, err := loadFamily(input)
	if err != nil {
		return fmt.Errorf("load family %s: %w", input, err)
	}
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	res, err := c.newRunner(noCache).Execute(ctx, f, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(res.Artifacts, opts.Formats, renderBase(input, output))
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", res.Root)
	for _, p := range paths {
		printFile(p)
	}
	printStats(res.Stats)
	if res.Stats.ConnectionConflicts > 0 && !opts.HighlightConflicts {
		printNewline()
		printNextStep("Highlight crossings", appName+" render --highlight "+input)
	}
	return nil
}

// renderBase is the path every artifact suffix is appended to.
func renderBase(input, output string) string {
	if output == "" {
		return basePath(input)
	}
	// Accept a full file name for single outputs.
	return basePath(output)
}

// writeArtifacts writes each format in order and returns the written paths.
func writeArtifacts(artifacts map[string][]byte, formats []string, base string) ([]string, error) {
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + outputExt(format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
