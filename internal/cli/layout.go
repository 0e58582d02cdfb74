package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Andre-Pham/FamApp-sub000/pkg/graph"
	"github.com/Andre-Pham/FamApp-sub000/pkg/pipeline"
)

// layoutCommand creates the layout command for computing family layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags     layoutFlags
		output    string
		showTable bool
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "layout [family.yaml]",
		Short: "Compute a 2D layout for a family file",
		Long: `Compute a 2D layout for a family file.

The layout command reads a family file (JSON, YAML or TOML), places every
person reachable from the root and writes the positions as a layout.json file.
That file can be drawn with 'render' or inspected with --table.

People are placed breadth-first from the root, one generation per row,
partners side by side and children centred beneath their parents.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFamilyFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], flags.options(), output, showTable, noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json, - for stdout)")
	cmd.Flags().BoolVar(&showTable, "table", false, "print a table of positions")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runLayout loads the family, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, showTable, noCache bool) error {
	toStdout := output == "-"
	var spinner *Spinner
	if !toStdout {
		spinner = newSpinnerWithContext(ctx, "Loading "+input+"...")
		spinner.Start()
	}

	f, err := loadFamily(input)
	if err != nil {
		if spinner != nil {
			spinner.Stop()
		}
		return fmt.Errorf("load family %s: %w", input, err)
	}
	if spinner != nil {
		spinner.SetMessage("Computing layout...")
	}

	opts.Formats = []string{pipeline.FormatJSON}
	opts.Logger = c.Logger

	prog := newProgress(loggerFromContext(ctx))
	res, err := c.newRunner(noCache).Execute(ctx, f, opts)
	if err != nil {
		if spinner != nil {
			spinner.StopWithError("Layout failed")
		}
		return fmt.Errorf("compute layout: %w", err)
	}
	if spinner != nil {
		spinner.Stop()
	}
	prog.done("laid out family", "root", res.Root, "people", res.Stats.Positioned, "cached", res.CacheHit)

	if ctx.Err() != nil {
		return ctx.Err()
	}

	data := res.Artifacts[pipeline.FormatJSON]
	if toStdout {
		_, err := os.Stdout.Write(data)
		return err
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath(input) + outputExt(pipeline.FormatJSON)
	}
	if err := graph.WriteLayoutFile(res.Document, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printKeyValue("Root", res.Root)
	printStats(res.Stats)
	if res.CacheHit {
		printInfo("Layout served from cache")
	}
	if res.Stats.Positioned < res.Stats.People {
		printWarning("%d people not placed (step limit %d)", res.Stats.People-res.Stats.Positioned, opts.StepLimit)
	}
	if showTable {
		printNewline()
		printPositions(os.Stdout, res.Document.People)
	}
	printNewline()
	printNextStep("Render", appName+" render "+input)

	return nil
}
