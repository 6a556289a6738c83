package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowtune/flowtune/pkg/graphio"
	"github.com/flowtune/flowtune/pkg/pipeline"
)

// optimizeCommand creates the optimize command.
func (c *CLI) optimizeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		refresh    bool
		detailed   bool
		report     bool
	)

	cmd := &cobra.Command{
		Use:   "optimize [workflow.json]",
		Short: "Optimize a workflow graph",
		Long: `Optimize a workflow graph exported from the visual editor.

The optimizer runs five passes in a fixed order: redundancy removal,
topological execution ordering, parallel-branch detection, data-
transformation chain merging, and healthcare-compliance hardening. The
optimized graph and a record of every applied transformation are written
to the requested output formats.

Results are cached locally by the content hash of the input workflow, so
re-optimizing an unchanged file is a cache lookup. Use --refresh to force
recomputation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Formats:  parseFormats(formatsStr, pipeline.FormatJSON),
				Detailed: detailed,
				Refresh:  refresh,
				Logger:   c.Logger,
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runOptimize(cmd.Context(), args[0], opts, output, noCache, report)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), dot, svg, png (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache and recompute")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "verbose node labels in diagram formats")
	cmd.Flags().BoolVar(&report, "report", false, "print a table of applied optimizations")

	return cmd
}

// runOptimize loads the workflow, runs the pipeline, and writes output.
func (c *CLI) runOptimize(ctx context.Context, input string, opts pipeline.Options, output string, noCache, report bool) error {
	wire, err := graphio.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load workflow %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Optimizing workflow...")
	spinner.Start()

	result, err := runner.Execute(ctx, wire, opts)
	if err != nil {
		spinner.StopWithError("Optimization failed")
		return fmt.Errorf("optimize: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Applied %d optimization(s)", len(result.Records))
	if err := writeArtifacts(result.Artifacts, opts.Formats, input, output, ".optimized"); err != nil {
		return err
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.OptimizeHit)

	if report && len(result.Records) > 0 {
		printNewline()
		fmt.Println(recordTable(result.Records))
	}

	printNewline()
	printNextStep("Inspect", appName+" inspect "+input)
	return nil
}
