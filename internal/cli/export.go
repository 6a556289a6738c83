package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowtune/flowtune/pkg/graphio"
	"github.com/flowtune/flowtune/pkg/pipeline"
	"github.com/flowtune/flowtune/pkg/render/dot"
)

// exportCommand creates the export command for rendering workflow diagrams.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		detailed   bool
		raw        bool
	)

	cmd := &cobra.Command{
		Use:   "export [workflow.json]",
		Short: "Render a workflow as a diagram",
		Long: `Render a workflow as a node-link diagram.

By default the workflow is optimized first and the optimized graph is
rendered, reusing the optimization cache. Use --raw to render the
workflow exactly as the editor exported it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr, pipeline.FormatSVG)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runExport(cmd.Context(), args[0], formats, output, noCache, detailed, raw)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "verbose node labels")
	cmd.Flags().BoolVar(&raw, "raw", false, "render the workflow without optimizing it")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, input string, formats []string, output string, noCache, detailed, raw bool) error {
	if raw {
		return c.exportRaw(ctx, input, formats, output, detailed)
	}

	opts := pipeline.Options{
		Formats:  formats,
		Detailed: detailed,
		Logger:   c.Logger,
	}
	return c.runOptimize(ctx, input, opts, output, noCache, false)
}

// exportRaw renders the workflow as-is, bypassing the optimizer and cache.
func (c *CLI) exportRaw(ctx context.Context, input string, formats []string, output string, detailed bool) error {
	wire, err := graphio.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load workflow %s: %w", input, err)
	}
	g, err := graphio.ToWorkflow(wire)
	if err != nil {
		return fmt.Errorf("load workflow %s: %w", input, err)
	}

	spinner := newSpinnerWithContext(ctx, "Rendering workflow...")
	spinner.Start()
	track := newProgress(c.Logger)

	dotSrc := dot.ToDOT(g, dot.Options{Detailed: detailed})
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		var data []byte
		var err error
		switch format {
		case pipeline.FormatDOT:
			data = []byte(dotSrc)
		case pipeline.FormatSVG:
			data, err = dot.RenderSVG(dotSrc)
		case pipeline.FormatPNG:
			data, err = dot.RenderPNG(dotSrc)
		case pipeline.FormatJSON:
			err = fmt.Errorf("json output requires optimization; drop --raw")
		}
		if err != nil {
			spinner.StopWithError("Export failed")
			return fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	spinner.Stop()
	track.done(fmt.Sprintf("Rendered %d format(s)", len(formats)))

	printSuccess("Exported workflow")
	if err := writeArtifacts(artifacts, formats, input, output, ""); err != nil {
		return err
	}
	printStats(g.NodeCount(), g.EdgeCount(), false)
	return nil
}
