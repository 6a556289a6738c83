package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowtune/flowtune/pkg/graphio"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [workflow.json]",
		Short: "Check a workflow file for structural problems",
		Long: `Check a workflow file for structural problems.

Validation covers the JSON structure, duplicate or invalid node IDs,
edges referencing unknown nodes, and self-loops. Cycles are reported as
a warning: the optimizer accepts cyclic workflows but skips execution
reordering for them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(args[0])
		},
	}
}

func (c *CLI) runValidate(input string) error {
	wire, err := graphio.ImportJSON(input)
	if err != nil {
		printError("Invalid workflow file")
		return err
	}

	g, err := graphio.ToWorkflow(wire)
	if err != nil {
		printError("Invalid workflow structure")
		return err
	}

	if err := g.Validate(); err != nil {
		printError("Workflow failed validation")
		return err
	}

	printSuccess("Workflow is valid")
	printStats(g.NodeCount(), g.EdgeCount(), false)

	if !g.Acyclic() {
		printWarning("Workflow contains a cycle; execution reordering will be skipped")
	}

	sources := g.Sources()
	if len(sources) == 0 && g.NodeCount() > 0 {
		printWarning("Workflow has no entry point (every step has a predecessor)")
	} else {
		for _, n := range sources {
			printDetail("entry: %s (%s)", n.ID, n.Type)
		}
	}
	for _, n := range g.Sinks() {
		printDetail("exit: %s (%s)", n.ID, n.Type)
	}

	var complianceSteps int
	for _, n := range g.Nodes() {
		if n.Data.Compliance != nil {
			complianceSteps++
		}
	}
	if complianceSteps > 0 {
		printDetail("%d step(s) carry compliance metadata", complianceSteps)
	}

	printNewline()
	printNextStep("Optimize", fmt.Sprintf("%s optimize %s", appName, input))
	return nil
}
