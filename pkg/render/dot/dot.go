package dot

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/flowtune/flowtune/pkg/workflow"
	"github.com/flowtune/flowtune/pkg/workflow/optimize"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes type, position, and configuration keys in node
	// labels. When false, only the label (or ID) is shown.
	Detailed bool
}

// ToDOT converts a workflow graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
//
// Compliance-bearing nodes are filled by level (standard: light yellow,
// critical: light pink) and validation steps are rendered with dashed
// outlines to distinguish synthesized compliance checks from regular steps.
// Nodes tagged with a parallel group are wrapped in a cluster subgraph.
func ToDOT(g *workflow.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	clusters := make(map[int][]*workflow.Node)
	var clusterOrder []int
	for _, n := range g.Nodes() {
		group, ok := parallelGroup(n)
		if !ok {
			label := fmtLabel(n, opts.Detailed)
			attrs := fmtAttrs(n, label)
			fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
			continue
		}
		if _, seen := clusters[group]; !seen {
			clusterOrder = append(clusterOrder, group)
		}
		clusters[group] = append(clusters[group], n)
	}

	for _, group := range clusterOrder {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", group)
		fmt.Fprintf(&buf, "    label=\"parallel group %d\";\n", group)
		buf.WriteString("    style=dotted;\n")
		for _, n := range clusters[group] {
			label := fmtLabel(n, opts.Detailed)
			attrs := fmtAttrs(n, label)
			fmt.Fprintf(&buf, "    %q [%s];\n", n.ID, strings.Join(attrs, ", "))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		attrs := fmtEdgeAttrs(e)
		if len(attrs) > 0 {
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// parallelGroup extracts the parallel-group tag written by the optimizer.
// The value arrives as an int from the engine or as a float64 after a JSON
// round trip through the cache.
func parallelGroup(n *workflow.Node) (int, bool) {
	v, ok := n.Data.Config[optimize.ConfigKeyParallelGroup]
	if !ok {
		return 0, false
	}
	switch g := v.(type) {
	case int:
		return g, true
	case float64:
		return int(g), true
	}
	return 0, false
}

func fmtLabel(n *workflow.Node, detailed bool) string {
	label := n.Data.Label
	if label == "" {
		label = n.ID
	}
	if !detailed {
		return label
	}

	parts := []string{fmt.Sprintf("type: %s", n.Type),
		fmt.Sprintf("pos: (%.0f, %.0f)", n.Position.X, n.Position.Y)}
	if c := n.Data.Compliance; c != nil {
		parts = append(parts, fmt.Sprintf("compliance: %s", c.Level))
	}
	for _, k := range slices.Sorted(maps.Keys(n.Data.Config)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Data.Config[k]))
	}

	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *workflow.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Type == workflow.TypeDataValidate {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	if c := n.Data.Compliance; c != nil {
		switch c.Level {
		case workflow.LevelCritical:
			attrs = append(attrs, "fillcolor=lightpink")
		case workflow.LevelStandard:
			attrs = append(attrs, "fillcolor=lightyellow")
		}
	}
	return attrs
}

func fmtEdgeAttrs(e workflow.Edge) []string {
	var attrs []string
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
	}
	if e.Animated {
		attrs = append(attrs, "style=dashed")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG, normalizeViewBox)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG, nil)
}

func render(dot string, format graphviz.Format, post func([]byte) []byte) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	out := buf.Bytes()
	if post != nil {
		out = post(out)
	}
	return out, nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the svg tag so the viewBox starts at the origin
// and explicit pixel dimensions are present. Browsers and converters handle
// this form more consistently than Graphviz's point-based output.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
