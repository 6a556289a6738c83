// Package dot renders workflow graphs as Graphviz node-link diagrams.
//
// [ToDOT] converts a graph to DOT source; [RenderSVG] and [RenderPNG] run
// Graphviz on the DOT source to produce image bytes. Compliance levels are
// reflected in node fill colors and synthesized validation steps are drawn
// with dashed outlines, so a hardened workflow is visually distinguishable
// from its input.
package dot
