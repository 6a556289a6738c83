// Package workflow provides the directed graph model for automation
// workflows: triggers, agents, data transforms, conditions, and actions
// connected by execution-flow edges.
//
// # Overview
//
// Workflow graphs are produced by a visual editor as transient, in-memory
// snapshots and handed to the optimizer (see
// [github.com/flowtune/flowtune/pkg/workflow/optimize]). This package owns
// the data structures both sides agree on - [Graph], [Node], [Edge], and the
// healthcare [Compliance] payload - plus structural validation and the
// canonical configuration fingerprinting the optimizer deduplicates with.
//
// # Basic Usage
//
// Create a graph with [New], add nodes with [Graph.AddNode], and edges with
// [Graph.AddEdge]. Nodes must have unique IDs, and edges can only connect
// existing nodes:
//
//	g := workflow.New()
//	g.AddNode(workflow.Node{ID: "fetch", Type: workflow.TypeScheduleTrigger})
//	g.AddNode(workflow.Node{ID: "publish", Type: workflow.TypeAction})
//	g.AddEdge(workflow.Edge{Source: "fetch", Target: "publish"})
//
// Query structure with [Graph.Successors], [Graph.Predecessors],
// [Graph.Sources], and related methods. Use [Graph.Validate] to check
// structural integrity (dangling edges, self-loops) and [Graph.Acyclic] for
// cycle detection - cycles are tolerated, not rejected, because the
// optimizer degrades gracefully on cyclic input.
//
// # Determinism
//
// Nodes iterate in insertion order. This matters: the optimizer designates
// the first-encountered node of a duplicate group as primary, so iteration
// order is part of the optimizer's observable contract.
//
// # Concurrency
//
// Graph is not safe for concurrent mutation. Concurrent reads are safe, and
// independent graphs can be processed in parallel freely.
package workflow
