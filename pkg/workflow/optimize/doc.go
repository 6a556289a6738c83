// Package optimize rewrites workflow graphs into a cheaper, compliance-safe
// equivalent form.
//
// # Overview
//
// Workflow graphs arrive from the visual editor in whatever shape the author
// dragged together: duplicated steps, arbitrary layout, serial chains of
// data transforms, and critical steps missing their regulatory guardrails.
// This package applies a fixed sequence of five passes that clean that up.
// The [Engine.Optimize] entry point runs them in order, each pass consuming
// the previous pass's output:
//
//  1. Redundancy removal - merges nodes with identical type and
//     configuration into the first-encountered node and rewires edges
//     through it.
//  2. Execution-order optimization - computes a topological order (Kahn's
//     algorithm) and rewrites layout positions to match. Cyclic graphs pass
//     through unchanged.
//  3. Parallel-execution detection - tags single-hop groups of steps that
//     can run concurrently. This is a hint-generation heuristic, not a
//     correctness-critical scheduler.
//  4. Data-flow merging - collapses chains of more than two consecutive
//     data-transformation steps into a single step carrying the merged
//     configuration.
//  5. Compliance hardening - forces audit trails on critical steps and
//     appends synthesized validation steps after standard/critical ones.
//
// Every transformation is reported as a [Record] so the editor can show the
// user what changed and why.
//
// # Purity
//
// The engine never mutates the caller's graph: it clones the input and
// returns the transformed clone in [Result]. The clone copies node structs,
// Config maps, and Compliance payloads; values nested inside Config entries
// are shared, so callers must not mutate those concurrently with a running
// call. Identical input always produces identical output.
//
// # Failure Semantics
//
// The passes do not fail on well-formed graphs, including cyclic ones. The
// only error source is configuration fingerprinting: a Config value that
// cannot be serialized aborts the run and the error propagates to the
// caller. Dangling edge references in the input are tolerated but may
// survive into the output - validating input with
// [github.com/flowtune/flowtune/pkg/workflow.Graph.Validate] is the
// caller's responsibility.
package optimize
