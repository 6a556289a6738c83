// Package pkg provides the core libraries for Flowtune workflow optimization.
//
// # Overview
//
// Flowtune analyzes clinical workflow graphs and rewrites them into leaner,
// compliance-hardened equivalents. The pkg directory is organized into these
// main areas:
//
//  1. [workflow] - Domain model (graph structure, node and edge types)
//  2. [workflow/optimize] - The optimization passes and their records
//  3. [graphio] - Serialization types and JSON import/export
//  4. [render/dot] - Graphviz rendering (DOT, SVG, PNG)
//  5. [pipeline] - Orchestration (import → optimize → render) with caching
//  6. [cache] - Cache backends (file, redis, null)
//  7. [observability] - Optional hooks for optimizer and cache events
//
// # Architecture
//
// The typical data flow through Flowtune:
//
//	Workflow JSON
//	         ↓
//	    [graphio] package (decode + validate)
//	         ↓
//	    [workflow/optimize] package (dedupe → reorder → group → merge → harden)
//	         ↓
//	    [render/dot] package (DOT + Graphviz)
//	         ↓
//	    JSON/DOT/SVG/PNG output
//
// # Quick Start
//
// Optimize a workflow and render it:
//
//	import (
//	    "context"
//	    "github.com/flowtune/flowtune/pkg/graphio"
//	    "github.com/flowtune/flowtune/pkg/pipeline"
//	)
//
//	// 1. Import the workflow
//	g, _ := graphio.ImportJSON("intake.json")
//
//	// 2. Run the pipeline
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(context.Background(), g, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG},
//	})
//
//	// 3. Inspect the applied optimizations
//	for _, rec := range result.Records {
//	    fmt.Println(rec.Category, rec.Description)
//	}
//
// # Main Packages
//
// ## Domain Model
//
// [workflow] - In-memory directed graph of workflow steps. Nodes carry a
// type (action, dataTransform, dataValidate, ...), a canvas position, and
// step metadata including compliance level. Validation rejects dangling
// edges and duplicate node IDs.
//
// [workflow/optimize] - The five optimization passes: redundancy removal,
// topological reordering, parallel-group detection, data-transform chain
// merging, and compliance hardening. Each applied change is reported as an
// [optimize.Record].
//
// ## Serialization
//
// [graphio] - Wire types with JSON tags, import/export helpers, and
// content hashing used as the cache key.
//
// ## Rendering
//
// [render/dot] - DOT generation and Graphviz-backed SVG/PNG rendering.
// Compliance-critical steps and validators receive distinct styling.
//
// ## Infrastructure
//
// [pipeline] - Complete optimization pipeline used by all CLI commands.
// Results and rendered artifacts are cached by graph content hash.
//
// [cache] - Cache interface with file, redis, and null backends, TTL
// handling, and retry helpers for transient errors.
//
// [observability] - Process-wide hook registry for optimizer and cache
// events. All hooks default to no-ops.
//
// [errors] - Sentinel errors and validation error types shared across
// packages.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                     # All tests
//	go test ./pkg/workflow/optimize/...   # Specific package
//
// [workflow]: https://pkg.go.dev/github.com/flowtune/flowtune/pkg/workflow
// [workflow/optimize]: https://pkg.go.dev/github.com/flowtune/flowtune/pkg/workflow/optimize
// [graphio]: https://pkg.go.dev/github.com/flowtune/flowtune/pkg/graphio
// [render/dot]: https://pkg.go.dev/github.com/flowtune/flowtune/pkg/render/dot
// [pipeline]: https://pkg.go.dev/github.com/flowtune/flowtune/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/flowtune/flowtune/pkg/cache
// [observability]: https://pkg.go.dev/github.com/flowtune/flowtune/pkg/observability
// [errors]: https://pkg.go.dev/github.com/flowtune/flowtune/pkg/errors
// [optimize.Record]: https://pkg.go.dev/github.com/flowtune/flowtune/pkg/workflow/optimize#Record
package pkg
