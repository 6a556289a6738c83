// Package pipeline provides the core optimization pipeline for Flowtune.
//
// This package implements the complete optimize → render pipeline shared by
// the CLI commands. By centralizing this logic, we ensure consistent
// caching and output behavior across all entry points.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Optimize: Run the five-pass workflow optimizer against the input graph
//  2. Render: Generate output artifacts in various formats (JSON, DOT, SVG, PNG)
//
// Both stages are cached by the content hash of the input graph, so
// re-optimizing an unchanged workflow is a cache lookup.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Formats: []string{"json", "svg"},
//	}
//	result, err := runner.Execute(ctx, wire, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/flowtune/flowtune/pkg/errors"
	"github.com/flowtune/flowtune/pkg/workflow"
	"github.com/flowtune/flowtune/pkg/workflow/optimize"
)

// =============================================================================
// Default Values - Single Source of Truth for the CLI
// =============================================================================

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the optimization pipeline.
// This struct supports JSON serialization for automation payloads.
type Options struct {
	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // Verbose node labels in DOT-based formats

	// Cache options
	Refresh bool `json:"refresh,omitempty"` // Bypass the cache and recompute

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks option values and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, dot, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Result - Pipeline Outputs
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this pipeline execution.
	RunID string

	// Graph is the optimized workflow graph.
	Graph *workflow.Graph

	// GraphHash is the content hash of the input graph.
	GraphHash string

	// Records lists the transformations the optimizer applied.
	Records []optimize.Record

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int // Node count of the optimized graph
	EdgeCount    int // Edge count of the optimized graph
	OptimizeTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	OptimizeHit bool // Whether the optimization result came from cache
	RenderHit   bool // Whether all artifacts came from cache
}
