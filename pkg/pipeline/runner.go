package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/flowtune/flowtune/pkg/cache"
	"github.com/flowtune/flowtune/pkg/graphio"
	"github.com/flowtune/flowtune/pkg/observability"
	"github.com/flowtune/flowtune/pkg/render/dot"
	"github.com/flowtune/flowtune/pkg/workflow"
	"github.com/flowtune/flowtune/pkg/workflow/optimize"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedResult is the cache envelope for an optimization result.
type cachedResult struct {
	Graph   graphio.Graph     `json:"graph"`
	Records []optimize.Record `json:"records"`
}

// Execute runs the complete optimize → render pipeline with caching.
// The input is the wire form of a workflow graph as the editor exports it.
func (r *Runner) Execute(ctx context.Context, g graphio.Graph, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	hash, err := graphio.Hash(g)
	if err != nil {
		return nil, fmt.Errorf("hash graph: %w", err)
	}

	result := &Result{
		RunID:     uuid.NewString(),
		GraphHash: hash,
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Optimize
	optimizeStart := time.Now()
	optimized, records, optimizeHit, err := r.optimizeWithCache(ctx, g, hash, opts)
	if err != nil {
		return nil, fmt.Errorf("optimize: %w", err)
	}
	result.Graph = optimized
	result.Records = records
	result.Stats.OptimizeTime = time.Since(optimizeStart)
	result.Stats.NodeCount = optimized.NodeCount()
	result.Stats.EdgeCount = optimized.EdgeCount()
	result.CacheInfo.OptimizeHit = optimizeHit

	r.Logger.Info("optimized workflow",
		"nodes", optimized.NodeCount(),
		"edges", optimized.EdgeCount(),
		"optimizations", len(records),
		"cached", optimizeHit,
		"duration", result.Stats.OptimizeTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.renderWithCache(ctx, result, hash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// optimizeWithCache runs the optimizer with result caching keyed by the
// input graph's content hash.
func (r *Runner) optimizeWithCache(ctx context.Context, g graphio.Graph, hash string, opts Options) (*workflow.Graph, []optimize.Record, bool, error) {
	cacheKey := r.Keyer.ResultKey(hash)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var envelope cachedResult
			if err := json.Unmarshal(data, &envelope); err == nil {
				if cached, err := graphio.ToWorkflow(envelope.Graph); err == nil {
					observability.Cache().OnCacheHit(ctx, "result")
					return cached, envelope.Records, true, nil
				}
			}
			// Corrupt entry: recompute.
		}
	}
	observability.Cache().OnCacheMiss(ctx, "result")

	w, err := graphio.ToWorkflow(g)
	if err != nil {
		return nil, nil, false, err
	}

	res, err := optimize.NewEngine().Optimize(ctx, w)
	if err != nil {
		return nil, nil, false, err
	}

	if !opts.Refresh {
		envelope := cachedResult{
			Graph:   graphio.FromWorkflow(res.Graph),
			Records: res.Records,
		}
		if data, err := json.Marshal(envelope); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLResult); err == nil {
				observability.Cache().OnCacheSet(ctx, "result", len(data))
			}
		}
	}

	return res.Graph, res.Records, false, nil
}

// renderWithCache renders the requested formats with per-artifact caching.
// The JSON artifact carries the full result (graph plus records) and is
// never cached separately since it is cheap to produce.
func (r *Runner) renderWithCache(ctx context.Context, result *Result, hash string, opts Options) (map[string][]byte, bool, error) {
	artifacts := make(map[string][]byte)
	allCached := true
	cacheable := false

	var dotSrc string
	needDOT := func() string {
		if dotSrc == "" {
			dotSrc = dot.ToDOT(result.Graph, dot.Options{Detailed: opts.Detailed})
		}
		return dotSrc
	}

	for _, format := range opts.Formats {
		if format == FormatJSON {
			data, err := marshalResultJSON(result)
			if err != nil {
				return nil, false, err
			}
			artifacts[format] = data
			continue
		}

		cacheable = true
		cacheKey := r.Keyer.ArtifactKey(hash, format)
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		allCached = false

		var data []byte
		var err error
		switch format {
		case FormatDOT:
			data = []byte(needDOT())
		case FormatSVG:
			data, err = dot.RenderSVG(needDOT())
		case FormatPNG:
			data, err = dot.RenderPNG(needDOT())
		}
		if err != nil {
			return nil, false, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data

		if !opts.Refresh {
			if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
				observability.Cache().OnCacheSet(ctx, "artifact", len(data))
			}
		}
	}

	return artifacts, cacheable && allCached, nil
}

// resultJSON is the shape of the JSON artifact.
type resultJSON struct {
	Graph         graphio.Graph     `json:"graph"`
	Optimizations []optimize.Record `json:"optimizations"`
}

func marshalResultJSON(result *Result) ([]byte, error) {
	payload := resultJSON{
		Graph:         graphio.FromWorkflow(result.Graph),
		Optimizations: result.Records,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return append(data, '\n'), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
