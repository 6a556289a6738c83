// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about optimizer execution and cache
// operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetOptimizerHooks(&myOptimizerHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Optimizer().OnPassStart(ctx, pass, nodeCount)
//	// ... run pass ...
//	observability.Optimizer().OnPassComplete(ctx, pass, applied, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Optimizer Hooks
// =============================================================================

// OptimizerHooks receives events from the workflow optimization engine.
type OptimizerHooks interface {
	// Run events
	OnOptimizeStart(ctx context.Context, nodeCount, edgeCount int)
	OnOptimizeComplete(ctx context.Context, records int, duration time.Duration, err error)

	// Per-pass events
	OnPassStart(ctx context.Context, pass string, nodeCount int)
	OnPassComplete(ctx context.Context, pass string, applied int, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopOptimizerHooks is a no-op implementation of OptimizerHooks.
type NoopOptimizerHooks struct{}

func (NoopOptimizerHooks) OnOptimizeStart(context.Context, int, int)                       {}
func (NoopOptimizerHooks) OnOptimizeComplete(context.Context, int, time.Duration, error)   {}
func (NoopOptimizerHooks) OnPassStart(context.Context, string, int)                        {}
func (NoopOptimizerHooks) OnPassComplete(context.Context, string, int, time.Duration)      {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	optimizerHooks OptimizerHooks = NoopOptimizerHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	hooksMu        sync.RWMutex
)

// SetOptimizerHooks registers custom optimizer hooks.
// This should be called once at application startup before any optimizer runs.
func SetOptimizerHooks(h OptimizerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		optimizerHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Optimizer returns the registered optimizer hooks.
func Optimizer() OptimizerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return optimizerHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	optimizerHooks = NoopOptimizerHooks{}
	cacheHooks = NoopCacheHooks{}
}
