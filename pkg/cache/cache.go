// Package cache provides pluggable caching for optimization results and
// rendered artifacts.
//
// The [Cache] interface abstracts the storage backend: a file-based cache
// for local CLI usage, a Redis cache for shared deployments, and a null
// cache for disabling caching entirely. The [Keyer] interface centralizes
// key construction so every backend sees the same key layout.
package cache

import (
	"context"
	"time"
)

// Default TTLs per cached stage. Results are invalidated by content hash,
// so the TTLs mostly bound disk and Redis growth.
const (
	// TTLResult is the default lifetime of a cached optimization result.
	TTLResult = 24 * time.Hour

	// TTLArtifact is the default lifetime of a cached rendered artifact.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage backend interface.
// All implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. A non-positive TTL stores
	// the value without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for the cacheable stages of the pipeline.
type Keyer interface {
	// ResultKey generates a key for a full optimization result, addressed
	// by the content hash of the input graph.
	ResultKey(graphHash string) string

	// ArtifactKey generates a key for a rendered artifact (dot, svg, png)
	// of an optimized graph.
	ArtifactKey(graphHash, format string) string
}

// DefaultKeyer is the standard key generation strategy.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ResultKey generates a key for an optimization result.
func (k *DefaultKeyer) ResultKey(graphHash string) string {
	return hashKey("result", graphHash)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(graphHash, format string) string {
	return hashKey("artifact", graphHash, format)
}
