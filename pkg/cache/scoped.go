package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Useful when several projects or tenants share one cache backend and
// need separate key spaces.
//
// Example usage:
//
//	// Project-specific keys on a shared Redis instance
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "cms:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ResultKey generates a prefixed key for an optimization result.
func (k *ScopedKeyer) ResultKey(graphHash string) string {
	return k.prefix + k.inner.ResultKey(graphHash)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(graphHash, format string) string {
	return k.prefix + k.inner.ArtifactKey(graphHash, format)
}
