package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation, so that
// several projects can share one Redis instance without seeing each other's
// entries.
//
//	projectKeyer := NewScopedKeyer(NewDefaultKeyer(), "project:office-a:")
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

// PlacementKey generates a prefixed key for placement caching.
func (k *ScopedKeyer) PlacementKey(sceneHash string, opts PlacementKeyOpts) string {
	return k.prefix + k.inner.PlacementKey(sceneHash, opts)
}
