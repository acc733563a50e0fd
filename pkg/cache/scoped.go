package cache

// ScopedKeyer wraps a Keyer with a prefix so several tenants can share one
// backend without colliding.
//
// Example usage:
//
//	// Keys for one HTTP server instance group
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "treeview:")
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

// ForestKey generates a prefixed key for parsed forests.
func (k *ScopedKeyer) ForestKey(source, format string, ignore []string) string {
	return k.prefix + k.inner.ForestKey(source, format, ignore)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(forestHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(forestHash, opts)
}
