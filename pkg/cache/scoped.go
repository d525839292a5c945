package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// Server deployments rendering sheets for several hosts use one prefix
// per host so their artifacts never collide.
//
// Example usage:
//
//	hostKeyer := NewScopedKeyer(NewDefaultKeyer(), "host:club-42:")
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

// TreeKey generates a prefixed key for display tree caching.
func (k *ScopedKeyer) TreeKey(payloadHash string) string {
	return k.prefix + k.inner.TreeKey(payloadHash)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(payloadHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(payloadHash, opts)
}
