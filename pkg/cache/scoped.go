package cache

// ScopedKeyer wraps a Keyer with a prefix so different front-ends can share
// one backend without key collisions. The HTTP server scopes its keys apart
// from CLI runs, and a multi-tenant deployment can scope per tenant.
//
// Example usage:
//
//	// Server-side keys, separate from CLI artifacts
//	apiKeyer := NewScopedKeyer(NewDefaultKeyer(), "api:")
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

// AssetKey generates a prefixed key for a transformed asset.
func (k *ScopedKeyer) AssetKey(contentHash string, opts AssetKeyOpts) string {
	return k.prefix + k.inner.AssetKey(contentHash, opts)
}

// ArtifactKey generates a prefixed key for a final artifact.
func (k *ScopedKeyer) ArtifactKey(inputsHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(inputsHash, opts)
}
