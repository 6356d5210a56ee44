// Package cache provides caching for merge pipeline results.
//
// Two payload classes are cached: transformed per-asset rasters (decoded,
// resized, filtered, re-encoded as PNG) and final encoded artifacts. Both are
// addressed through a Keyer so that every option that changes pixels also
// changes the key.
//
// Backends:
//   - FileCache: hash-sharded files on disk, for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: caching disabled
//
// All backends implement the Cache interface and are safe for concurrent use.
package cache

import (
	"context"
	"time"
)

// TTLs for the cached payload classes.
const (
	// TTLAsset is how long transformed per-asset rasters stay cached.
	// Source files change rarely; a week keeps repeat merges cheap without
	// letting stale transforms pile up forever.
	TTLAsset = 7 * 24 * time.Hour

	// TTLArtifact is how long final encoded artifacts stay cached.
	TTLArtifact = 30 * 24 * time.Hour
)

// Cache is the interface implemented by all cache backends.
type Cache interface {
	// Get retrieves a value from the cache.
	// The bool reports whether the key was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of zero means the entry
	// never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value from the cache.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the backend.
	Close() error
}

// AssetKeyOpts are the options that affect a transformed asset's pixels.
type AssetKeyOpts struct {
	Resize string `json:"resize"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Filter string `json:"filter"`
}

// ArtifactKeyOpts are the options that affect the final encoded artifact.
type ArtifactKeyOpts struct {
	Layout     string `json:"layout"`
	Columns    int    `json:"columns"`
	Spacing    int    `json:"spacing"`
	Resize     string `json:"resize"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Filter     string `json:"filter"`
	Watermark  string `json:"watermark"`
	Background string `json:"background"`
	Format     string `json:"format"`
}

// Keyer generates cache keys for the pipeline's payload classes.
// Implementations must be deterministic: identical inputs yield identical keys.
type Keyer interface {
	// AssetKey generates a key for a transformed asset, from the content
	// hash of the source file and the transform options.
	AssetKey(contentHash string, opts AssetKeyOpts) string

	// ArtifactKey generates a key for a final artifact, from the combined
	// content hash of all inputs and the merge options.
	ArtifactKey(inputsHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// AssetKey generates a key for a transformed asset.
func (k *DefaultKeyer) AssetKey(contentHash string, opts AssetKeyOpts) string {
	return hashKey("asset", contentHash, opts)
}

// ArtifactKey generates a key for a final artifact.
func (k *DefaultKeyer) ArtifactKey(inputsHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputsHash, opts)
}
