// Package cache provides artifact caching for draw results.
//
// A draw is a pure function of (payload, render options), so rendered
// artifacts can be cached keyed by the payload hash plus the options
// that shaped the output. Backends:
//
//   - FileCache: filesystem cache for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: caching disabled
//   - ScopedKeyer: key-prefix isolation for multi-tenant servers
package cache

import (
	"context"
	"time"
)

// TTL constants for cached data.
const (
	// TTLArtifact is how long rendered artifacts stay cached. Artifacts
	// are cheap to rebuild, so the TTL is short.
	TTLArtifact = 24 * time.Hour

	// TTLTree is how long serialized display trees stay cached.
	TTLTree = 24 * time.Hour
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts are the render options that distinguish cached
// artifacts built from the same payload.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Document bool   `json:"document,omitempty"`
	Plain    bool   `json:"plain,omitempty"`
	Indent   bool   `json:"indent,omitempty"`
}

// Keyer generates cache keys.
type Keyer interface {
	// TreeKey generates a key for a serialized display tree built from
	// the payload with the given hash.
	TreeKey(payloadHash string) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(payloadHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates hash-based cache keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// TreeKey generates a key for a serialized display tree.
func (k *DefaultKeyer) TreeKey(payloadHash string) string {
	return hashKey("tree", payloadHash)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(payloadHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", payloadHash, opts)
}
