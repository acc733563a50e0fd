// Package cache stores parsed forests and rendered artifacts keyed by content hash.
//
// Implementations:
//   - NullCache: caching disabled
//   - FileCache: one JSON file per entry, for the CLI
//   - RedisCache: shared cache for multi-instance servers
//
// Keys come from a [Keyer], so callers never build them by hand:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ForestKey(source, "ascii", nil)
//	if data, hit, err := c.Get(ctx, key); err == nil && hit {
//	    // use data
//	}
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiration.
// Implementations are safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss
	// (hit == false) and not an error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Default lifetimes per entry kind.
const (
	// TTLForest applies to parsed forests. Parsing is deterministic, so the
	// lifetime only bounds disk usage.
	TTLForest = 7 * 24 * time.Hour

	// TTLArtifact applies to rendered outputs.
	TTLArtifact = 7 * 24 * time.Hour
)

// Keyer builds cache keys.
type Keyer interface {
	// ForestKey identifies the forest parsed from source with the given
	// format and ignore patterns.
	ForestKey(source, format string, ignore []string) string

	// ArtifactKey identifies one rendered output of a forest.
	ArtifactKey(forestHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists everything that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Output     string `json:"output"`
	Collapsed  bool   `json:"collapsed,omitempty"`
	Detailed   bool   `json:"detailed,omitempty"`
	Horizontal bool   `json:"horizontal,omitempty"`
	Title      string `json:"title,omitempty"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ForestKey implements Keyer.
func (DefaultKeyer) ForestKey(source, format string, ignore []string) string {
	return hashKey("forest", Hash([]byte(source)), format, ignore)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(forestHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", forestHash, opts)
}
