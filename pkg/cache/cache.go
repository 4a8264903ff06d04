// Package cache stores extraction results keyed by file content.
//
// Extraction is a pure function of a file's text and the extractor that
// handles it, so results can be reused across scans of the same tree.
// Locations are never cached; they always come from the current walk.
//
// Two backends implement [Cache]. A nil Cache disables caching.
//
//   - [FileCache]: JSON files under a directory, for local CLI use
//   - [RedisCache]: a shared Redis instance, for CI runners and teams
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long extraction results are kept when no TTL is configured.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key-value store with expiration.
type Cache interface {
	// Get returns the value for key. The boolean is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// ExtractKey returns the key for the detections an extractor of the
	// given dialect produced for content.
	ExtractKey(dialect string, content []byte) string
}

// DefaultKeyer builds unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ExtractKey returns "extract:<dialect>:<sha256(content)>".
func (DefaultKeyer) ExtractKey(dialect string, content []byte) string {
	return "extract:" + dialect + ":" + Hash(content)
}
