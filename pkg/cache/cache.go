// Package cache stores tool results between calls.
//
// # Backends
//
// [Cache] has three implementations:
//
//   - [NullCache] never stores anything and is used when caching is off.
//   - [FileCache] keeps one JSON file per entry under a directory, for the CLI.
//   - [RedisCache] shares entries between API replicas.
//
// # Keys
//
// Keys are produced by a [Keyer]. [DefaultKeyer] hashes the tool name and the
// canonical request so that equivalent inputs share an entry. [ScopedKeyer]
// prefixes keys to separate tenants or unit systems.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with expiration.
type Cache interface {
	// Get returns the stored value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	// Clear removes all entries and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}

// TTLResult is the default lifetime of a cached tool result. Results are
// pure functions of their input, so the TTL only bounds storage growth.
const TTLResult = 7 * 24 * time.Hour

// Keyer generates cache keys.
type Keyer interface {
	// ToolKey returns the key for a tool invoked with a canonical JSON input.
	ToolKey(tool string, input []byte) string
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ToolKey returns "tool:<name>:<sha256>".
func (DefaultKeyer) ToolKey(tool string, input []byte) string {
	return toolKey(tool, input)
}
