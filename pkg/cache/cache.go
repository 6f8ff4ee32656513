// Package cache provides content-addressed caching of reconstruction reports.
//
// Reports are keyed by a SHA-256 hash of the snapshot document plus the
// engine options that influenced the run, so an unchanged snapshot never has
// to be re-validated. Three backends are provided:
//
//   - FileCache: filesystem-backed, for CLI usage
//   - RedisCache: Redis-backed, for the API server
//   - NullCache: no-op, for tests and disabled caching
package cache

import (
	"context"
	"errors"
	"time"
)

// TTLs for cached data.
const (
	// TTLReport is how long a cached reconstruction report stays valid.
	// Reports are content-addressed, so this mainly bounds disk usage.
	TTLReport = 30 * 24 * time.Hour
)

// Sentinel errors for caching operations.
var (
	// ErrNotFound is returned when a requested item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCacheMiss is returned when an item is not found in cache.
	ErrCacheMiss = errors.New("cache miss")
)

// Cache is the interface implemented by all cache backends.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// ReportKeyOpts are the engine options that affect a cached report.
// Two runs with different options must not share a cache entry.
type ReportKeyOpts struct {
	RootLabel      string
	FallbackFamily string
	FallbackStyle  string
	YieldEvery     int
}

// Keyer generates cache keys.
type Keyer interface {
	// ReportKey generates a key for a reconstruction report.
	// snapshotHash is the content hash of the snapshot document.
	ReportKey(snapshotHash string, opts ReportKeyOpts) string
}

// DefaultKeyer is the standard key generation scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ReportKey generates a key for a reconstruction report.
func (k *DefaultKeyer) ReportKey(snapshotHash string, opts ReportKeyOpts) string {
	return hashKey("report", snapshotHash, opts)
}
