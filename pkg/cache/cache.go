// Package cache stores alignment results and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a local directory (CLI)
//   - [RedisCache]: shared cache for several server instances
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// # Keys
//
// A [Keyer] derives keys from everything that affects a result. Alignment
// keys hash both sequences and the scoring; artifact keys hash the
// alignment key together with the output format and its options. Keys are
// stable across processes, so a result computed by the CLI can be served
// by the server when both share a Redis instance.
package cache

import (
	"context"
	"time"
)

// Cache TTLs.
const (
	// TTLAlignment bounds how long a filled and traced alignment is kept.
	TTLAlignment = 7 * 24 * time.Hour

	// TTLArtifact bounds how long a rendered output is kept.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiration.
//
// Get reports a miss with ok == false and a nil error; errors are reserved
// for backend failures. A ttl of 0 means the entry does not expire.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}
