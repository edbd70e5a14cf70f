package port

import (
	"context"
	"time"
)

// Cache is the key-value contract used for presence lookups.
// Implementations must be safe for concurrent use and honor ctx.
type Cache interface {
	// Get returns ErrMiss when key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value at key. A TTL <= 0 means no expiration.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// SetIfNewer stores value at key only when version is greater than the
	// version of the value already there. It reports whether it wrote.
	SetIfNewer(ctx context.Context, key string, value string, version int64, ttl time.Duration) (bool, error)

	// Del removes keys and returns how many existed.
	Del(ctx context.Context, keys ...string) (int64, error)

	Ping(ctx context.Context) error
	Close() error
}

// ErrMiss signals a cache miss so callers can tell it apart from transport errors.
var ErrMiss = errMiss{}

type errMiss struct{}

func (e errMiss) Error() string { return "cache: miss" }
