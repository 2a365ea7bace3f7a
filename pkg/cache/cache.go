package cache

import (
	"context"
	"time"
)

// Cache is the contract for the caching layer. Implementations must be
// safe for concurrent use.
type Cache interface {
	// Get reads key into dest. Returns found=false on a cache miss, in
	// which case dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}
