package cache

import (
	"context"
	"time"
)

// Cache is the contract for the read cache in front of PostgreSQL.
// Values are stored as JSON.
type Cache interface {
	// Get unmarshals the value stored under key into dest.
	// found is false on a cache miss, in which case dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	// Set stores value under key with the given TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern, e.g. "author:*:books"
	DeletePattern(ctx context.Context, pattern string) error

	Ping(ctx context.Context) error
}
