// Package cache holds previously fetched upstream records so repeated
// reads inside the freshness window cost no network round trip.
//
// The unit of coupling is the Channel: one per resource kind, owning both
// the key the list fetcher reads and the key mutations invalidate. Pages
// and delete controls share the channel object, so the two keys cannot
// drift apart.
package cache

import (
	"context"
	"time"
)

// Store is the minimal key/value surface a Channel needs. Two
// implementations exist: the default in-process MemoryStore and a
// RedisStore for multi-instance deployments.
type Store interface {
	// Get returns the stored bytes for key and whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for at most ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the given keys. Deleting an absent key is a no-op,
	// which is what makes invalidation idempotent.
	Delete(ctx context.Context, keys ...string) error
}
