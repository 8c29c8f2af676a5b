package cache

import (
	"context"
	"time"
)

// Cache is the key-value collaborator holding materialized weekly plans and
// the per-season computation locks. Keys are namespaced by the caller.
type Cache interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key with the given lifetime. A zero ttl means
	// no expiry.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Lock tries to acquire a mutex named key that auto-expires after ttl.
	// Returns the release function and whether the lock was acquired. Two
	// computations for the same season must never run concurrently; this is
	// the serialization point.
	Lock(ctx context.Context, key string, ttl time.Duration) (release func(), acquired bool, err error)
}
