package kvstore

import (
	"context"
	"time"
)

// Store is a string key-value store with per-key expiry.
// A zero ttl passed to Set or SetIfAbsent means the key never expires.
type Store interface {
	// Get returns the value and true when the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
	// Delete is a no-op for missing keys.
	Delete(ctx context.Context, key string) error
	// SetIfAbsent atomically creates the key when it does not exist.
	// It reports whether the key was created by this call.
	SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
}
