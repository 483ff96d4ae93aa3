// Package kvstore defines the key-value contract shared by the token
// revocation list, the rate limiter, verification codes and registration
// claims, together with an in-memory implementation.
//
// The Redis-backed implementation lives in pkg/redis. Both satisfy Store:
//
//	store := kvstore.NewMemoryStore(kvstore.WithCleanupInterval(time.Minute))
//	defer store.Close()
//
//	created, err := store.SetIfAbsent(ctx, "limit:10.0.0.1", "", time.Minute)
//
// WithTimeout decorates any Store so a slow backend cannot hold a request
// goroutine indefinitely.
package kvstore
