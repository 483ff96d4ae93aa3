package ratelimiter

import "errors"

var (
	// ErrInvalidConfig indicates a missing store or non-positive window.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmptyKey indicates the caller did not supply a limiting key.
	ErrEmptyKey = errors.New("empty rate limit key")

	// ErrStoreUnavailable wraps failures of the backing store.
	ErrStoreUnavailable = errors.New("store unavailable")
)
