package ratelimiter

import (
	"context"
	"errors"
	"time"
)

// Store is the atomic primitive the limiter needs. kvstore.Store satisfies it.
type Store interface {
	SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
}

// Limiter admits at most one event per key per window.
// Markers carry no count: the first caller inside a window wins, the rest are denied
// without extending the window.
type Limiter struct {
	store  Store
	prefix string
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithPrefix namespaces every key, e.g. "auth:verify:limit:".
func WithPrefix(prefix string) Option {
	return func(l *Limiter) {
		l.prefix = prefix
	}
}

// New creates a Limiter backed by store.
func New(store Store, opts ...Option) (*Limiter, error) {
	if store == nil {
		return nil, ErrInvalidConfig
	}

	l := &Limiter{store: store}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Allow reports whether key may proceed now and opens a window when it does.
// It is a single SetIfAbsent call, so two concurrent callers for the same key
// can never both be admitted.
func (l *Limiter) Allow(ctx context.Context, key string, window time.Duration) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	if window <= 0 {
		return false, ErrInvalidConfig
	}

	created, err := l.store.SetIfAbsent(ctx, l.prefix+key, "", window)
	if err != nil {
		return false, errors.Join(ErrStoreUnavailable, err)
	}
	return created, nil
}
