package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage implements kvstore.Store on top of a go-redis client.
type Storage struct {
	db     redis.UniversalClient
	prefix string
}

// StorageOption configures a Storage.
type StorageOption func(*Storage)

// WithKeyPrefix namespaces every key, e.g. "authgate:".
func WithKeyPrefix(prefix string) StorageOption {
	return func(s *Storage) {
		s.prefix = prefix
	}
}

// NewStorage wraps an existing client. The caller keeps ownership of the client.
func NewStorage(client redis.UniversalClient, opts ...StorageOption) *Storage {
	s := &Storage{db: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewStorageFromConfig is NewStorage with the prefix taken from cfg.
func NewStorageFromConfig(client redis.UniversalClient, cfg Config) *Storage {
	return NewStorage(client, WithKeyPrefix(cfg.KeyPrefix))
}

// Get maps redis.Nil to a missing key.
func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}

	val, err := s.db.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return val, true, nil
}

// Set stores value with expiration. Zero ttl keeps the key forever.
func (s *Storage) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := s.db.Set(ctx, s.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *Storage) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	n, err := s.db.Exists(ctx, s.prefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := s.db.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// SetIfAbsent issues a single SET NX so concurrent callers race on the server.
func (s *Storage) SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	ok, err := s.db.SetNX(ctx, s.prefix+key, value, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return ok, nil
}

// Conn returns the underlying client.
func (s *Storage) Conn() redis.UniversalClient {
	return s.db
}
