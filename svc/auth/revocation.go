package auth

import (
	"context"
	"time"

	"github.com/dmitrymomot/authgate/pkg/kvstore"
)

// RevocationKeyPrefix namespaces revoked token ids in the key-value store.
const RevocationKeyPrefix = "auth:jwt:blacklist:"

// RevocationStore is a deny-list of token ids. Markers are never deleted;
// they expire together with the token they block.
type RevocationStore struct {
	store kvstore.Store
}

// NewRevocationStore keeps markers in store under RevocationKeyPrefix.
func NewRevocationStore(store kvstore.Store) *RevocationStore {
	return &RevocationStore{store: store}
}

// MarkRevoked creates the marker for tokenID and reports whether this call
// created it. It returns false when the token was already revoked. The store
// treats a zero TTL as "forever", so the TTL is floored at one second.
func (s *RevocationStore) MarkRevoked(ctx context.Context, tokenID string, ttl time.Duration) (bool, error) {
	return s.store.SetIfAbsent(ctx, RevocationKeyPrefix+tokenID, "", max(ttl, time.Second))
}

// IsRevoked reports whether a marker exists for tokenID.
func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return s.store.Exists(ctx, RevocationKeyPrefix+tokenID)
}
