package auth

import (
	"context"
	"time"
)

// Identity is the authenticated caller derived from a verified token.
type Identity struct {
	ID          int64
	Name        string
	Authorities []string
	TokenID     string
	ExpiresAt   time.Time
}

// RolePrefix is prepended to account roles to form authorities.
const RolePrefix = "ROLE_"

// AuthoritiesForRole maps an account role to its authority list.
func AuthoritiesForRole(role string) []string {
	return []string{RolePrefix + role}
}

type identityContextKey struct{}

// WithIdentity stores the authenticated identity for downstream handlers.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext returns nil when the request was not authenticated.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityContextKey{}).(*Identity)
	return id
}
