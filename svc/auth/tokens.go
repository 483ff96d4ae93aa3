package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authgate/pkg/jwt"
	"github.com/dmitrymomot/authgate/pkg/logger"
	"github.com/dmitrymomot/authgate/pkg/metrics"
)

// IssuedToken is a freshly signed session token.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenService issues, validates and revokes session tokens.
type TokenService struct {
	codec       *jwt.Codec
	revocations *RevocationStore
	ttl         time.Duration
	now         func() time.Time
	log         *slog.Logger
}

// NewTokenService signs with codec and checks revocations on every Validate.
// Token lifetime comes from WithTokenTTL or WithExpireDays.
func NewTokenService(codec *jwt.Codec, revocations *RevocationStore, opts ...Option) *TokenService {
	o := newOptions(opts)
	return &TokenService{
		codec:       codec,
		revocations: revocations,
		ttl:         o.tokenTTL,
		now:         o.now,
		log:         o.log.With(logger.Component("auth.tokens")),
	}
}

// Issue signs a new token with a fresh jti.
func (s *TokenService) Issue(ctx context.Context, subjectID int64, subjectName string, authorities []string) (IssuedToken, error) {
	now := s.now()
	claims := jwt.Claims{
		SubjectID:   subjectID,
		Name:        subjectName,
		Authorities: authorities,
		TokenID:     uuid.NewString(),
		IssuedAt:    now,
		ExpiresAt:   now.Add(s.ttl),
	}

	token, err := s.codec.Sign(claims)
	if err != nil {
		return IssuedToken{}, internal(err)
	}

	metrics.TokensIssuedTotal.Inc()
	s.log.DebugContext(ctx, "token issued", logger.UserID(subjectID), logger.TokenID(claims.TokenID))
	return IssuedToken{Token: token, ExpiresAt: claims.ExpiresAt}, nil
}

// Validate authenticates an Authorization header value.
// Every token problem yields ErrUnauthorized; a store failure yields ErrInternal.
func (s *TokenService) Validate(ctx context.Context, header string) (*Identity, error) {
	claims, err := s.codec.ParseHeader(header)
	if err != nil {
		return nil, ErrUnauthorized
	}
	if s.expired(claims) {
		return nil, ErrUnauthorized
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		s.log.ErrorContext(ctx, "revocation lookup failed", logger.TokenID(claims.TokenID), logger.Error(err))
		return nil, internal(err)
	}
	if revoked {
		return nil, ErrUnauthorized
	}

	return toIdentity(claims), nil
}

// Revoke invalidates the token in header until its natural expiry.
// It returns false for malformed, expired or already revoked tokens.
func (s *TokenService) Revoke(ctx context.Context, header string) (bool, error) {
	claims, err := s.codec.ParseHeader(header)
	if err != nil || s.expired(claims) {
		metrics.TokensRevokedTotal.WithLabelValues("invalid").Inc()
		return false, nil
	}

	remaining := max(claims.ExpiresAt.Sub(s.now()), 0)
	created, err := s.revocations.MarkRevoked(ctx, claims.TokenID, remaining)
	if err != nil {
		s.log.ErrorContext(ctx, "revocation write failed", logger.TokenID(claims.TokenID), logger.Error(err))
		return false, internal(err)
	}
	if !created {
		metrics.TokensRevokedTotal.WithLabelValues("already_revoked").Inc()
		return false, nil
	}

	metrics.TokensRevokedTotal.WithLabelValues("revoked").Inc()
	s.log.DebugContext(ctx, "token revoked", logger.UserID(claims.SubjectID), logger.TokenID(claims.TokenID))
	return true, nil
}

func (s *TokenService) expired(c jwt.Claims) bool {
	return s.now().After(c.ExpiresAt)
}

func toIdentity(c jwt.Claims) *Identity {
	return &Identity{
		ID:          c.SubjectID,
		Name:        c.Name,
		Authorities: c.Authorities,
		TokenID:     c.TokenID,
		ExpiresAt:   c.ExpiresAt,
	}
}
