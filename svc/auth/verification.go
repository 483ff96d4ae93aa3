package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/dmitrymomot/authgate/pkg/kvstore"
	"github.com/dmitrymomot/authgate/pkg/logger"
	"github.com/dmitrymomot/authgate/pkg/metrics"
	"github.com/dmitrymomot/authgate/pkg/ratelimiter"
	"github.com/dmitrymomot/authgate/svc/mail"
)

// Key namespaces owned by the code issuer.
const (
	CodeKeyPrefix      = "auth:verify:email:"
	RateLimitKeyPrefix = "auth:verify:limit:"
)

// GenerateCode returns a uniformly random code in [100000, 999999].
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// CodeIssuer hands out email verification codes, at most one request per IP per window.
type CodeIssuer struct {
	store     kvstore.Store
	limiter   *ratelimiter.Limiter
	publisher mail.Publisher
	codeTTL   time.Duration
	window    time.Duration
	generate  func() (string, error)
	log       *slog.Logger
}

// NewCodeIssuer stores codes and rate-limit markers in store and hands mail to publisher.
// It fails only if the rate limiter cannot be built.
func NewCodeIssuer(store kvstore.Store, publisher mail.Publisher, opts ...Option) (*CodeIssuer, error) {
	limiter, err := ratelimiter.New(store, ratelimiter.WithPrefix(RateLimitKeyPrefix))
	if err != nil {
		return nil, err
	}
	o := newOptions(opts)
	return &CodeIssuer{
		store:     store,
		limiter:   limiter,
		publisher: publisher,
		codeTTL:   o.codeTTL,
		window:    o.rateWindow,
		generate:  o.codeGen,
		log:       o.log.With(logger.Component("auth.verification")),
	}, nil
}

// Issue sends a fresh code to email and stores it, replacing any live code.
// Mail publishing is fire-and-forget: its failures are logged, never returned.
func (i *CodeIssuer) Issue(ctx context.Context, codeType, email, requesterIP string) error {
	allowed, err := i.limiter.Allow(ctx, requesterIP, i.window)
	if err != nil {
		metrics.VerificationCodesTotal.WithLabelValues("error").Inc()
		i.log.ErrorContext(ctx, "rate limiter unavailable", logger.IP(requesterIP), logger.Error(err))
		return internal(err)
	}
	if !allowed {
		metrics.VerificationCodesTotal.WithLabelValues("rate_limited").Inc()
		return ErrTooFrequent
	}

	code, err := i.generate()
	if err != nil {
		metrics.VerificationCodesTotal.WithLabelValues("error").Inc()
		return internal(err)
	}

	msg := mail.Message{Type: codeType, Email: email, Code: code, ValidFor: i.codeTTL}
	if err := i.publisher.Publish(ctx, msg); err != nil {
		i.log.WarnContext(ctx, "verification mail not queued",
			logger.Email(email),
			slog.String("type", codeType),
			logger.Error(err),
		)
	}

	if err := i.store.Set(ctx, CodeKeyPrefix+email, code, i.codeTTL); err != nil {
		metrics.VerificationCodesTotal.WithLabelValues("error").Inc()
		i.log.ErrorContext(ctx, "verification code not stored", logger.Email(email), logger.Error(err))
		return internal(err)
	}

	metrics.VerificationCodesTotal.WithLabelValues("issued").Inc()
	i.log.InfoContext(ctx, "verification code issued",
		logger.Email(email),
		logger.IP(requesterIP),
		slog.String("type", codeType),
	)
	return nil
}
