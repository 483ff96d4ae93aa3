package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/authgate/pkg/kvstore"
	"github.com/dmitrymomot/authgate/pkg/logger"
	"github.com/dmitrymomot/authgate/pkg/metrics"
	"github.com/dmitrymomot/authgate/pkg/validator"
	"github.com/dmitrymomot/authgate/svc/account"
)

// Claim namespaces held for the duration of one registration attempt.
const (
	EmailClaimKeyPrefix    = "auth:register:claim:email:"
	UsernameClaimKeyPrefix = "auth:register:claim:username:"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// RegisterParams is a self-service sign-up request.
type RegisterParams struct {
	Username string
	Email    string
	Code     string
	Password string
}

// Validate checks field formats. Passwords are limited both in characters and
// in encoded bytes, so multibyte input never reaches the hasher oversized.
func (p RegisterParams) Validate() error {
	return validator.Apply(
		validator.Required("username", p.Username),
		validator.LenBetween("username", p.Username, 1, 32),
		validator.NoWhitespace("username", p.Username),
		validator.ValidEmail("email", p.Email),
		validator.Digits("code", p.Code, 6),
		validator.LenBetween("password", p.Password, 6, 64),
		validator.MaxBytes("password", p.Password, MaxPasswordBytes),
	)
}

// Registrar turns a verified email into a new account.
type Registrar struct {
	store    kvstore.Store
	accounts account.Repository
	hasher   Hasher
	claimTTL time.Duration
	now      func() time.Time
	log      *slog.Logger
}

// NewRegistrar keeps codes and claims in store and persists accounts through
// accounts. Claims expire after WithClaimTTL if a release is lost.
func NewRegistrar(store kvstore.Store, accounts account.Repository, opts ...Option) *Registrar {
	o := newOptions(opts)
	return &Registrar{
		store:    store,
		accounts: accounts,
		hasher:   o.hasher,
		claimTTL: o.claimTTL,
		now:      o.now,
		log:      o.log.With(logger.Component("auth.registration")),
	}
}

// Register creates the account and consumes the verification code.
// Concurrent attempts for the same email or username have at most one winner.
// An attempt that finds the identity claimed by another one in flight gets
// ErrRegistrationInProgress; once an account exists, ErrEmailTaken or ErrUsernameTaken.
func (r *Registrar) Register(ctx context.Context, p RegisterParams) (err error) {
	defer func() { metrics.RegistrationsTotal.WithLabelValues(outcome(err)).Inc() }()

	if err := p.Validate(); err != nil {
		return err
	}

	codeKey := CodeKeyPrefix + p.Email
	stored, ok, err := r.store.Get(ctx, codeKey)
	if err != nil {
		return r.fail(ctx, "verification code lookup failed", err)
	}
	if !ok {
		return ErrCodeNotRequested
	}
	if stored != p.Code {
		return ErrCodeMismatch
	}

	release, err := r.claim(ctx, p.Email, p.Username)
	if err != nil {
		return err
	}
	defer release()

	taken, err := r.accounts.ExistsByEmail(ctx, p.Email)
	if err != nil {
		return r.fail(ctx, "email lookup failed", err)
	}
	if taken {
		return ErrEmailTaken
	}
	taken, err = r.accounts.ExistsByUsername(ctx, p.Username)
	if err != nil {
		return r.fail(ctx, "username lookup failed", err)
	}
	if taken {
		return ErrUsernameTaken
	}

	hash, err := r.hasher.Hash(p.Password)
	if err != nil {
		return r.fail(ctx, "password hashing failed", err)
	}

	acc := &account.Account{
		Username:     p.Username,
		Password:     hash,
		Role:         account.DefaultRole,
		Email:        p.Email,
		RegisteredAt: r.now(),
	}
	if err := r.accounts.Insert(ctx, acc); err != nil {
		switch {
		case errors.Is(err, account.ErrDuplicateEmail):
			return ErrEmailTaken
		case errors.Is(err, account.ErrDuplicateUsername):
			return ErrUsernameTaken
		}
		return r.fail(ctx, "account insert failed", err)
	}

	if err := r.store.Delete(ctx, codeKey); err != nil {
		// The account exists; the code expires on its own.
		r.log.WarnContext(ctx, "verification code not deleted", logger.Email(p.Email), logger.Error(err))
	}

	r.log.InfoContext(ctx, "account registered",
		logger.UserID(acc.ID),
		logger.Username(acc.Username),
		logger.Email(acc.Email),
	)
	return nil
}

// claim reserves email and username for this attempt. The returned func releases both.
// A claim held by another attempt means that attempt's outcome is still unknown.
func (r *Registrar) claim(ctx context.Context, email, username string) (func(), error) {
	emailKey := EmailClaimKeyPrefix + email
	ok, err := r.store.SetIfAbsent(ctx, emailKey, "", r.claimTTL)
	if err != nil {
		return nil, r.fail(ctx, "email claim failed", err)
	}
	if !ok {
		return nil, ErrRegistrationInProgress
	}

	usernameKey := UsernameClaimKeyPrefix + username
	ok, err = r.store.SetIfAbsent(ctx, usernameKey, "", r.claimTTL)
	if err != nil || !ok {
		r.unclaim(ctx, emailKey)
		if err != nil {
			return nil, r.fail(ctx, "username claim failed", err)
		}
		return nil, ErrRegistrationInProgress
	}

	return func() { r.unclaim(ctx, emailKey, usernameKey) }, nil
}

func (r *Registrar) unclaim(ctx context.Context, keys ...string) {
	// The request context may already be done; claims must still be released.
	ctx = context.WithoutCancel(ctx)
	for _, key := range keys {
		if err := r.store.Delete(ctx, key); err != nil {
			r.log.WarnContext(ctx, "registration claim not released", slog.String("key", key), logger.Error(err))
		}
	}
}

func (r *Registrar) fail(ctx context.Context, msg string, err error) error {
	r.log.ErrorContext(ctx, msg, logger.Error(err))
	return internal(err)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "registered"
	case validator.IsValidationError(err):
		return "invalid"
	case errors.Is(err, ErrCodeNotRequested), errors.Is(err, ErrCodeMismatch):
		return "bad_code"
	case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrUsernameTaken), errors.Is(err, ErrRegistrationInProgress):
		return "conflict"
	default:
		return "error"
	}
}
