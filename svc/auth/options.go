package auth

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/authgate/pkg/logger"
)

// Defaults for the tunables below. Each matches the corresponding env default.
const (
	DefaultTokenTTL   = 7 * 24 * time.Hour
	DefaultCodeTTL    = 3 * time.Minute
	DefaultRateWindow = 60 * time.Second
	DefaultClaimTTL   = 30 * time.Second
)

type options struct {
	now        func() time.Time
	log        *slog.Logger
	tokenTTL   time.Duration
	codeTTL    time.Duration
	rateWindow time.Duration
	claimTTL   time.Duration
	hasher     Hasher
	codeGen    func() (string, error)
}

// Option tunes any of the services in this package. Options that do not
// apply to a given service are ignored by it.
type Option func(*options)

func newOptions(opts []Option) options {
	o := options{
		now:        time.Now,
		log:        logger.Discard(),
		tokenTTL:   DefaultTokenTTL,
		codeTTL:    DefaultCodeTTL,
		rateWindow: DefaultRateWindow,
		claimTTL:   DefaultClaimTTL,
		codeGen:    GenerateCode,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.hasher == nil {
		o.hasher = NewBcryptHasher(0)
	}
	return o
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger sets the logger; services default to a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithTokenTTL sets the lifetime of issued tokens.
func WithTokenTTL(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.tokenTTL = d
		}
	}
}

// WithExpireDays is WithTokenTTL expressed in whole days.
func WithExpireDays(days int) Option {
	return WithTokenTTL(time.Duration(days) * 24 * time.Hour)
}

// WithCodeTTL sets how long a verification code stays redeemable.
func WithCodeTTL(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.codeTTL = d
		}
	}
}

// WithRateWindow sets the per-IP block window for code requests.
func WithRateWindow(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.rateWindow = d
		}
	}
}

// WithClaimTTL bounds how long a crashed registration can hold an identity.
func WithClaimTTL(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.claimTTL = d
		}
	}
}

// WithHasher replaces the default bcrypt hasher.
func WithHasher(h Hasher) Option {
	return func(o *options) {
		if h != nil {
			o.hasher = h
		}
	}
}

// WithCodeGenerator replaces GenerateCode. Tests use it to get predictable codes.
func WithCodeGenerator(gen func() (string, error)) Option {
	return func(o *options) {
		if gen != nil {
			o.codeGen = gen
		}
	}
}
