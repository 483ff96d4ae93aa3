package jwt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// BearerPrefix is matched case-sensitively, including the trailing space.
const BearerPrefix = "Bearer "

// Codec signs and verifies HS256 tokens. It never checks expiry; callers
// decide what "now" means.
type Codec struct {
	signingKey   []byte
	previousKeys [][]byte
}

// Option configures a Codec.
type Option func(*Codec)

// WithPreviousKeys accepts tokens signed with retired keys during rotation.
// New tokens are always signed with the current key.
func WithPreviousKeys(keys ...[]byte) Option {
	return func(c *Codec) {
		for _, k := range keys {
			if len(k) > 0 {
				c.previousKeys = append(c.previousKeys, k)
			}
		}
	}
}

// New creates a Codec signing with signingKey.
func New(signingKey []byte, opts ...Option) (*Codec, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}

	c := &Codec{signingKey: signingKey}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewFromString is New for string keys loaded from configuration.
func NewFromString(signingKey string, previous ...string) (*Codec, error) {
	keys := make([][]byte, 0, len(previous))
	for _, p := range previous {
		keys = append(keys, []byte(p))
	}
	return New([]byte(signingKey), WithPreviousKeys(keys...))
}

// Sign encodes claims as a compact JWT.
func (c *Codec) Sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims.toWire())
	signed, err := token.SignedString(c.signingKey)
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature and decodes claims.
// Every failure wraps ErrInvalidToken.
func (c *Codec) Parse(token string) (Claims, error) {
	var lastErr error
	for _, key := range c.keys() {
		claims, err := parseWithKey(token, key)
		if err == nil {
			return claims, nil
		}
		lastErr = err
		if !errors.Is(err, ErrInvalidSignature) {
			break
		}
	}
	return Claims{}, errors.Join(ErrInvalidToken, lastErr)
}

// ParseHeader strips the bearer prefix from an Authorization header value and parses the rest.
func (c *Codec) ParseHeader(header string) (Claims, error) {
	token, err := TokenFromHeader(header)
	if err != nil {
		return Claims{}, errors.Join(ErrInvalidToken, err)
	}
	return c.Parse(token)
}

// TokenFromHeader returns the token part of "Bearer <token>".
func TokenFromHeader(header string) (string, error) {
	token, ok := strings.CutPrefix(header, BearerPrefix)
	if !ok || token == "" {
		return "", ErrMissingBearerPrefix
	}
	return token, nil
}

func (c *Codec) keys() [][]byte {
	return append([][]byte{c.signingKey}, c.previousKeys...)
}

func parseWithKey(token string, key []byte) (Claims, error) {
	var w wireClaims
	_, err := jwt.ParseWithClaims(token, &w, func(t *jwt.Token) (any, error) {
		return key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return Claims{}, ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return Claims{}, ErrUnexpectedSigningMethod
	default:
		return Claims{}, err
	}
	return w.toClaims()
}
