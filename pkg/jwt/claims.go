package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of a session token.
type Claims struct {
	SubjectID   int64
	Name        string
	Authorities []string
	TokenID     string // jti
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// wireClaims is the JSON shape of Claims. Pointers make absent fields detectable.
type wireClaims struct {
	ID          *int64    `json:"id"`
	Name        *string   `json:"name"`
	Authorities *[]string `json:"authorities"`
	jwt.RegisteredClaims
}

func (c Claims) toWire() wireClaims {
	id, name := c.SubjectID, c.Name
	authorities := append([]string{}, c.Authorities...)

	return wireClaims{
		ID:          &id,
		Name:        &name,
		Authorities: &authorities,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        c.TokenID,
			IssuedAt:  jwt.NewNumericDate(c.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(c.ExpiresAt),
		},
	}
}

func (w wireClaims) toClaims() (Claims, error) {
	if w.ID == nil || w.Name == nil || w.Authorities == nil || w.RegisteredClaims.ID == "" || w.ExpiresAt == nil {
		return Claims{}, ErrMissingClaims
	}

	c := Claims{
		SubjectID:   *w.ID,
		Name:        *w.Name,
		Authorities: *w.Authorities,
		TokenID:     w.RegisteredClaims.ID,
		ExpiresAt:   w.ExpiresAt.Time,
	}
	if w.IssuedAt != nil {
		c.IssuedAt = w.IssuedAt.Time
	}
	return c, nil
}
