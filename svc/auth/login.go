package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/authgate/pkg/logger"
	"github.com/dmitrymomot/authgate/svc/account"
)

// Session is the result of a successful login.
type Session struct {
	IssuedToken
	Account     *account.Account
	Authorities []string
}

// Authenticator checks credentials and issues tokens.
type Authenticator struct {
	accounts account.Repository
	tokens   *TokenService
	hasher   Hasher
	log      *slog.Logger
}

// NewAuthenticator checks credentials against accounts and issues sessions through tokens.
func NewAuthenticator(accounts account.Repository, tokens *TokenService, opts ...Option) *Authenticator {
	o := newOptions(opts)
	return &Authenticator{
		accounts: accounts,
		tokens:   tokens,
		hasher:   o.hasher,
		log:      o.log.With(logger.Component("auth.login")),
	}
}

// Login accepts either a username or an email as the identifier.
// Unknown accounts and wrong passwords both return ErrInvalidCredentials.
func (a *Authenticator) Login(ctx context.Context, usernameOrEmail, password string) (*Session, error) {
	if usernameOrEmail == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	acc, err := a.accounts.FindByUsernameOrEmail(ctx, usernameOrEmail)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		a.log.ErrorContext(ctx, "account lookup failed", logger.Error(err))
		return nil, internal(err)
	}

	if err := a.hasher.Compare(acc.Password, password); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return nil, ErrInvalidCredentials
		}
		a.log.ErrorContext(ctx, "password compare failed", logger.UserID(acc.ID), logger.Error(err))
		return nil, internal(err)
	}

	authorities := AuthoritiesForRole(acc.Role)
	token, err := a.tokens.Issue(ctx, acc.ID, acc.Username, authorities)
	if err != nil {
		a.log.ErrorContext(ctx, "token issue failed", logger.UserID(acc.ID), logger.Error(err))
		return nil, err
	}

	a.log.InfoContext(ctx, "login succeeded", logger.UserID(acc.ID), logger.Username(acc.Username))
	return &Session{IssuedToken: token, Account: acc, Authorities: authorities}, nil
}
