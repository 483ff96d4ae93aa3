package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/authgate/pkg/pg"
)

const (
	constraintUsername = "accounts_username_key"
	constraintEmail    = "accounts_email_key"
)

// DB is the subset of *pgxpool.Pool used by PostgresRepository.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores accounts in the accounts table.
type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByUsernameOrEmail(ctx context.Context, text string) (*Account, error) {
	const q = `SELECT id, username, password, role, email, registered_at
		FROM accounts WHERE username = $1 OR email = $1 LIMIT 1`

	var acc Account
	err := r.db.QueryRow(ctx, q, text).Scan(
		&acc.ID, &acc.Username, &acc.Password, &acc.Role, &acc.Email, &acc.RegisteredAt,
	)
	if pg.IsNotFoundError(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	return &acc, nil
}

func (r *PostgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1)`, email)
}

func (r *PostgresRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE username = $1)`, username)
}

func (r *PostgresRepository) Insert(ctx context.Context, acc *Account) error {
	const q = `INSERT INTO accounts (username, password, role, email, registered_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`

	err := r.db.QueryRow(ctx, q, acc.Username, acc.Password, acc.Role, acc.Email, acc.RegisteredAt).Scan(&acc.ID)
	if err != nil {
		return translateInsertError(err)
	}
	return nil
}

func (r *PostgresRepository) exists(ctx context.Context, q, arg string) (bool, error) {
	var found bool
	if err := r.db.QueryRow(ctx, q, arg).Scan(&found); err != nil {
		return false, fmt.Errorf("check account: %w", err)
	}
	return found, nil
}

func translateInsertError(err error) error {
	if name, ok := pg.ViolatedConstraint(err); ok {
		switch name {
		case constraintEmail:
			return errors.Join(ErrDuplicateEmail, err)
		case constraintUsername:
			return errors.Join(ErrDuplicateUsername, err)
		}
	}
	return fmt.Errorf("insert account: %w", err)
}
