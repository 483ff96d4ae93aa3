package account

import (
	"context"
	"time"
)

// DefaultRole is assigned to every self-registered account.
const DefaultRole = "user"

// Account is a registered identity. Rows are created once and never updated here.
type Account struct {
	ID           int64
	Username     string
	Password     string // bcrypt hash
	Role         string
	Email        string
	RegisteredAt time.Time
}

// Repository is the durable account store.
type Repository interface {
	// FindByUsernameOrEmail returns ErrNotFound when neither column matches.
	FindByUsernameOrEmail(ctx context.Context, text string) (*Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// Insert assigns acc.ID. Unique violations return ErrDuplicateEmail or ErrDuplicateUsername.
	Insert(ctx context.Context, acc *Account) error
}
