package account

import (
	"context"
	"time"
)

// WithTimeout bounds every repository call. A non-positive timeout returns repo unchanged.
func WithTimeout(repo Repository, timeout time.Duration) Repository {
	if timeout <= 0 {
		return repo
	}
	return &timeoutRepository{next: repo, timeout: timeout}
}

type timeoutRepository struct {
	next    Repository
	timeout time.Duration
}

func (r *timeoutRepository) FindByUsernameOrEmail(ctx context.Context, text string) (*Account, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.next.FindByUsernameOrEmail(ctx, text)
}

func (r *timeoutRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.next.ExistsByEmail(ctx, email)
}

func (r *timeoutRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.next.ExistsByUsername(ctx, username)
}

func (r *timeoutRepository) Insert(ctx context.Context, acc *Account) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.next.Insert(ctx, acc)
}
