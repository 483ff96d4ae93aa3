package account

import (
	"context"
	"sync"
)

// MemoryRepository keeps accounts in process memory and enforces the same
// uniqueness rules as the accounts table.
type MemoryRepository struct {
	mu       sync.RWMutex
	accounts []Account
	nextID   int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1}
}

func (r *MemoryRepository) FindByUsernameOrEmail(ctx context.Context, text string) (*Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, acc := range r.accounts {
		if acc.Username == text || acc.Email == text {
			found := acc
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, func(acc Account) bool { return acc.Email == email })
}

func (r *MemoryRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, func(acc Account) bool { return acc.Username == username })
}

func (r *MemoryRepository) Insert(ctx context.Context, acc *Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.accounts {
		if existing.Username == acc.Username {
			return ErrDuplicateUsername
		}
		if existing.Email == acc.Email {
			return ErrDuplicateEmail
		}
	}

	acc.ID = r.nextID
	r.nextID++
	r.accounts = append(r.accounts, *acc)
	return nil
}

// Count returns the number of stored accounts.
func (r *MemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts)
}

func (r *MemoryRepository) exists(ctx context.Context, match func(Account) bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, acc := range r.accounts {
		if match(acc) {
			return true, nil
		}
	}
	return false, nil
}
