package memory

import (
	"context"
	"errors"

	"job-connect/internal/domain/account"
	"job-connect/internal/repository"

	"github.com/google/uuid"
)

type accountRepo struct{ s *Store }

func (r accountRepo) Create(_ context.Context, a account.Account) error {
	defer r.s.lock()()
	if _, ok := r.s.data.accounts[a.ID]; ok {
		return repository.ErrConflict
	}
	key := account.NormalizeUsername(a.Username)
	for _, existing := range r.s.data.accounts {
		if account.NormalizeUsername(existing.Username) == key {
			return repository.ErrConflict
		}
	}
	now := r.s.clock.tick()
	a.CreatedAt, a.UpdatedAt = now, now
	r.s.data.accounts[a.ID] = a
	return nil
}

func (r accountRepo) GetByID(_ context.Context, id uuid.UUID) (account.Account, error) {
	defer r.s.lock()()
	a, ok := r.s.data.accounts[id]
	if !ok {
		return account.Account{}, repository.ErrNotFound
	}
	return a, nil
}

func (r accountRepo) GetByUsername(_ context.Context, username string) (account.Account, error) {
	defer r.s.lock()()
	key := account.NormalizeUsername(username)
	for _, a := range r.s.data.accounts {
		if account.NormalizeUsername(a.Username) == key {
			return a, nil
		}
	}
	return account.Account{}, repository.ErrNotFound
}

func (r accountRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	return false, err
}
