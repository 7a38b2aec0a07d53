package repository

import (
	"context"
	"sort"
	"sync"

	"rentory/internal/domain/entity"
	"rentory/internal/domain/repository"
	"rentory/pkg/errors"
)

type memoryAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]entity.Account
}

// NewMemoryAccountRepository holds the given accounts.
func NewMemoryAccountRepository(accounts []entity.Account) repository.AccountRepository {
	r := &memoryAccountRepository{accounts: make(map[string]entity.Account, len(accounts))}
	for _, a := range accounts {
		r.accounts[a.ID] = a
	}
	return r
}

func (r *memoryAccountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[id]
	if !ok {
		return nil, errors.NotFound("Account", nil)
	}
	return &a, nil
}

func (r *memoryAccountRepository) List(ctx context.Context) ([]*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		a := a
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.ID]; exists {
		return errors.Conflict("Account already exists")
	}
	r.accounts[account.ID] = *account
	return nil
}

func (r *memoryAccountRepository) Update(ctx context.Context, id string, fn repository.AccountMutation) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.accounts[id]
	if !ok {
		return nil, errors.NotFound("Account", nil)
	}

	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	next.ID = id
	r.accounts[id] = next
	return &next, nil
}
