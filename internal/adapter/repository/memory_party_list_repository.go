package repository

import (
	"context"
	"sync"

	"rentory/internal/domain/repository"
)

type memoryPartyListRepository struct {
	mu    sync.Mutex
	lists map[string][]string
}

// NewMemoryPartyListRepository keeps one id list per party. Each party owns
// its own list; nothing is shared between parties.
func NewMemoryPartyListRepository() repository.PartyListRepository {
	return &memoryPartyListRepository{lists: make(map[string][]string)}
}

func (r *memoryPartyListRepository) Get(ctx context.Context, partyID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.lists[partyID]...), nil
}

func (r *memoryPartyListRepository) Update(ctx context.Context, partyID string, fn func(current []string) []string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := fn(append([]string{}, r.lists[partyID]...))
	r.lists[partyID] = append([]string{}, next...)
	return next, nil
}
