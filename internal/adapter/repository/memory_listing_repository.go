package repository

import (
	"context"
	"sort"
	"sync"

	"rentory/internal/domain/entity"
	"rentory/internal/domain/repository"
	"rentory/pkg/errors"
)

type memoryListingRepository struct {
	mu       sync.RWMutex
	listings map[string]entity.Listing
}

func NewMemoryListingRepository(listings []entity.Listing) repository.ListingRepository {
	r := &memoryListingRepository{listings: make(map[string]entity.Listing, len(listings))}
	for _, l := range listings {
		r.listings[l.ID] = l
	}
	return r
}

func (r *memoryListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.listings[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	return &l, nil
}

func (r *memoryListingRepository) List(ctx context.Context) ([]*entity.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Listing, 0, len(r.listings))
	for _, l := range r.listings {
		l := l
		out = append(out, &l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryListingRepository) Update(ctx context.Context, id string, fn repository.ListingMutation) (*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.listings[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}

	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	next.ID = id
	r.listings[id] = next
	return &next, nil
}
