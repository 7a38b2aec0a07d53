package repository

import (
	"context"
	"sort"
	"sync"

	"rentory/internal/domain/entity"
	"rentory/internal/domain/repository"
	"rentory/pkg/errors"
)

type memoryLeaseRepository struct {
	mu     sync.RWMutex
	leases map[string]entity.Lease
}

func NewMemoryLeaseRepository() repository.LeaseRepository {
	return &memoryLeaseRepository{leases: make(map[string]entity.Lease)}
}

func (r *memoryLeaseRepository) Create(ctx context.Context, lease *entity.Lease) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.leases[lease.ID]; exists {
		return errors.Conflict("Lease already exists")
	}
	r.leases[lease.ID] = lease.Clone()
	return nil
}

func (r *memoryLeaseRepository) GetByID(ctx context.Context, id string) (*entity.Lease, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.leases[id]
	if !ok {
		return nil, errors.NotFound("Lease", nil)
	}
	out := l.Clone()
	return &out, nil
}

// List returns leases newest first.
func (r *memoryLeaseRepository) List(ctx context.Context) ([]*entity.Lease, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Lease, 0, len(r.leases))
	for _, l := range r.leases {
		c := l.Clone()
		out = append(out, &c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memoryLeaseRepository) Update(ctx context.Context, id string, fn repository.LeaseMutation) (*entity.Lease, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.leases[id]
	if !ok {
		return nil, errors.NotFound("Lease", nil)
	}

	next, err := fn(current.Clone())
	if err != nil {
		return nil, err
	}
	next.ID = id
	r.leases[id] = next.Clone()
	return &next, nil
}
