package repository

import (
	"context"

	"rentory/internal/domain/entity"
)

// LeaseMutation receives the current stored lease and returns the value to
// store in its place.
type LeaseMutation func(current entity.Lease) (entity.Lease, error)

type LeaseRepository interface {
	Create(ctx context.Context, lease *entity.Lease) error
	GetByID(ctx context.Context, id string) (*entity.Lease, error)
	List(ctx context.Context) ([]*entity.Lease, error)

	// Update applies fn to the lease stored under id and replaces it with the
	// result as one atomic step. Returns NOT_FOUND when id is unknown.
	Update(ctx context.Context, id string, fn LeaseMutation) (*entity.Lease, error)
}
