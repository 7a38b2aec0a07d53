package repository

import (
	"context"

	"rentory/internal/domain/entity"
)

type ListingMutation func(current entity.Listing) (entity.Listing, error)

type ListingRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	List(ctx context.Context) ([]*entity.Listing, error)
	Update(ctx context.Context, id string, fn ListingMutation) (*entity.Listing, error)
}
