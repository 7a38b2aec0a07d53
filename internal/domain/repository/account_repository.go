package repository

import (
	"context"

	"rentory/internal/domain/entity"
)

// AccountMutation receives the stored account and returns its replacement.
type AccountMutation func(current entity.Account) (entity.Account, error)

// AccountRepository exposes the account list the core consumes to resolve
// display names and authorization payloads, plus the writes administrators
// perform on it.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	List(ctx context.Context) ([]*entity.Account, error)

	// Create stores a new account. Returns CONFLICT when the id is taken.
	Create(ctx context.Context, account *entity.Account) error
	// Update replaces the account stored under id with fn's result in one
	// atomic step. Returns NOT_FOUND when id is unknown.
	Update(ctx context.Context, id string, fn AccountMutation) (*entity.Account, error)
}
