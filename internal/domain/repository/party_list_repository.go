package repository

import "context"

// PartyListRepository stores one ordered list of listing ids per party. It
// backs both viewing history and favorites.
type PartyListRepository interface {
	Get(ctx context.Context, partyID string) ([]string, error)

	// Update replaces the party's list with fn(current) atomically and
	// returns the stored result.
	Update(ctx context.Context, partyID string, fn func(current []string) []string) ([]string, error)
}
