package usecase

import (
	"context"

	"rentory/internal/domain/repository"
	"rentory/internal/domain/service"
	"rentory/pkg/errors"
	"rentory/pkg/logger"
)

type FavoriteUseCase struct {
	favoriteRepo repository.PartyListRepository
	listingRepo  repository.ListingRepository
}

func NewFavoriteUseCase(favoriteRepo repository.PartyListRepository, listingRepo repository.ListingRepository) *FavoriteUseCase {
	return &FavoriteUseCase{
		favoriteRepo: favoriteRepo,
		listingRepo:  listingRepo,
	}
}

// FavoriteToggle is the favorites list after a toggle and whether the
// toggled listing is now in it.
type FavoriteToggle struct {
	ListingIDs []string `json:"listing_ids"`
	Favorite   bool     `json:"favorite"`
}

func (uc *FavoriteUseCase) Toggle(ctx context.Context, partyID, listingID string) (*FavoriteToggle, error) {
	if _, err := uc.listingRepo.GetByID(ctx, listingID); err != nil {
		return nil, errors.NotFound("Listing", err)
	}

	var favorite bool
	ids, err := uc.favoriteRepo.Update(ctx, partyID, func(current []string) []string {
		next, now := service.ToggleFavorite(current, listingID)
		favorite = now
		return next
	})
	if err != nil {
		return nil, errors.Internal("Failed to update favorites", err)
	}

	logger.Debug("Favorite %s for %s is now %t", listingID, partyID, favorite)
	return &FavoriteToggle{ListingIDs: ids, Favorite: favorite}, nil
}

func (uc *FavoriteUseCase) List(ctx context.Context, partyID string) ([]string, error) {
	ids, err := uc.favoriteRepo.Get(ctx, partyID)
	if err != nil {
		return nil, errors.Internal("Failed to load favorites", err)
	}
	return ids, nil
}

func (uc *FavoriteUseCase) IsFavorite(ctx context.Context, partyID, listingID string) (bool, error) {
	ids, err := uc.List(ctx, partyID)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == listingID {
			return true, nil
		}
	}
	return false, nil
}
