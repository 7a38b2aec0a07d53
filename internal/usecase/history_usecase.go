package usecase

import (
	"context"

	"rentory/internal/domain/repository"
	"rentory/internal/domain/service"
	"rentory/pkg/errors"
)

// HistoryUseCase keeps each party's most recently viewed listings.
type HistoryUseCase struct {
	historyRepo repository.PartyListRepository
	listingRepo repository.ListingRepository
	cache       service.RecencyCache
}

func NewHistoryUseCase(historyRepo repository.PartyListRepository, listingRepo repository.ListingRepository, capacity int) *HistoryUseCase {
	return &HistoryUseCase{
		historyRepo: historyRepo,
		listingRepo: listingRepo,
		cache:       service.NewRecencyCache(capacity),
	}
}

func (uc *HistoryUseCase) RecordView(ctx context.Context, partyID, listingID string) ([]string, error) {
	if _, err := uc.listingRepo.GetByID(ctx, listingID); err != nil {
		return nil, errors.NotFound("Listing", err)
	}

	ids, err := uc.historyRepo.Update(ctx, partyID, func(current []string) []string {
		return uc.cache.Touch(current, listingID)
	})
	if err != nil {
		return nil, errors.Internal("Failed to record view", err)
	}
	return ids, nil
}

func (uc *HistoryUseCase) GetHistory(ctx context.Context, partyID string) ([]string, error) {
	ids, err := uc.historyRepo.Get(ctx, partyID)
	if err != nil {
		return nil, errors.Internal("Failed to load history", err)
	}
	return ids, nil
}
