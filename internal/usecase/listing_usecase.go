package usecase

import (
	"context"

	"rentory/internal/domain/entity"
	"rentory/internal/domain/repository"
	"rentory/pkg/errors"
	"rentory/pkg/logger"
)

type ListingUseCase struct {
	listingRepo repository.ListingRepository
	history     *HistoryUseCase
}

func NewListingUseCase(listingRepo repository.ListingRepository, history *HistoryUseCase) *ListingUseCase {
	return &ListingUseCase{
		listingRepo: listingRepo,
		history:     history,
	}
}

func (uc *ListingUseCase) ListListings(ctx context.Context) ([]*entity.Listing, error) {
	listings, err := uc.listingRepo.List(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to list listings", err)
	}
	return listings, nil
}

// GetListing returns the listing and records it in viewerID's history.
func (uc *ListingUseCase) GetListing(ctx context.Context, viewerID, listingID string) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, errors.NotFound("Listing", err)
	}

	if uc.history != nil && viewerID != "" {
		if _, err := uc.history.RecordView(ctx, viewerID, listing.ID); err != nil {
			logger.Warn("Failed to record view of %s by %s: %v", listing.ID, viewerID, err)
		}
	}

	return listing, nil
}
