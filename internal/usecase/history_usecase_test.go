package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentory/internal/adapter/repository"
	"rentory/internal/domain/entity"
	"rentory/pkg/errors"
)

func TestHistoryUseCase_RecordView(t *testing.T) {
	uc := NewHistoryUseCase(repository.NewMemoryPartyListRepository(), repository.NewMemoryListingRepository(testListings()), 10)
	ctx := context.Background()

	for _, id := range []string{"p1", "p2", "p3", "p1"} {
		_, err := uc.RecordView(ctx, "u1", id)
		require.NoError(t, err)
	}

	ids, err := uc.GetHistory(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p3", "p2"}, ids)

	other, err := uc.GetHistory(ctx, "u5")
	require.NoError(t, err)
	assert.Empty(t, other)

	_, err = uc.RecordView(ctx, "u1", "p404")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestHistoryUseCase_Capacity(t *testing.T) {
	var listings []entity.Listing
	for i := 0; i < 15; i++ {
		listings = append(listings, entity.Listing{ID: fmt.Sprintf("p%d", i)})
	}
	uc := NewHistoryUseCase(repository.NewMemoryPartyListRepository(), repository.NewMemoryListingRepository(listings), 0)
	ctx := context.Background()

	var ids []string
	for _, l := range listings {
		var err error
		ids, err = uc.RecordView(ctx, "u1", l.ID)
		require.NoError(t, err)
	}

	require.Len(t, ids, 10)
	assert.Equal(t, "p14", ids[0])
	assert.Equal(t, "p5", ids[9])
}

func TestListingUseCase_GetListingRecordsView(t *testing.T) {
	listings := repository.NewMemoryListingRepository(testListings())
	history := NewHistoryUseCase(repository.NewMemoryPartyListRepository(), listings, 10)
	uc := NewListingUseCase(listings, history)
	ctx := context.Background()

	listing, err := uc.GetListing(ctx, "u1", "p2")
	require.NoError(t, err)
	assert.Equal(t, "Lekki Garden Duplex", listing.Title)

	ids, err := history.GetHistory(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, ids)

	_, err = uc.GetListing(ctx, "u1", "p404")
	assert.True(t, errors.Is(err, errors.CodeNotFound))

	all, err := uc.ListListings(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
