package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"rentory/internal/domain/repository"
	"rentory/pkg/errors"
)

const (
	FavoritesCollection   = "favorites"
	ViewHistoryCollection = "view_history"
)

type partyListDoc struct {
	PartyID    string   `firestore:"partyId"`
	ListingIDs []string `firestore:"listingIds"`
}

// firestorePartyListRepository keeps one document per party in collection.
type firestorePartyListRepository struct {
	client     *firestore.Client
	collection string
}

func NewFirestorePartyListRepository(client *firestore.Client, collection string) repository.PartyListRepository {
	return &firestorePartyListRepository{client: client, collection: collection}
}

func (r *firestorePartyListRepository) Get(ctx context.Context, partyID string) ([]string, error) {
	doc, err := r.client.Collection(r.collection).Doc(partyID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return []string{}, nil
		}
		return nil, errors.Internal("Failed to get "+r.collection, err)
	}

	var data partyListDoc
	if err := doc.DataTo(&data); err != nil {
		return nil, errors.Internal("Failed to parse "+r.collection, err)
	}
	return data.ListingIDs, nil
}

func (r *firestorePartyListRepository) Update(ctx context.Context, partyID string, fn func(current []string) []string) ([]string, error) {
	ref := r.client.Collection(r.collection).Doc(partyID)
	var result []string

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var data partyListDoc
		doc, err := tx.Get(ref)
		if err != nil && status.Code(err) != codes.NotFound {
			return errors.Internal("Failed to get "+r.collection, err)
		}
		if err == nil {
			if err := doc.DataTo(&data); err != nil {
				return errors.Internal("Failed to parse "+r.collection, err)
			}
		}

		result = fn(append([]string{}, data.ListingIDs...))
		return tx.Set(ref, partyListDoc{PartyID: partyID, ListingIDs: result})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
