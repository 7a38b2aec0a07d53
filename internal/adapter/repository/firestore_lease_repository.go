package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"rentory/internal/domain/entity"
	"rentory/internal/domain/repository"
	"rentory/pkg/errors"
	"rentory/pkg/logger"
)

const leasesCollection = "leases"

type firestoreLeaseRepository struct {
	client *firestore.Client
}

func NewFirestoreLeaseRepository(client *firestore.Client) repository.LeaseRepository {
	return &firestoreLeaseRepository{client: client}
}

func (r *firestoreLeaseRepository) Create(ctx context.Context, lease *entity.Lease) error {
	_, err := r.client.Collection(leasesCollection).Doc(lease.ID).Create(ctx, lease)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errors.Conflict("Lease already exists")
		}
		return errors.Internal("Failed to create lease", err)
	}
	return nil
}

func (r *firestoreLeaseRepository) GetByID(ctx context.Context, id string) (*entity.Lease, error) {
	doc, err := r.client.Collection(leasesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Lease", nil)
		}
		return nil, errors.Internal("Failed to get lease", err)
	}

	var lease entity.Lease
	if err := doc.DataTo(&lease); err != nil {
		return nil, errors.Internal("Failed to parse lease data", err)
	}
	return &lease, nil
}

func (r *firestoreLeaseRepository) List(ctx context.Context) ([]*entity.Lease, error) {
	iter := r.client.Collection(leasesCollection).OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var leases []*entity.Lease
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Firestore error while iterating leases: %v", err)
			return nil, errors.Internal("Failed to iterate leases", err)
		}

		var lease entity.Lease
		if err := doc.DataTo(&lease); err != nil {
			return nil, errors.Internal("Failed to parse lease data", err)
		}
		leases = append(leases, &lease)
	}
	return leases, nil
}

// Update runs fn inside a Firestore transaction. Firestore may retry the
// transaction, so fn can be called more than once and must not have side
// effects.
func (r *firestoreLeaseRepository) Update(ctx context.Context, id string, fn repository.LeaseMutation) (*entity.Lease, error) {
	ref := r.client.Collection(leasesCollection).Doc(id)
	var result entity.Lease

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Lease", nil)
			}
			return errors.Internal("Failed to get lease", err)
		}

		var current entity.Lease
		if err := doc.DataTo(&current); err != nil {
			return errors.Internal("Failed to parse lease data", err)
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		next.ID = id
		result = next
		return tx.Set(ref, next)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
