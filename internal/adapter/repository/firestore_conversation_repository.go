package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"rentory/internal/domain/entity"
	"rentory/internal/domain/repository"
	"rentory/internal/domain/service"
	"rentory/pkg/errors"
	"rentory/pkg/logger"
)

const conversationsCollection = "conversations"

// firestoreConversationRepository stores each session as one document with
// its messages embedded in order.
type firestoreConversationRepository struct {
	client *firestore.Client
}

func NewFirestoreConversationRepository(client *firestore.Client) repository.ConversationRepository {
	return &firestoreConversationRepository{client: client}
}

func (r *firestoreConversationRepository) GetByID(ctx context.Context, id string) (*entity.ConversationSession, error) {
	doc, err := r.client.Collection(conversationsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Conversation", nil)
		}
		return nil, errors.Internal("Failed to get conversation", err)
	}

	var session entity.ConversationSession
	if err := doc.DataTo(&session); err != nil {
		return nil, errors.Internal("Failed to parse conversation data", err)
	}
	return &session, nil
}

func (r *firestoreConversationRepository) List(ctx context.Context) ([]*entity.ConversationSession, error) {
	iter := r.client.Collection(conversationsCollection).OrderBy("lastUpdated", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var sessions []*entity.ConversationSession
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Firestore error while iterating conversations: %v", err)
			return nil, errors.Internal("Failed to iterate conversations", err)
		}

		var session entity.ConversationSession
		if err := doc.DataTo(&session); err != nil {
			return nil, errors.Internal("Failed to parse conversation data", err)
		}
		sessions = append(sessions, &session)
	}
	return sessions, nil
}

func (r *firestoreConversationRepository) Append(ctx context.Context, id string, msg entity.Message, create repository.SessionFactory) (*entity.ConversationSession, bool, error) {
	ref := r.client.Collection(conversationsCollection).Doc(id)
	var (
		result  entity.ConversationSession
		created bool
	)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		created = false

		var current entity.ConversationSession
		doc, err := tx.Get(ref)
		switch {
		case err == nil:
			if err := doc.DataTo(&current); err != nil {
				return errors.Internal("Failed to parse conversation data", err)
			}
		case status.Code(err) == codes.NotFound:
			if create == nil {
				return errors.NotFound("Conversation", nil)
			}
			fresh, err := create()
			if err != nil {
				return err
			}
			fresh.ID = id
			current = fresh
			created = true
		default:
			return errors.Internal("Failed to get conversation", err)
		}

		result = service.AppendMessage(current, msg)
		return tx.Set(ref, result)
	})
	if err != nil {
		return nil, false, err
	}
	return &result, created, nil
}
