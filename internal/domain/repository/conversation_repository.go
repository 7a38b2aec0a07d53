package repository

import (
	"context"

	"rentory/internal/domain/entity"
)

// SessionFactory builds the session to materialize when an append targets
// an id that does not exist yet.
type SessionFactory func() (entity.ConversationSession, error)

type ConversationRepository interface {
	GetByID(ctx context.Context, id string) (*entity.ConversationSession, error)
	List(ctx context.Context) ([]*entity.ConversationSession, error)

	// Append adds msg to the session stored under id. If no such session
	// exists, create is called once and its result stored before the append.
	// Lookup, creation and append happen atomically, so concurrent first
	// sends never produce two sessions for one id.
	Append(ctx context.Context, id string, msg entity.Message, create SessionFactory) (*entity.ConversationSession, bool, error)
}
