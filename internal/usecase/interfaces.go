package usecase

import (
	"context"
	"time"

	"rentory/internal/domain/entity"
	"rentory/internal/domain/repository"
	"rentory/pkg/errors"
)

// EventNotifier receives registry and lease changes for realtime push.
type EventNotifier interface {
	MessageAppended(session entity.ConversationSession, msg entity.Message, created bool)
	LeaseUpdated(lease entity.Lease)
}

type TokenIssuer interface {
	Issue(accountID, role string) (string, time.Time, error)
}

type RateLimiter interface {
	Allow(key, action string) (bool, time.Duration)
}

type noopNotifier struct{}

func (noopNotifier) MessageAppended(entity.ConversationSession, entity.Message, bool) {}
func (noopNotifier) LeaseUpdated(entity.Lease)                                       {}

// loadActor resolves an account id into its actor variant.
func loadActor(ctx context.Context, accounts repository.AccountRepository, id string) (entity.Actor, error) {
	account, err := accounts.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Unauthorized("Unknown account", err)
	}
	if !account.IsActive() {
		return nil, errors.Forbidden("Account is not active", nil)
	}
	actor := account.Actor()
	if actor == nil {
		return nil, errors.Forbidden("Account has no usable role", nil)
	}
	return actor, nil
}
