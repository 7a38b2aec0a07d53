package repository

import (
	"context"
	"sort"
	"sync"

	"rentory/internal/domain/entity"
	"rentory/internal/domain/repository"
	"rentory/internal/domain/service"
	"rentory/pkg/errors"
)

type memoryConversationRepository struct {
	mu       sync.RWMutex
	sessions map[string]entity.ConversationSession
}

func NewMemoryConversationRepository(seed ...entity.ConversationSession) repository.ConversationRepository {
	r := &memoryConversationRepository{sessions: make(map[string]entity.ConversationSession, len(seed))}
	for _, s := range seed {
		r.sessions[s.ID] = s.Clone()
	}
	return r
}

func (r *memoryConversationRepository) GetByID(ctx context.Context, id string) (*entity.ConversationSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, errors.NotFound("Conversation", nil)
	}
	out := s.Clone()
	return &out, nil
}

// List returns sessions most recently updated first.
func (r *memoryConversationRepository) List(ctx context.Context) ([]*entity.ConversationSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.ConversationSession, 0, len(r.sessions))
	for _, s := range r.sessions {
		c := s.Clone()
		out = append(out, &c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LastUpdated.Equal(out[j].LastUpdated) {
			return out[i].ID < out[j].ID
		}
		return out[i].LastUpdated.After(out[j].LastUpdated)
	})
	return out, nil
}

func (r *memoryConversationRepository) Append(ctx context.Context, id string, msg entity.Message, create repository.SessionFactory) (*entity.ConversationSession, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.sessions[id]
	if !exists {
		if create == nil {
			return nil, false, errors.NotFound("Conversation", nil)
		}
		fresh, err := create()
		if err != nil {
			return nil, false, err
		}
		fresh.ID = id
		current = fresh
	}

	next := service.AppendMessage(current, msg)
	r.sessions[id] = next
	out := next.Clone()
	return &out, !exists, nil
}
