package memory

import (
	"context"
	"sync"
	"time"

	"ai-coderagent-be/internal/entity"

	gocache "github.com/patrickmn/go-cache"
)

// ConversationRepository keeps chat sessions and their messages in process
// memory. It backs the standalone deployment where no database is attached.
type ConversationRepository struct {
	mu       sync.Mutex
	sessions *gocache.Cache
}

type sessionRecord struct {
	Session  entity.ChatSession
	Messages []entity.ChatMessage
}

func NewConversationRepository() *ConversationRepository {
	return &ConversationRepository{
		sessions: gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

// EnsureSession creates the session if it does not exist yet and reports
// whether it was created.
func (r *ConversationRepository) EnsureSession(ctx context.Context, sessionId string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, found := r.sessions.Get(sessionId); found {
		return false, nil
	}
	r.sessions.Set(sessionId, &sessionRecord{
		Session: entity.ChatSession{
			Id:        sessionId,
			CreatedAt: time.Now(),
		},
	}, gocache.NoExpiration)
	return true, nil
}

func (r *ConversationRepository) AppendMessage(ctx context.Context, message *entity.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := r.record(message.SessionId)
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	rec.Messages = append(rec.Messages, *message)
	return nil
}

// Recent returns up to limit messages for the session, oldest first.
func (r *ConversationRepository) Recent(ctx context.Context, sessionId string, limit int) ([]entity.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	raw, found := r.sessions.Get(sessionId)
	if !found {
		return nil, nil
	}
	rec := raw.(*sessionRecord)
	messages := rec.Messages
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	out := make([]entity.ChatMessage, len(messages))
	copy(out, messages)
	return out, nil
}

func (r *ConversationRepository) record(sessionId string) *sessionRecord {
	if raw, found := r.sessions.Get(sessionId); found {
		return raw.(*sessionRecord)
	}
	rec := &sessionRecord{
		Session: entity.ChatSession{
			Id:        sessionId,
			CreatedAt: time.Now(),
		},
	}
	r.sessions.Set(sessionId, rec, gocache.NoExpiration)
	return rec
}
