package service

import (
	"context"
	"time"

	"ai-coderagent-be/internal/entity"
	"ai-coderagent-be/internal/repository/memory"
	"ai-coderagent-be/internal/repository/specification"
	"ai-coderagent-be/internal/repository/unitofwork"
	"ai-coderagent-be/pkg/llm"

	"github.com/google/uuid"
)

// IMemoryService is the conversation store the pipeline reads from and writes
// to. Recent satisfies the history contract of the context loader.
type IMemoryService interface {
	EnsureSession(ctx context.Context, sessionId string) error
	AppendMessage(ctx context.Context, sessionId, role, content string) error
	Recent(ctx context.Context, sessionId string, limit int) ([]llm.Message, error)
}

// dbMemoryService persists conversation turns in postgres. Used by the
// database-backed deployment.
type dbMemoryService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewDbMemoryService(uowFactory unitofwork.RepositoryFactory) IMemoryService {
	return &dbMemoryService{uowFactory: uowFactory}
}

func (s *dbMemoryService) EnsureSession(ctx context.Context, sessionId string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.ChatSessionRepository().FindById(ctx, sessionId)
	if err != nil {
		return err
	}
	if session != nil {
		return nil
	}
	return uow.ChatSessionRepository().Create(ctx, &entity.ChatSession{
		Id:        sessionId,
		CreatedAt: time.Now(),
	})
}

func (s *dbMemoryService) AppendMessage(ctx context.Context, sessionId, role, content string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatMessageRepository().Create(ctx, &entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: sessionId,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	})
}

func (s *dbMemoryService) Recent(ctx context.Context, sessionId string, limit int) ([]llm.Message, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{N: limit},
	)
	if err != nil {
		return nil, err
	}

	// Query returns newest first; the prompt wants chronological order.
	out := make([]llm.Message, len(messages))
	for i, msg := range messages {
		out[len(messages)-1-i] = llm.Message{Role: msg.Role, Content: msg.Content}
	}
	return out, nil
}

// localMemoryService keeps conversation turns in process memory. Used by the
// standalone deployment.
type localMemoryService struct {
	store *memory.ConversationRepository
}

func NewLocalMemoryService(store *memory.ConversationRepository) IMemoryService {
	return &localMemoryService{store: store}
}

func (s *localMemoryService) EnsureSession(ctx context.Context, sessionId string) error {
	_, err := s.store.EnsureSession(ctx, sessionId)
	return err
}

func (s *localMemoryService) AppendMessage(ctx context.Context, sessionId, role, content string) error {
	return s.store.AppendMessage(ctx, &entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: sessionId,
		Role:      role,
		Content:   content,
	})
}

func (s *localMemoryService) Recent(ctx context.Context, sessionId string, limit int) ([]llm.Message, error) {
	messages, err := s.store.Recent(ctx, sessionId, limit)
	if err != nil {
		return nil, err
	}
	out := make([]llm.Message, len(messages))
	for i, msg := range messages {
		out[i] = llm.Message{Role: msg.Role, Content: msg.Content}
	}
	return out, nil
}
