package contract

import (
	"context"

	"ai-coderagent-be/internal/entity"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	FindById(ctx context.Context, id string) (*entity.ChatSession, error)
}
