package contract

import (
	"context"

	"ai-coderagent-be/internal/entity"
	"ai-coderagent-be/internal/repository/specification"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	DeleteBySessionId(ctx context.Context, sessionId string) error
}
