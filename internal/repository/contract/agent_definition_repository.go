package contract

import (
	"context"

	"ai-coderagent-be/internal/entity"
	"ai-coderagent-be/internal/repository/specification"
)

type AgentDefinitionRepository interface {
	Create(ctx context.Context, definition *entity.AgentDefinition) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AgentDefinition, error)
}
