package contract

import (
	"context"

	"ai-coderagent-be/internal/entity"
	"ai-coderagent-be/internal/repository/specification"
)

type AgentExecutionRepository interface {
	Create(ctx context.Context, execution *entity.AgentExecution) error
	Update(ctx context.Context, execution *entity.AgentExecution) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AgentExecution, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AgentExecution, error)
}
