package unitofwork

import (
	"context"

	"ai-coderagent-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ProjectRepository() contract.ProjectRepository
	AgentDefinitionRepository() contract.AgentDefinitionRepository
	AgentExecutionRepository() contract.AgentExecutionRepository

	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
}
