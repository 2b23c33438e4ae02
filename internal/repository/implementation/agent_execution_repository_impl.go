package implementation

import (
	"context"
	"errors"

	"ai-coderagent-be/internal/entity"
	"ai-coderagent-be/internal/mapper"
	"ai-coderagent-be/internal/model"
	"ai-coderagent-be/internal/repository/contract"
	"ai-coderagent-be/internal/repository/specification"

	"gorm.io/gorm"
)

type AgentExecutionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AgentMapper
}

func NewAgentExecutionRepository(db *gorm.DB) contract.AgentExecutionRepository {
	return &AgentExecutionRepositoryImpl{
		db:     db,
		mapper: mapper.NewAgentMapper(),
	}
}

func (r *AgentExecutionRepositoryImpl) Create(ctx context.Context, execution *entity.AgentExecution) error {
	m := r.mapper.ExecutionToModel(execution)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*execution = *r.mapper.ExecutionToEntity(m)
	return nil
}

func (r *AgentExecutionRepositoryImpl) Update(ctx context.Context, execution *entity.AgentExecution) error {
	m := r.mapper.ExecutionToModel(execution)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*execution = *r.mapper.ExecutionToEntity(m)
	return nil
}

func (r *AgentExecutionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AgentExecution, error) {
	var m model.AgentExecution
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ExecutionToEntity(&m), nil
}

func (r *AgentExecutionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AgentExecution, error) {
	var models []*model.AgentExecution
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.AgentExecution, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ExecutionToEntity(m)
	}
	return entities, nil
}
