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

type AgentDefinitionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AgentMapper
}

func NewAgentDefinitionRepository(db *gorm.DB) contract.AgentDefinitionRepository {
	return &AgentDefinitionRepositoryImpl{
		db:     db,
		mapper: mapper.NewAgentMapper(),
	}
}

func (r *AgentDefinitionRepositoryImpl) Create(ctx context.Context, definition *entity.AgentDefinition) error {
	m := r.mapper.DefinitionToModel(definition)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*definition = *r.mapper.DefinitionToEntity(m)
	return nil
}

func (r *AgentDefinitionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AgentDefinition, error) {
	var m model.AgentDefinition
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.DefinitionToEntity(&m), nil
}
