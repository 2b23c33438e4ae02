package mapper

import (
	"time"

	"ai-coderagent-be/internal/entity"
	"ai-coderagent-be/internal/model"
)

type AgentMapper struct{}

func NewAgentMapper() *AgentMapper {
	return &AgentMapper{}
}

func (m *AgentMapper) DefinitionToEntity(d *model.AgentDefinition) *entity.AgentDefinition {
	if d == nil {
		return nil
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.AgentDefinition{
		Id:              d.Id,
		AgentName:       d.AgentName,
		AgentCategory:   d.AgentCategory,
		Description:     d.Description,
		CreatedByUserId: d.CreatedByUserId,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *AgentMapper) DefinitionToModel(d *entity.AgentDefinition) *model.AgentDefinition {
	if d == nil {
		return nil
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	return &model.AgentDefinition{
		Id:              d.Id,
		AgentName:       d.AgentName,
		AgentCategory:   d.AgentCategory,
		Description:     d.Description,
		CreatedByUserId: d.CreatedByUserId,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *AgentMapper) ExecutionToEntity(e *model.AgentExecution) *entity.AgentExecution {
	if e == nil {
		return nil
	}

	return &entity.AgentExecution{
		Id:                e.Id,
		ProjectId:         e.ProjectId,
		AgentDefId:        e.AgentDefId,
		TriggeredByUserId: e.TriggeredByUserId,
		UserPrompt:        e.UserPrompt,
		Status:            entity.ExecutionStatus(e.Status),
		AgentResponseText: e.AgentResponseText,
		ChatTraceName:     e.ChatTraceName,
		CreatedAt:         e.CreatedAt,
		CompletedAt:       e.CompletedAt,
	}
}

func (m *AgentMapper) ExecutionToModel(e *entity.AgentExecution) *model.AgentExecution {
	if e == nil {
		return nil
	}

	return &model.AgentExecution{
		Id:                e.Id,
		ProjectId:         e.ProjectId,
		AgentDefId:        e.AgentDefId,
		TriggeredByUserId: e.TriggeredByUserId,
		UserPrompt:        e.UserPrompt,
		Status:            string(e.Status),
		AgentResponseText: e.AgentResponseText,
		ChatTraceName:     e.ChatTraceName,
		CreatedAt:         e.CreatedAt,
		CompletedAt:       e.CompletedAt,
	}
}
