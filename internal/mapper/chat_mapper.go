package mapper

import (
	"ai-coderagent-be/internal/entity"
	"ai-coderagent-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) SessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}
	return &entity.ChatSession{
		Id:        s.Id,
		CreatedAt: s.CreatedAt,
	}
}

func (m *ChatMapper) SessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}
	return &model.ChatSession{
		Id:        s.Id,
		CreatedAt: s.CreatedAt,
	}
}

func (m *ChatMapper) MessageToEntity(c *model.ChatMessage) *entity.ChatMessage {
	if c == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:        c.Id,
		SessionId: c.SessionId,
		Role:      c.Role,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func (m *ChatMapper) MessageToModel(c *entity.ChatMessage) *model.ChatMessage {
	if c == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:        c.Id,
		SessionId: c.SessionId,
		Role:      c.Role,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}
