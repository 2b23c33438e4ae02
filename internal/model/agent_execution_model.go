package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AgentExecution struct {
	Id                uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProjectId         uuid.UUID      `gorm:"type:uuid;not null;index"`
	AgentDefId        uuid.UUID      `gorm:"type:uuid;not null;index"`
	TriggeredByUserId uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserPrompt        string         `gorm:"type:text;not null"`
	Status            string         `gorm:"type:varchar(50);not null"`
	AgentResponseText string         `gorm:"type:text"`
	ChatTraceName     string         `gorm:"type:varchar(255)"`
	CreatedAt         time.Time      `gorm:"autoCreateTime"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime"`
	CompletedAt       *time.Time     `gorm:""`
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

func (AgentExecution) TableName() string {
	return "agent_executions"
}
