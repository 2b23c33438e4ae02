package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AgentDefinition struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AgentName       string         `gorm:"type:varchar(100);not null;uniqueIndex"`
	AgentCategory   string         `gorm:"type:varchar(100);not null"`
	Description     string         `gorm:"type:text"`
	CreatedByUserId uuid.UUID      `gorm:"type:uuid;not null"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (AgentDefinition) TableName() string {
	return "agent_definitions"
}
