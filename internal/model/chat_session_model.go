package model

import (
	"time"

	"gorm.io/gorm"
)

// ChatSession rows are keyed by the derived hierarchical session string
// ("{userSession}_{projectId}_{executionId}"), not a UUID.
type ChatSession struct {
	Id        string         `gorm:"type:varchar(255);primaryKey"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
