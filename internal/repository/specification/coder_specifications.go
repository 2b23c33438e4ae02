package specification

import (
	"gorm.io/gorm"
)

// BySessionID filters chat messages by their derived session string
type BySessionID struct {
	SessionID string
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// ByAgentName filters agent definitions by their unique name
type ByAgentName struct {
	AgentName string
}

func (s ByAgentName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("agent_name = ?", s.AgentName)
}

// ByProjectName filters projects by their unique name
type ByProjectName struct {
	ProjectName string
}

func (s ByProjectName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("project_name = ?", s.ProjectName)
}
