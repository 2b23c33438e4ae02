package entity

import (
	"time"

	"github.com/google/uuid"
)

// ExecutionStatus tracks the lifecycle of one pipeline invocation. A record
// leaves STARTED exactly once, into one of the three terminal states.
type ExecutionStatus string

const (
	ExecutionStatusStarted          ExecutionStatus = "STARTED"
	ExecutionStatusCompleted        ExecutionStatus = "COMPLETED"
	ExecutionStatusAwaitingFeedback ExecutionStatus = "AWAITING_FEEDBACK"
	ExecutionStatusFailed           ExecutionStatus = "FAILED"
)

type AgentDefinition struct {
	Id              uuid.UUID
	AgentName       string
	AgentCategory   string
	Description     string
	CreatedByUserId uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

type AgentExecution struct {
	Id                uuid.UUID
	ProjectId         uuid.UUID
	AgentDefId        uuid.UUID
	TriggeredByUserId uuid.UUID
	UserPrompt        string
	Status            ExecutionStatus
	AgentResponseText string
	ChatTraceName     string
	CreatedAt         time.Time
	CompletedAt       *time.Time
}
