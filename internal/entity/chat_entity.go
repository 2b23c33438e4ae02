package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id        string
	CreatedAt time.Time
}

type ChatMessage struct {
	Id        uuid.UUID
	SessionId string
	Role      string
	Content   string
	CreatedAt time.Time
}
