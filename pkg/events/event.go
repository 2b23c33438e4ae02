package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CODER_GENERATION_STARTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Generation lifecycle event types emitted around each pipeline run.
const (
	TypeGenerationStarted   = "CODER_GENERATION_STARTED"
	TypeGenerationCompleted = "CODER_GENERATION_COMPLETED"
	TypeGenerationFailed    = "CODER_GENERATION_FAILED"
)

// BaseEvent is the standard Event implementation used across services.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
