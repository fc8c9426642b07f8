package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/rabiijabrour/workers-production-system/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered     EventType = "user_registered"
	EventWorkerAdded        EventType = "worker_added"
	EventProductionRecorded EventType = "production_recorded"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New builds an event with a fresh id and timestamp.
func New(eventType EventType, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID   string      `json:"user_id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// WorkerAddedPayload payload.
type WorkerAddedPayload struct {
	WorkerID   string `json:"worker_id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

// ProductionRecordedPayload payload.
type ProductionRecordedPayload struct {
	EntryID  int64  `json:"entry_id"`
	WorkerID string `json:"worker_id"`
	Pieces   int    `json:"pieces"`
}
