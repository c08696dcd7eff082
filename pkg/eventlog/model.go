package eventlog

import (
	"time"

	"github.com/google/uuid"
)

// Action is the kind of activity recorded by an event
type Action string

const (
	ActionMessageReceived Action = "message received"
	ActionMessageSent     Action = "message sent"
)

// Actions is the closed set of actions an interior event may take
var Actions = []Action{ActionMessageReceived, ActionMessageSent}

// Event represents a single simulated action within a session
type Event struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	Action    Action    `json:"action" yaml:"action"`
	SessionID uuid.UUID `json:"sid" yaml:"sid"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// NewEvent creates a new event with a generated UUID
func NewEvent(sessionID uuid.UUID, action Action, ts time.Time) Event {
	return Event{
		ID:        uuid.New(),
		Action:    action,
		SessionID: sessionID,
		Timestamp: ts.UTC(),
	}
}
