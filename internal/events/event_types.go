package events

import (
	"time"

	"github.com/peopleops/hr-console/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequestRejected EventType = "request_rejected"
	EventSessionStarted  EventType = "session_started"
	EventSessionEnded    EventType = "session_ended"
)

// EndReason explains why a session ended.
type EndReason string

const (
	EndLogout   EndReason = "logout"
	EndExpired  EndReason = "expired"
	EndInvalid  EndReason = "invalid"
	EndRejected EndReason = "rejected"
)

// Event represents a client-side event.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RequestRejectedPayload describes a backend call answered with 401.
type RequestRejectedPayload struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Status int    `json:"status"`
}

// SessionStartedPayload payload.
type SessionStartedPayload struct {
	Identity domain.Identity `json:"identity"`
	Restored bool            `json:"restored"`
}

// SessionEndedPayload payload.
type SessionEndedPayload struct {
	Reason   EndReason        `json:"reason"`
	Identity *domain.Identity `json:"identity,omitempty"`
}
