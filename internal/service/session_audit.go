package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/peopleops/hr-console/internal/events"
)

// AuditEntry is one remembered session event.
type AuditEntry struct {
	Type     events.EventType
	At       time.Time
	UserID   string
	Reason   events.EndReason
	Restored bool
}

// SessionAudit logs session lifecycle events and keeps the latest ones.
type SessionAudit struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	capacity   int

	mu      sync.Mutex
	entries []AuditEntry
}

// NewSessionAudit creates the auditor. capacity bounds the history.
func NewSessionAudit(dispatcher events.Dispatcher, logger *zap.Logger, capacity int) *SessionAudit {
	if logger == nil {
		logger = zap.NewNop()
	}
	if capacity <= 0 {
		capacity = 50
	}
	return &SessionAudit{dispatcher: dispatcher, logger: logger, capacity: capacity}
}

// RegisterHandlers subscribes to events.
func (a *SessionAudit) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventSessionStarted, a.handleSessionStarted)
	a.dispatcher.Subscribe(events.EventSessionEnded, a.handleSessionEnded)
	a.dispatcher.Subscribe(events.EventRequestRejected, a.handleRequestRejected)
}

// Entries returns the remembered events, oldest first.
func (a *SessionAudit) Entries() []AuditEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]AuditEntry(nil), a.entries...)
}

func (a *SessionAudit) handleSessionStarted(_ context.Context, event events.Event) error {
	p, _ := event.Payload.(events.SessionStartedPayload)
	a.logger.Info("SessionStarted",
		zap.String("event_id", event.ID),
		zap.String("user_id", p.Identity.ID),
		zap.String("role", string(p.Identity.Role)),
		zap.Bool("restored", p.Restored))
	a.remember(AuditEntry{Type: event.Type, At: event.Timestamp, UserID: p.Identity.ID, Restored: p.Restored})
	return nil
}

func (a *SessionAudit) handleSessionEnded(_ context.Context, event events.Event) error {
	p, _ := event.Payload.(events.SessionEndedPayload)
	entry := AuditEntry{Type: event.Type, At: event.Timestamp, Reason: p.Reason}
	if p.Identity != nil {
		entry.UserID = p.Identity.ID
	}
	a.logger.Info("SessionEnded",
		zap.String("event_id", event.ID),
		zap.String("user_id", entry.UserID),
		zap.String("reason", string(p.Reason)))
	a.remember(entry)
	return nil
}

func (a *SessionAudit) handleRequestRejected(_ context.Context, event events.Event) error {
	p, _ := event.Payload.(events.RequestRejectedPayload)
	a.logger.Warn("RequestRejected",
		zap.String("event_id", event.ID),
		zap.String("method", p.Method),
		zap.String("path", p.Path),
		zap.Int("status", p.Status))
	a.remember(AuditEntry{Type: event.Type, At: event.Timestamp})
	return nil
}

func (a *SessionAudit) remember(entry AuditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
	if over := len(a.entries) - a.capacity; over > 0 {
		a.entries = append([]AuditEntry(nil), a.entries[over:]...)
	}
}
