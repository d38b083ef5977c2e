package events

import "time"

// SessionEventType represents session-specific event types.
type SessionEventType string

// Session event type constants.
const (
	SessionEventSwitched SessionEventType = "switched"
	SessionEventDeleted  SessionEventType = "deleted"
	SessionEventReset    SessionEventType = "reset"
	SessionEventRefresh  SessionEventType = "refresh"
)

// SessionEvent represents a session lifecycle event.
type SessionEvent struct {
	SessionID string
	Type      SessionEventType
	Timestamp time.Time
}

// NewSessionSwitchedEvent creates a session switched event.
func NewSessionSwitchedEvent(id string) SessionEvent {
	return SessionEvent{
		SessionID: id,
		Type:      SessionEventSwitched,
		Timestamp: time.Now(),
	}
}

// NewSessionDeletedEvent creates a session deleted event.
func NewSessionDeletedEvent(id string) SessionEvent {
	return SessionEvent{
		SessionID: id,
		Type:      SessionEventDeleted,
		Timestamp: time.Now(),
	}
}

// NewSessionResetEvent creates an event announcing a fresh local session.
func NewSessionResetEvent(id string) SessionEvent {
	return SessionEvent{
		SessionID: id,
		Type:      SessionEventReset,
		Timestamp: time.Now(),
	}
}

// NewSessionRefreshEvent asks listeners to re-fetch the session list.
func NewSessionRefreshEvent() SessionEvent {
	return SessionEvent{
		Type:      SessionEventRefresh,
		Timestamp: time.Now(),
	}
}
