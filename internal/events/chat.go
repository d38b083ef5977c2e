// Package events defines domain-specific event types for the pub/sub system.
package events

import (
	"time"
)

// ChatEventType represents chat streaming event types.
type ChatEventType string

// Chat event type constants.
const (
	ChatEventTextDelta ChatEventType = "text_delta"
	ChatEventComplete  ChatEventType = "complete"
	ChatEventError     ChatEventType = "error"
	ChatEventCancelled ChatEventType = "cancelled"
)

// ChatEvent represents one step of a streaming reply.
type ChatEvent struct { //nolint:govet // fieldalignment: preserving logical field order
	SessionID string
	Type      ChatEventType
	Timestamp time.Time

	// Payload fields (only one populated per event type)
	TextDelta string // For TextDelta
	FullText  string // For Complete: the whole accumulated reply
	Error     string // For Error
}

// NewTextDeltaEvent creates a text delta event.
func NewTextDeltaEvent(sessionID, delta string) ChatEvent {
	return ChatEvent{
		SessionID: sessionID,
		Type:      ChatEventTextDelta,
		TextDelta: delta,
		Timestamp: time.Now(),
	}
}

// NewCompleteEvent creates a completion event carrying the full reply.
func NewCompleteEvent(sessionID, fullText string) ChatEvent {
	return ChatEvent{
		SessionID: sessionID,
		Type:      ChatEventComplete,
		FullText:  fullText,
		Timestamp: time.Now(),
	}
}

// NewErrorEvent creates an error event.
func NewErrorEvent(sessionID, message string) ChatEvent {
	return ChatEvent{
		SessionID: sessionID,
		Type:      ChatEventError,
		Error:     message,
		Timestamp: time.Now(),
	}
}

// NewCancelledEvent creates a cancelled event.
func NewCancelledEvent(sessionID string) ChatEvent {
	return ChatEvent{
		SessionID: sessionID,
		Type:      ChatEventCancelled,
		Timestamp: time.Now(),
	}
}
