// Package bridge provides the connection between the pub/sub system and Bubble Tea.
package bridge

import (
	"github.com/pirizgpt/cli/internal/events"
	"github.com/pirizgpt/cli/internal/pubsub"
)

// ChatEventMsg wraps a chat stream event for the TUI.
type ChatEventMsg struct {
	Event pubsub.Event[events.ChatEvent]
}

// SessionEventMsg wraps a session event for the TUI.
type SessionEventMsg struct {
	Event pubsub.Event[events.SessionEvent]
}

// ErrorMsg indicates an error in the bridge.
type ErrorMsg struct { //nolint:govet // fieldalignment: preserving logical field order
	Source string
	Error  error
}
