// Package api implements the HTTP client for the PirizGPT chat backend.
package api

import (
	"time"
)

// Message roles as used by the backend wire protocol.
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// Message is one entry of a session transcript.
// Messages are append-only; only the last bot message grows while a
// reply is streaming.
type Message struct {
	ID      string
	Role    string
	Content string
}

// Session describes one conversation thread known to the backend.
type Session struct {
	ID              string
	Title           string
	LastMessageTime time.Time
}

// sessionTimeLayouts are the timestamp formats the backend is known to
// emit for last_message_time. Parsing is best-effort; an unparseable
// value leaves the zero time.
var sessionTimeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func parseSessionTime(s string) time.Time {
	for _, layout := range sessionTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
