package sessions

import "github.com/pirizgpt/cli/internal/api"

// ModalClosedMsg is sent when the modal is closed.
type ModalClosedMsg struct{}

// SessionsLoadedMsg delivers a session list fetched off the UI goroutine.
type SessionsLoadedMsg struct {
	Sessions []api.Session
}

// DeleteResolvedMsg reports the outcome of a confirmed deletion.
type DeleteResolvedMsg struct {
	Err error
}

// SwitchSessionMsg asks the root model to switch the active session.
type SwitchSessionMsg struct {
	SessionID string
}

// SessionSelectedMsg is sent when a session is selected from the list.
type SessionSelectedMsg struct {
	SessionID string
}

// DeleteSessionMsg is sent to start the delete confirmation flow.
type DeleteSessionMsg struct {
	SessionID string
}

// NewSessionMsg asks the root model to start a fresh session.
type NewSessionMsg struct{}
