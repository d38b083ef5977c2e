package chat

import (
	"charm.land/lipgloss/v2"

	"github.com/pirizgpt/cli/internal/tui/styles"
)

// Status represents the current chat status.
type Status int

// Status constants.
const (
	StatusReady Status = iota
	StatusThinking
	StatusStreaming
	StatusListening
	StatusError
)

// StatusBar displays the current chat status.
type StatusBar struct {
	status   Status
	errorMsg string
	note     string
	speaking bool
	width    int
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	return &StatusBar{
		status: StatusReady,
	}
}

// SetStatus sets the current status.
func (s *StatusBar) SetStatus(status Status) {
	s.status = status
	if status == StatusReady {
		s.errorMsg = ""
		s.note = ""
	}
}

// SetError sets an error message.
func (s *StatusBar) SetError(msg string) {
	s.status = StatusError
	s.errorMsg = msg
}

// SetNote sets a transient note shown in place of the status text.
func (s *StatusBar) SetNote(note string) {
	s.note = note
}

// SetSpeaking toggles the speech indicator.
func (s *StatusBar) SetSpeaking(speaking bool) {
	s.speaking = speaking
}

// SetWidth sets the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// View renders the status bar.
func (s *StatusBar) View() string {
	t := styles.CurrentTheme()

	var statusText string
	var statusStyle lipgloss.Style

	switch s.status {
	case StatusReady:
		statusText = "Ready"
		statusStyle = t.S().Success
	case StatusThinking:
		statusText = "Thinking..."
		statusStyle = t.S().Info
	case StatusStreaming:
		statusText = "Streaming..."
		statusStyle = t.S().Info
	case StatusListening:
		statusText = "Listening..."
		statusStyle = t.S().Warning
	case StatusError:
		statusText = "Error: " + s.errorMsg
		statusStyle = t.S().Error
	}

	if s.note != "" {
		statusText = s.note
		statusStyle = t.S().Muted
	}

	if s.speaking {
		statusText = "🔊 " + statusText
	}

	barStyle := lipgloss.NewStyle().
		Width(s.width).
		Padding(0, 1).
		Background(t.BgSubtle)

	help := t.S().Muted.Render("Enter send • Esc cancel • Ctrl+O sessions • Ctrl+C quit")

	left := statusStyle.Render(statusText)
	right := help

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}

	content := left + lipgloss.NewStyle().Width(gap).Render("") + right

	return barStyle.Render(content)
}
