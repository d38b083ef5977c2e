// Package welcome provides the welcome/splash screen for PirizGPT CLI.
package welcome

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/pirizgpt/cli/internal/tui/styles"
	"github.com/pirizgpt/cli/internal/tui/util"
)

// StartChatMsg is sent when the user wants to start chatting.
type StartChatMsg struct{}

// Welcome displays the welcome screen.
type Welcome struct {
	serverURL string
	width     int
	height    int
}

// New creates a new welcome screen.
func New(serverURL string) *Welcome {
	return &Welcome{serverURL: serverURL}
}

// Init initializes the welcome screen.
func (w *Welcome) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (w *Welcome) Update(msg tea.Msg) (util.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter", " ":
			return w, util.CmdHandler(StartChatMsg{})
		case "q", "ctrl+c":
			return w, tea.Quit
		}
	}
	return w, nil
}

// View renders the welcome screen.
func (w *Welcome) View() string {
	t := styles.CurrentTheme()

	wordmark := styles.ApplyForegroundGrad("◍  P i r i z G P T", t.Primary, t.Accent)

	messages := []string{
		t.S().Text.Render("Your terminal chat companion"),
		"",
		t.S().Muted.Render("Connected to " + w.serverURL),
	}
	messageBlock := lipgloss.JoinVertical(lipgloss.Center, messages...)

	instructions := t.S().Muted.Render("Press Enter to start chatting • q to quit")

	content := lipgloss.JoinVertical(lipgloss.Center,
		wordmark,
		"",
		"",
		messageBlock,
		"",
		"",
		instructions,
	)

	return lipgloss.Place(
		w.width, w.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}

// SetSize sets the welcome screen size.
func (w *Welcome) SetSize(width, height int) {
	w.width = width
	w.height = height
}
