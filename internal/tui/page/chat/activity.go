package chat

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/pirizgpt/cli/internal/tui/styles"
)

// Spinner animation frames (braille pattern).
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinnerInterval is the time between spinner frame updates.
const spinnerInterval = 100 * time.Millisecond

// SpinnerTickMsg is sent to advance the spinner animation.
type SpinnerTickMsg struct{}

// ActivityPanel shows a spinner strip while a reply is pending. It
// disappears once the first token arrives; from then on the growing
// reply itself is the progress indicator.
type ActivityPanel struct {
	spinner  int
	label    string
	thinking bool
	width    int
}

// NewActivityPanel creates a new activity panel.
func NewActivityPanel() *ActivityPanel {
	return &ActivityPanel{label: "Thinking..."}
}

// SetThinking sets the thinking state and starts/stops the spinner.
func (a *ActivityPanel) SetThinking(thinking bool) tea.Cmd {
	a.thinking = thinking
	if thinking {
		return a.tickSpinner()
	}
	return nil
}

// SetLabel sets the text shown next to the spinner.
func (a *ActivityPanel) SetLabel(label string) {
	a.label = label
}

// Clear resets the activity panel.
func (a *ActivityPanel) Clear() {
	a.thinking = false
	a.spinner = 0
	a.label = "Thinking..."
}

// SetWidth sets the panel width.
func (a *ActivityPanel) SetWidth(width int) {
	a.width = width
}

// Height returns the current height of the panel (0 when hidden).
func (a *ActivityPanel) Height() int {
	if !a.thinking {
		return 0
	}
	return 1
}

// IsActive returns true if the panel has content to show.
func (a *ActivityPanel) IsActive() bool {
	return a.thinking
}

// Update handles messages for the activity panel.
func (a *ActivityPanel) Update(msg tea.Msg) (*ActivityPanel, tea.Cmd) {
	if _, ok := msg.(SpinnerTickMsg); ok && a.thinking {
		a.spinner = (a.spinner + 1) % len(spinnerFrames)
		return a, a.tickSpinner()
	}
	return a, nil
}

// tickSpinner returns a command that sends a SpinnerTickMsg after the interval.
func (a *ActivityPanel) tickSpinner() tea.Cmd {
	return tea.Tick(spinnerInterval, func(time.Time) tea.Msg {
		return SpinnerTickMsg{}
	})
}

// View renders the activity panel.
func (a *ActivityPanel) View() string {
	if !a.thinking {
		return ""
	}

	t := styles.CurrentTheme()
	line := t.S().Info.Render(spinnerFrames[a.spinner] + " " + a.label)

	return lipgloss.NewStyle().
		Padding(0, 1).
		Width(a.width).
		Render(line)
}
