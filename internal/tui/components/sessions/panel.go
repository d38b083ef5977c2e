package sessions

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/pirizgpt/cli/internal/tui/styles"
)

// BorderedPanel renders content inside a bordered box with a centered
// title embedded in the top border.
type BorderedPanel struct {
	title   string
	content string
	width   int
	height  int
	focused bool
}

// NewBorderedPanel creates a new bordered panel.
func NewBorderedPanel() *BorderedPanel {
	return &BorderedPanel{}
}

// SetTitle sets the title to display in the top border.
func (p *BorderedPanel) SetTitle(title string) {
	p.title = title
}

// SetContent sets the content to render inside the panel.
func (p *BorderedPanel) SetContent(content string) {
	p.content = content
}

// SetSize sets the panel dimensions.
func (p *BorderedPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets whether the panel has focus (affects border color).
func (p *BorderedPanel) SetFocused(focused bool) {
	p.focused = focused
}

// View renders the bordered panel.
func (p *BorderedPanel) View() string {
	t := styles.CurrentTheme()

	borderColor := t.Border
	if p.focused {
		borderColor = t.BorderFocus
	}
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := t.S().Primary.Bold(true)

	// Inner width between the left and right border characters.
	borderWidth := max(4, p.width-2)
	contentWidth := borderWidth - 2 // one padding space each side

	title := truncate(p.title, borderWidth-4)
	titleRendered := titleStyle.Render(title)
	titleLen := lipgloss.Width(titleRendered)

	leftPad := max(0, (borderWidth-titleLen)/2)
	rightPad := max(0, borderWidth-titleLen-leftPad)

	topBorder := borderStyle.Render("╭"+strings.Repeat("─", leftPad)) +
		titleRendered +
		borderStyle.Render(strings.Repeat("─", rightPad)+"╮")
	bottomBorder := borderStyle.Render("╰" + strings.Repeat("─", borderWidth) + "╯")

	contentLines := strings.Split(p.content, "\n")
	contentHeight := max(1, p.height-2)

	lines := make([]string, 0, contentHeight+2)
	lines = append(lines, topBorder)
	for i := 0; i < contentHeight; i++ {
		line := ""
		if i < len(contentLines) {
			line = contentLines[i]
		}

		lineLen := lipgloss.Width(line)
		if lineLen < contentWidth {
			line += strings.Repeat(" ", contentWidth-lineLen)
		} else if lineLen > contentWidth {
			// Width-aware truncation that keeps escape sequences intact.
			line = ansi.Truncate(line, contentWidth, "…")
		}

		lines = append(lines, borderStyle.Render("│ ")+line+borderStyle.Render(" │"))
	}
	lines = append(lines, bottomBorder)

	return strings.Join(lines, "\n")
}
