package chat

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/pirizgpt/cli/internal/api"
	"github.com/pirizgpt/cli/internal/tui/styles"
)

// autoScrollThreshold is how close to the bottom (in lines) the viewport
// must be for new content to pull it back down. A reader who scrolled
// further up than this keeps their place during a stream.
const autoScrollThreshold = 3

// wheelStep is how many lines one mouse wheel notch scrolls.
const wheelStep = 3

// MessageList displays the conversation transcript. It has two modes:
// empty (icon and prompt chips) and active (scrollable message list).
//
// When follow is set the viewport stays pinned to the latest content.
// Scrolling up unpins it; offset is then the top line of the viewport
// within the rendered transcript, so appended content does not move a
// reader who scrolled back.
type MessageList struct {
	messages    []api.Message
	markdown    *MarkdownRenderer
	suggestions []string
	width       int
	height      int
	offset      int
	totalLines  int
	follow      bool
}

// NewMessageList creates a new message list component.
func NewMessageList() *MessageList {
	return &MessageList{
		markdown: NewMarkdownRenderer(),
		follow:   true,
	}
}

// SetMessages replaces the transcript, e.g. after a session switch.
// The view snaps back to the bottom.
func (m *MessageList) SetMessages(messages []api.Message) {
	m.messages = messages
	m.ScrollToBottom()
}

// Clear empties the transcript, returning to the empty state.
func (m *MessageList) Clear() {
	m.messages = nil
	m.ScrollToBottom()
}

// SetSuggestions sets the prompt chips shown in the empty state.
func (m *MessageList) SetSuggestions(suggestions []string) {
	m.suggestions = suggestions
}

// IsEmpty reports whether the transcript has no messages.
func (m *MessageList) IsEmpty() bool {
	return len(m.messages) == 0
}

// LastBotReply returns the content of the most recent bot message.
func (m *MessageList) LastBotReply() string {
	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].Role == api.RoleBot {
			return m.messages[i].Content
		}
	}
	return ""
}

// AppendMessage adds a message to the transcript, following the
// auto-scroll policy.
func (m *MessageList) AppendMessage(msg api.Message) {
	m.messages = append(m.messages, msg)
	m.autoScroll()
}

// UpdateLast replaces the content of the last message, used while a
// reply streams in.
func (m *MessageList) UpdateLast(content string) {
	if len(m.messages) == 0 {
		return
	}
	m.messages[len(m.messages)-1].Content = content
	m.autoScroll()
}

// DropLast removes the last message, used to discard a reply
// placeholder after a failed send.
func (m *MessageList) DropLast() {
	if len(m.messages) == 0 {
		return
	}
	m.messages = m.messages[:len(m.messages)-1]
}

// autoScroll re-pins the viewport only when it was already near the
// bottom; a deliberate scroll-back survives new content.
func (m *MessageList) autoScroll() {
	if m.follow {
		return
	}
	if m.distanceFromBottom() <= autoScrollThreshold {
		m.follow = true
	}
}

// distanceFromBottom is how many lines above the pinned position the
// viewport currently sits, based on the last render.
func (m *MessageList) distanceFromBottom() int {
	return max(0, m.totalLines-m.height) - m.offset
}

// AtBottom reports whether the viewport is pinned to the latest content.
func (m *MessageList) AtBottom() bool {
	return m.follow
}

// SetSize sets the component size.
func (m *MessageList) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ScrollUp scrolls toward older content by n lines.
func (m *MessageList) ScrollUp(n int) {
	if m.follow {
		m.follow = false
		m.offset = max(0, m.totalLines-m.height)
	}
	m.offset = max(0, m.offset-n)
}

// ScrollDown scrolls toward newer content by n lines.
func (m *MessageList) ScrollDown(n int) {
	if m.follow {
		return
	}
	m.offset += n
	if m.offset >= max(0, m.totalLines-m.height) {
		m.ScrollToBottom()
	}
}

// ScrollToBottom pins the viewport to the latest content.
func (m *MessageList) ScrollToBottom() {
	m.follow = true
	m.offset = 0
}

// Update handles scroll events.
func (m *MessageList) Update(msg tea.Msg) (*MessageList, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			m.ScrollUp(wheelStep)
		case tea.MouseWheelDown:
			m.ScrollDown(wheelStep)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "pgup", "k":
			m.ScrollUp(wheelStep)
		case "pgdown", "j":
			m.ScrollDown(wheelStep)
		case "home", "g":
			m.ScrollUp(1 << 20)
		case "end", "G":
			m.ScrollToBottom()
		}
	}
	return m, nil
}

// View renders the message list.
func (m *MessageList) View() string {
	if len(m.messages) == 0 {
		return m.renderEmpty()
	}

	rendered := make([]string, 0, len(m.messages))
	for i := range m.messages {
		rendered = append(rendered, m.renderMessage(&m.messages[i]))
	}
	content := strings.Join(rendered, "\n\n")

	lines := strings.Split(content, "\n")
	m.totalLines = len(lines)
	window := m.visibleWindow(lines)

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Padding(0, 1).
		Render(strings.Join(window, "\n"))
}

// visibleWindow slices the rendered lines to the viewport.
func (m *MessageList) visibleWindow(lines []string) []string {
	if m.height <= 0 || len(lines) <= m.height {
		return lines
	}

	maxStart := len(lines) - m.height
	start := m.offset
	if m.follow {
		start = maxStart
	} else if start > maxStart {
		start = maxStart
		m.offset = maxStart
	}

	return lines[start : start+m.height]
}

func (m *MessageList) renderEmpty() string {
	t := styles.CurrentTheme()

	parts := []string{
		styles.ApplyForegroundGrad("◍ PirizGPT", t.Primary, t.Accent),
		"",
		t.S().Muted.Render("Ask me anything, or try one of these:"),
		"",
	}

	chip := lipgloss.NewStyle().
		Foreground(t.Secondary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	for _, s := range m.suggestions {
		parts = append(parts, chip.Render(s))
	}
	if len(m.suggestions) > 0 {
		parts = append(parts, "", t.S().Subtle.Render("Tab to pick one up"))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *MessageList) renderMessage(msg *api.Message) string {
	t := styles.CurrentTheme()

	contentWidth := m.width - 4 // Account for padding
	if contentWidth < 10 {
		contentWidth = 10
	}

	switch msg.Role {
	case api.RoleUser:
		return m.renderUserMessage(msg, contentWidth)
	case api.RoleBot:
		return m.renderBotMessage(msg, contentWidth)
	default:
		return t.S().Muted.Render(msg.Content)
	}
}

// renderUserMessage renders user input as literal text. No markup
// interpretation here: whatever the user typed is shown verbatim.
func (m *MessageList) renderUserMessage(msg *api.Message, width int) string {
	t := styles.CurrentTheme()

	header := t.S().Text.Bold(true).Render("You")
	content := t.S().Text.Width(width).Render(msg.Content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content)
}

// renderBotMessage renders the reply as markdown; the remote service is
// the only author of bot messages.
func (m *MessageList) renderBotMessage(msg *api.Message, width int) string {
	t := styles.CurrentTheme()

	header := t.S().Primary.Bold(true).Render("PirizGPT")

	if msg.Content == "" {
		return header
	}

	rendered, err := m.markdown.Render(msg.Content, width)
	if err != nil {
		rendered = msg.Content
	}
	rendered = strings.TrimRight(rendered, "\n")

	return lipgloss.JoinVertical(lipgloss.Left, header, rendered)
}
