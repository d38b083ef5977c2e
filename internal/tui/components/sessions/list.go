package sessions

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rivo/uniseg"

	"github.com/pirizgpt/cli/internal/api"
	"github.com/pirizgpt/cli/internal/debug"
	"github.com/pirizgpt/cli/internal/session"
	"github.com/pirizgpt/cli/internal/tui/styles"
	"github.com/pirizgpt/cli/internal/tui/util"
)

// SessionList displays the known sessions with navigation.
type SessionList struct {
	sessionSvc *session.Service
	sessions   []api.Session
	cursor     int
	width      int
	height     int
	offset     int // Scroll offset
}

// NewSessionList creates a new session list.
func NewSessionList(svc *session.Service) *SessionList {
	return &SessionList{
		sessionSvc: svc,
	}
}

// Refresh fetches the session list off the UI goroutine. The result
// arrives as a SessionsLoadedMsg; the event loop never blocks on the
// registry.
func (l *SessionList) Refresh() tea.Cmd {
	svc := l.sessionSvc
	return func() tea.Msg {
		if svc == nil {
			return SessionsLoadedMsg{}
		}
		return SessionsLoadedMsg{Sessions: svc.List(context.Background())}
	}
}

// SetSessions replaces the displayed sessions, clamping the cursor.
func (l *SessionList) SetSessions(sessions []api.Session) {
	l.sessions = sessions
	debug.Event("sessions", "refresh", fmt.Sprintf("loaded %d sessions", len(l.sessions)))

	if l.cursor >= len(l.sessions) {
		l.cursor = max(0, len(l.sessions)-1)
	}
	l.ensureVisible()
}

// SetSize sets the list dimensions.
func (l *SessionList) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// Selected returns the currently selected session, or nil.
func (l *SessionList) Selected() *api.Session {
	if l.cursor >= 0 && l.cursor < len(l.sessions) {
		return &l.sessions[l.cursor]
	}
	return nil
}

// Find returns the session with the given id, or nil.
func (l *SessionList) Find(id string) *api.Session {
	for i := range l.sessions {
		if l.sessions[i].ID == id {
			return &l.sessions[i]
		}
	}
	return nil
}

// Update handles messages.
func (l *SessionList) Update(msg tea.Msg) (*SessionList, tea.Cmd) {
	if loaded, ok := msg.(SessionsLoadedMsg); ok {
		l.SetSessions(loaded.Sessions)
		return l, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "up", "k":
			if l.cursor > 0 {
				l.cursor--
				l.ensureVisible()
			}
		case "down", "j":
			if l.cursor < len(l.sessions)-1 {
				l.cursor++
				l.ensureVisible()
			}
		case "home", "g":
			l.cursor = 0
			l.offset = 0
		case "end", "G":
			l.cursor = max(0, len(l.sessions)-1)
			l.ensureVisible()
		case "enter":
			if selected := l.Selected(); selected != nil {
				return l, util.CmdHandler(SessionSelectedMsg{SessionID: selected.ID})
			}
		case "n":
			return l, util.CmdHandler(NewSessionMsg{})
		case "d":
			if selected := l.Selected(); selected != nil {
				return l, util.CmdHandler(DeleteSessionMsg{SessionID: selected.ID})
			}
		}
	}

	return l, nil
}

func (l *SessionList) ensureVisible() {
	visibleRows := l.visibleRows()
	if l.cursor < l.offset {
		l.offset = l.cursor
	} else if l.cursor >= l.offset+visibleRows {
		l.offset = l.cursor - visibleRows + 1
	}
}

func (l *SessionList) visibleRows() int {
	return max(1, l.height-2)
}

// View renders the session list.
func (l *SessionList) View() string {
	t := styles.CurrentTheme()

	if len(l.sessions) == 0 {
		return t.S().Muted.
			Width(l.width).
			Align(lipgloss.Center).
			Padding(2, 0).
			Render("No sessions yet. Press [n] to start one.")
	}

	var rows []string
	visibleRows := l.visibleRows()
	endIdx := min(l.offset+visibleRows, len(l.sessions))

	activeID := l.sessionSvc.ActiveID()
	for i := l.offset; i < endIdx; i++ {
		rows = append(rows, l.renderSession(&l.sessions[i], i == l.cursor, l.sessions[i].ID == activeID))
	}

	// Add scroll indicators.
	var header string
	if l.offset > 0 {
		header = t.S().Muted.Render(fmt.Sprintf("  ↑ %d more above", l.offset))
	}

	var footer string
	remaining := len(l.sessions) - endIdx
	if remaining > 0 {
		footer = t.S().Muted.Render(fmt.Sprintf("  ↓ %d more below", remaining))
	}

	content := strings.Join(rows, "\n")
	if header != "" {
		content = header + "\n" + content
	}
	if footer != "" {
		content = content + "\n" + footer
	}

	return content
}

func (l *SessionList) renderSession(sess *api.Session, selected, active bool) string {
	t := styles.CurrentTheme()

	title := displayTitle(sess)
	timeStr := formatRelativeTime(sess.LastMessageTime)

	maxTitleLen := l.width - len(timeStr) - 8
	title = truncate(title, maxTitleLen)

	marker := "  "
	if active {
		marker = "● "
	}

	var sb strings.Builder
	if selected {
		sb.WriteString(t.S().Primary.Bold(true).Render("> " + marker + title))
		sb.WriteString("  ")
		sb.WriteString(t.S().Muted.Render(timeStr))
	} else {
		sb.WriteString(t.S().Text.Render("  " + marker + title))
		sb.WriteString("  ")
		sb.WriteString(t.S().Muted.Render(timeStr))
	}
	return sb.String()
}

// displayTitle picks a human-readable name for a session.
func displayTitle(sess *api.Session) string {
	if sess.Title != "" {
		return sess.Title
	}
	if len(sess.ID) > 16 {
		return "Session " + sess.ID[:16] + "..."
	}
	return "Session " + sess.ID
}

// truncate shortens a string to at most maxWidth terminal cells,
// counting grapheme clusters rather than bytes.
func truncate(s string, maxWidth int) string {
	if maxWidth <= 3 {
		maxWidth = 3
	}
	if uniseg.StringWidth(s) <= maxWidth {
		return s
	}

	var sb strings.Builder
	width := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if width+w > maxWidth-3 {
			break
		}
		sb.WriteString(g.Str())
		width += w
	}
	return sb.String() + "..."
}

// formatRelativeTime formats a time as a relative string.
func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	diff := time.Since(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 min ago"
		}
		return fmt.Sprintf("%d mins ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 48*time.Hour:
		return "yesterday"
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("Jan 2")
	}
}
