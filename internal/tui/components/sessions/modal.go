// Package sessions provides the session management modal for PirizGPT CLI.
package sessions

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/pirizgpt/cli/internal/session"
	"github.com/pirizgpt/cli/internal/tui/styles"
	"github.com/pirizgpt/cli/internal/tui/util"
)

// ModalStep represents the current step in the modal flow.
type ModalStep int

const (
	// StepList shows the session list.
	StepList ModalStep = iota
	// StepDeleteConfirm shows delete confirmation.
	StepDeleteConfirm
)

// Modal is the session management modal. Deleting is a two-step flow:
// the intent is parked on the session service until the user confirms
// or backs out.
type Modal struct {
	sessionSvc  *session.Service
	sessionList *SessionList
	panel       *BorderedPanel
	step        ModalStep
	visible     bool
	width       int
	height      int
}

// New creates a new sessions Modal.
func New(sessionSvc *session.Service) *Modal {
	return &Modal{
		sessionSvc:  sessionSvc,
		sessionList: NewSessionList(sessionSvc),
		panel:       NewBorderedPanel(),
		step:        StepList,
	}
}

// Init initializes the modal.
func (m *Modal) Init() tea.Cmd {
	m.step = StepList
	return m.sessionList.Refresh()
}

// Show makes the modal visible and kicks off a session list fetch.
func (m *Modal) Show() tea.Cmd {
	m.visible = true
	m.step = StepList
	return m.sessionList.Refresh()
}

// Hide hides the modal, discarding any pending deletion.
func (m *Modal) Hide() {
	m.visible = false
	if m.step == StepDeleteConfirm {
		m.sessionSvc.CancelDelete()
		m.step = StepList
	}
}

// IsVisible returns whether the modal is visible.
func (m *Modal) IsVisible() bool {
	return m.visible
}

// Refresh reloads the session list, e.g. after a finished reply.
func (m *Modal) Refresh() tea.Cmd {
	return m.sessionList.Refresh()
}

// SetSize sets the modal size.
func (m *Modal) SetSize(width, height int) {
	m.width = width
	m.height = height

	innerWidth := min(width-10, 70)
	innerHeight := height - 12
	m.sessionList.SetSize(innerWidth, innerHeight)
}

// Update handles messages.
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	switch msg := msg.(type) {
	case SessionsLoadedMsg:
		var cmd tea.Cmd
		m.sessionList, cmd = m.sessionList.Update(msg)
		return m, cmd

	case DeleteResolvedMsg:
		cmds := []tea.Cmd{m.sessionList.Refresh()}
		if msg.Err != nil {
			cmds = append(cmds, util.ReportError(msg.Err))
		} else {
			cmds = append(cmds, util.ReportSuccess("Session deleted"))
		}
		return m, tea.Batch(cmds...)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" {
			return m.handleEscape()
		}
	}

	switch m.step {
	case StepList:
		return m.updateList(msg)
	case StepDeleteConfirm:
		return m.updateDeleteConfirm(msg)
	}

	return m, nil
}

func (m *Modal) handleEscape() (*Modal, tea.Cmd) {
	switch m.step {
	case StepList:
		m.Hide()
		return m, util.CmdHandler(ModalClosedMsg{})
	case StepDeleteConfirm:
		// Back out without side effects.
		m.sessionSvc.CancelDelete()
		m.step = StepList
		return m, nil
	}
	return m, nil
}

func (m *Modal) updateList(msg tea.Msg) (*Modal, tea.Cmd) {
	switch msg := msg.(type) {
	case SessionSelectedMsg:
		m.Hide()
		return m, tea.Batch(
			util.CmdHandler(ModalClosedMsg{}),
			util.CmdHandler(SwitchSessionMsg{SessionID: msg.SessionID}),
		)

	case DeleteSessionMsg:
		m.sessionSvc.RequestDelete(msg.SessionID)
		m.step = StepDeleteConfirm
		return m, nil

	case NewSessionMsg:
		m.Hide()
		return m, tea.Batch(
			util.CmdHandler(ModalClosedMsg{}),
			util.CmdHandler(msg),
		)
	}

	var cmd tea.Cmd
	m.sessionList, cmd = m.sessionList.Update(msg)
	return m, cmd
}

func (m *Modal) updateDeleteConfirm(msg tea.Msg) (*Modal, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "y", "Y", "enter":
			m.step = StepList
			return m, m.confirmDelete()

		case "n", "N":
			m.sessionSvc.CancelDelete()
			m.step = StepList
			return m, nil
		}
	}
	return m, nil
}

// confirmDelete resolves the pending deletion off the UI goroutine; a
// hung backend stalls this command, not the event loop.
func (m *Modal) confirmDelete() tea.Cmd {
	svc := m.sessionSvc
	return func() tea.Msg {
		_, err := svc.ConfirmDelete(context.Background())
		return DeleteResolvedMsg{Err: err}
	}
}

// View renders the modal.
func (m *Modal) View() string {
	if !m.visible {
		return ""
	}

	var title, content, footer string
	switch m.step {
	case StepList:
		title = "Sessions"
		content = m.sessionList.View()
		footer = "[enter] Open  [n] New  [d] Delete  [esc] Close"
	case StepDeleteConfirm:
		title = "Delete Session"
		content = m.renderDeleteConfirm()
		footer = "[y] Yes  [n] No  [esc] Cancel"
	}

	t := styles.CurrentTheme()
	boxWidth := min(m.width-4, 74)
	contentWidth := boxWidth - 4

	footerView := t.S().Muted.
		Width(contentWidth).
		Align(lipgloss.Center).
		MarginTop(1).
		Render(footer)

	inner := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Width(contentWidth).Render(content),
		footerView,
	)

	m.panel.SetTitle(title)
	m.panel.SetContent(inner)
	m.panel.SetFocused(true)
	m.panel.SetSize(boxWidth, lipgloss.Height(inner)+2)

	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		m.panel.View(),
	)
}

func (m *Modal) renderDeleteConfirm() string {
	t := styles.CurrentTheme()

	name := "this session"
	if target := m.sessionList.Find(m.sessionSvc.PendingDeletion()); target != nil {
		name = displayTitle(target)
	}

	var sb strings.Builder
	sb.WriteString(t.S().Text.Render("Are you sure you want to delete "))
	sb.WriteString(t.S().Primary.Bold(true).Render(name))
	sb.WriteString(t.S().Text.Render("?\n\n"))
	sb.WriteString(t.S().Warning.Render("This permanently deletes all messages in this session."))

	return sb.String()
}
