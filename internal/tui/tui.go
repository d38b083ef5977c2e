// Package tui provides the terminal user interface for PirizGPT CLI.
package tui

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"golang.org/x/term"

	"github.com/pirizgpt/cli/internal/api"
	"github.com/pirizgpt/cli/internal/bridge"
	"github.com/pirizgpt/cli/internal/config"
	"github.com/pirizgpt/cli/internal/debug"
	"github.com/pirizgpt/cli/internal/events"
	"github.com/pirizgpt/cli/internal/pubsub"
	"github.com/pirizgpt/cli/internal/session"
	"github.com/pirizgpt/cli/internal/speech"
	"github.com/pirizgpt/cli/internal/tui/components/sessions"
	"github.com/pirizgpt/cli/internal/tui/components/welcome"
	"github.com/pirizgpt/cli/internal/tui/page"
	"github.com/pirizgpt/cli/internal/tui/page/chat"
	"github.com/pirizgpt/cli/internal/tui/styles"
	"github.com/pirizgpt/cli/internal/tui/util"
)

// Model is the main TUI model.
type Model struct {
	welcome       *welcome.Welcome
	chatPage      *chat.Model
	sessionsModal *sessions.Modal
	program       *tea.Program
	hub           *pubsub.Hub
	bridge        *bridge.TUIBridge
	cfg           *config.Config
	sessionSvc    *session.Service
	currentPage   page.ID
	statusMsg     string
	width         int
	height        int
	ready         bool
}

// New creates a new TUI model.
func New(cfg *config.Config, client *api.Client, hub *pubsub.Hub,
	sessionSvc *session.Service, speaker *speech.Speaker, listener *speech.Listener,
) *Model {
	return &Model{
		cfg:           cfg,
		hub:           hub,
		sessionSvc:    sessionSvc,
		currentPage:   page.Welcome,
		welcome:       welcome.New(client.BaseURL()),
		chatPage:      chat.New(client, sessionSvc, hub, speaker, listener, cfg.Streaming()),
		sessionsModal: sessions.New(sessionSvc),
	}
}

// Init initializes the TUI.
func (m *Model) Init() tea.Cmd {
	return m.welcome.Init()
}

// Update handles messages.
//
//nolint:gocyclo // TUI update handler requires handling many message types
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		debug.Event("tui", "WindowSize", fmt.Sprintf("width=%d height=%d", msg.Width, msg.Height))
		m.handleWindowSize(msg)
		return m, nil

	case tea.KeyMsg:
		debug.Event("tui", "KeyMsg", fmt.Sprintf("key=%q", msg.String()))
		// The modal owns the keyboard while it is open.
		if m.sessionsModal.IsVisible() {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.sessionsModal, cmd = m.sessionsModal.Update(msg)
			return m, cmd
		}
		if cmd, handled := m.handleGlobalKeys(msg); handled {
			return m, cmd
		}

	case welcome.StartChatMsg:
		m.currentPage = page.Chat
		m.updateComponentSizes()
		return m, m.chatPage.Init()

	case sessions.SwitchSessionMsg:
		// Select publishes the switched event; the chat page reloads
		// its transcript when that comes back through the bridge.
		m.sessionSvc.Select(msg.SessionID)
		return m, nil

	case sessions.NewSessionMsg:
		m.sessionSvc.Reset()
		return m, nil

	case sessions.ModalClosedMsg:
		return m, nil

	case bridge.SessionEventMsg:
		return m, m.handleSessionEvent(msg)

	case bridge.ChatEventMsg:
		return m, m.updateChat(msg)

	case util.InfoMsg:
		// Only set statusMsg for non-chat pages; chat has its own status handling
		if m.currentPage != page.Chat {
			m.statusMsg = msg.Msg
		}
		return m, nil

	case page.ChangeMsg:
		m.currentPage = msg.Page
		return m, nil
	}

	if m.sessionsModal.IsVisible() {
		var cmd tea.Cmd
		m.sessionsModal, cmd = m.sessionsModal.Update(msg)
		return m, cmd
	}

	return m, m.routeToPage(msg)
}

// handleSessionEvent reacts to session lifecycle events before routing
// them on to the chat page. The bridge's chat filter must always track
// the active session, so every switched or reset event retargets it.
func (m *Model) handleSessionEvent(msg bridge.SessionEventMsg) tea.Cmd {
	var cmds []tea.Cmd

	switch msg.Event.Payload.Type {
	case events.SessionEventSwitched, events.SessionEventReset:
		if m.bridge != nil {
			m.bridge.SetSessionFilter(msg.Event.Payload.SessionID)
		}
	case events.SessionEventRefresh:
		if m.sessionsModal.IsVisible() {
			cmds = append(cmds, m.sessionsModal.Refresh())
		}
	}

	cmds = append(cmds, m.updateChat(msg))
	return tea.Batch(cmds...)
}

func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.updateComponentSizes()
}

// handleGlobalKeys handles app-level keys. It reports whether the key
// was consumed; unconsumed keys fall through to the current page.
func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		// During a stream the chat page turns ctrl+c into a cancel.
		if m.currentPage == page.Chat && m.chatPage.IsStreaming() {
			return nil, false
		}
		return tea.Quit, true

	case "ctrl+o":
		if m.currentPage == page.Chat {
			return m.sessionsModal.Show(), true
		}

	case "ctrl+n":
		if m.currentPage == page.Chat && !m.chatPage.IsStreaming() {
			m.sessionSvc.Reset()
			return nil, true
		}
	}
	return nil, false
}

func (m *Model) routeToPage(msg tea.Msg) tea.Cmd {
	switch m.currentPage {
	case page.Welcome:
		_, cmd := m.welcome.Update(msg)
		return cmd
	case page.Chat:
		return m.updateChat(msg)
	}
	return nil
}

func (m *Model) updateChat(msg tea.Msg) tea.Cmd {
	_, cmd := m.chatPage.Update(msg)
	return cmd
}

// View renders the TUI.
func (m *Model) View() tea.View {
	t := styles.CurrentTheme()

	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion

	if !m.ready {
		view.Content = "Loading..."
		return view
	}

	var content string
	switch {
	case m.sessionsModal.IsVisible():
		content = m.sessionsModal.View()
	case m.currentPage == page.Welcome:
		content = m.welcome.View()
	case m.currentPage == page.Chat:
		content = m.chatPage.View()
	}

	if m.statusMsg != "" && m.currentPage != page.Chat {
		status := t.S().Info.Render(m.statusMsg)
		content = lipgloss.JoinVertical(lipgloss.Left, content, "", status)
	}

	view.Content = content

	if m.currentPage == page.Chat && !m.sessionsModal.IsVisible() {
		view.Cursor = m.chatPage.Cursor()
	}

	return view
}

func (m *Model) updateComponentSizes() {
	m.welcome.SetSize(m.width, m.height)
	m.chatPage.SetSize(m.width, m.height)
	m.sessionsModal.SetSize(m.width, m.height)
}

// Run starts the TUI program.
func Run(cfg *config.Config, client *api.Client, hub *pubsub.Hub,
	sessionSvc *session.Service, speaker *speech.Speaker, listener *speech.Listener,
) error {
	// Check if running in a terminal.
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("pirizgpt requires an interactive terminal: stdin/stdout must be connected to a TTY")
	}

	// Initialize the persisted theme preference.
	themeName := ""
	if cfg.Options != nil {
		themeName = cfg.Options.Theme
	}
	styles.NewManager(themeName)

	model := New(cfg, client, hub, sessionSvc, speaker, listener)
	p := tea.NewProgram(model)
	model.program = p

	// Forward pub/sub events to Bubble Tea messages. Chat events for
	// other sessions are filtered out at the bridge.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tuiBridge := bridge.NewTUIBridge(hub, p,
		bridge.WithSessionFilter(sessionSvc.ActiveID()))
	model.bridge = tuiBridge
	tuiBridge.Start(ctx)
	defer tuiBridge.Stop()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
