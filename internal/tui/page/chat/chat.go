// Package chat provides the conversation page for PirizGPT CLI.
package chat

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"
	"github.com/google/uuid"

	"github.com/pirizgpt/cli/internal/api"
	"github.com/pirizgpt/cli/internal/bridge"
	"github.com/pirizgpt/cli/internal/config"
	"github.com/pirizgpt/cli/internal/debug"
	"github.com/pirizgpt/cli/internal/events"
	"github.com/pirizgpt/cli/internal/pubsub"
	"github.com/pirizgpt/cli/internal/session"
	"github.com/pirizgpt/cli/internal/speech"
	"github.com/pirizgpt/cli/internal/suggest"
	"github.com/pirizgpt/cli/internal/tui/styles"
	"github.com/pirizgpt/cli/internal/tui/util"
)

// Local message types for TUI updates.
type (
	// HistoryLoadedMsg carries a freshly fetched transcript.
	HistoryLoadedMsg struct {
		SessionID string
		Messages  []api.Message
	}

	// TranscriptMsg carries the result of a dictation run.
	TranscriptMsg struct {
		Text string
		Err  error
	}

	// spokenMsg is sent when a speech playback command has been issued.
	spokenMsg struct{}
)

// Model is the chat page model.
type Model struct {
	client      *api.Client
	sessions    *session.Service
	hub         *pubsub.Hub
	speaker     *speech.Speaker
	listener    *speech.Listener
	messages    *MessageList
	activity    *ActivityPanel
	input       *Input
	status      *StatusBar
	suggestions []string
	suggestIdx  int
	sessionID   string
	streaming   bool
	isStreaming bool
	isListening bool
	cancelReply context.CancelFunc
	width       int
	height      int
}

// New creates a new chat page model.
func New(client *api.Client, sessions *session.Service, hub *pubsub.Hub,
	speaker *speech.Speaker, listener *speech.Listener, streaming bool,
) *Model {
	return &Model{
		client:    client,
		sessions:  sessions,
		hub:       hub,
		speaker:   speaker,
		listener:  listener,
		messages:  NewMessageList(),
		activity:  NewActivityPanel(),
		input:     NewInput(),
		status:    NewStatusBar(),
		streaming: streaming,
	}
}

// Init initializes the chat page.
func (m *Model) Init() tea.Cmd {
	m.sessionID = m.sessions.ActiveID()
	m.suggestions = suggest.Random(3)
	m.messages.SetSuggestions(m.suggestions)
	if m.speaker != nil {
		m.status.SetSpeaking(m.speaker.Enabled())
	}

	return tea.Batch(m.input.Init(), m.loadHistory(m.sessionID))
}

// Update handles messages.
//
//nolint:gocyclo // Complex due to handling many message types including mouse events
func (m *Model) Update(msg tea.Msg) (util.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		debug.Event("chat", "KeyMsg", fmt.Sprintf("key=%q", msg.String()))
		return m.handleKey(msg)

	case tea.MouseWheelMsg:
		var cmd tea.Cmd
		m.messages, cmd = m.messages.Update(msg)
		return m, cmd

	case HistoryLoadedMsg:
		// A stale fetch for a session we already left is dropped.
		if msg.SessionID != m.sessionID {
			return m, nil
		}
		m.messages.SetMessages(msg.Messages)
		return m, nil

	case TranscriptMsg:
		m.isListening = false
		m.status.SetStatus(StatusReady)
		if msg.Err != nil {
			m.status.SetError(msg.Err.Error())
			return m, nil
		}
		if msg.Text != "" {
			m.input.SetValue(msg.Text)
		}
		return m, nil

	case SpinnerTickMsg:
		var cmd tea.Cmd
		m.activity, cmd = m.activity.Update(msg)
		return m, cmd

	// Bridge messages from pub/sub system
	case bridge.ChatEventMsg:
		return m.handleChatEvent(msg.Event)

	case bridge.SessionEventMsg:
		return m.handleSessionEvent(msg.Event)
	}

	// Update messages (for viewport scrolling)
	var msgCmd tea.Cmd
	m.messages, msgCmd = m.messages.Update(msg)
	if msgCmd != nil {
		cmds = append(cmds, msgCmd)
	}

	// Update input
	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	if inputCmd != nil {
		cmds = append(cmds, inputCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) (util.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.isStreaming {
			return m, nil
		}

		value := m.input.Value()
		if value == "" {
			return m, nil
		}
		return m, m.startReply(value)

	case "ctrl+c":
		if m.isStreaming {
			return m, m.cancelInFlight()
		}
		return m, tea.Quit

	case "esc":
		if m.isStreaming {
			return m, m.cancelInFlight()
		}

	case "tab":
		// Pick up a prompt chip; only meaningful before the first message.
		if !m.isStreaming && m.messages.IsEmpty() && len(m.suggestions) > 0 {
			m.input.SetValue(m.suggestions[m.suggestIdx])
			m.suggestIdx = (m.suggestIdx + 1) % len(m.suggestions)
			return m, nil
		}

	case "ctrl+t":
		if m.speaker != nil && m.speaker.Available() {
			m.speaker.SetEnabled(!m.speaker.Enabled())
			m.status.SetSpeaking(m.speaker.Enabled())
			return m, m.persistSpeechEnabled(m.speaker.Enabled())
		}
		m.status.SetNote("No speech engine found")
		return m, nil

	case "ctrl+l":
		if m.isStreaming || m.isListening {
			return m, nil
		}
		if m.listener == nil || !m.listener.Available() {
			m.status.SetNote("No speech recognizer found")
			return m, nil
		}
		m.isListening = true
		m.status.SetStatus(StatusListening)
		return m, m.listen()

	case "ctrl+y":
		if reply := m.messages.LastBotReply(); reply != "" {
			if err := clipboard.WriteAll(reply); err != nil {
				m.status.SetError(err.Error())
			} else {
				m.status.SetNote("Copied last reply")
			}
		}
		return m, nil
	}

	var cmds []tea.Cmd

	// Only pass key events to the viewport when input is disabled
	// (streaming mode), so vim-style scroll keys do not eat typing.
	if !m.input.IsEnabled() {
		var msgCmd tea.Cmd
		m.messages, msgCmd = m.messages.Update(msg)
		if msgCmd != nil {
			cmds = append(cmds, msgCmd)
		}
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	if inputCmd != nil {
		cmds = append(cmds, inputCmd)
	}

	return m, tea.Batch(cmds...)
}

// startReply appends the user message plus an empty reply placeholder
// and kicks off the backend request.
func (m *Model) startReply(prompt string) tea.Cmd {
	m.input.Clear()
	m.input.Disable()
	m.isStreaming = true
	m.status.SetStatus(StatusThinking)

	spinnerCmd := m.activity.SetThinking(true)

	m.messages.AppendMessage(api.Message{
		ID:      uuid.New().String(),
		Role:    api.RoleUser,
		Content: prompt,
	})
	m.messages.AppendMessage(api.Message{
		ID:   uuid.New().String(),
		Role: api.RoleBot,
	})

	return tea.Batch(spinnerCmd, m.sendMessage(prompt))
}

// sendMessage runs the backend request off the UI goroutine. Progress
// comes back through the chat broker, so the page reacts the same way
// whether the event source is this command or anything else.
func (m *Model) sendMessage(prompt string) tea.Cmd {
	sessionID := m.sessionID
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelReply = cancel

	if !m.streaming {
		return func() tea.Msg {
			defer cancel()

			reply, err := m.client.Send(ctx, prompt, sessionID)
			if err != nil {
				if errors.Is(err, context.Canceled) || ctx.Err() != nil {
					m.hub.Chat.Publish(pubsub.EventCancelled, events.NewCancelledEvent(sessionID))
					return nil
				}
				m.hub.Chat.Publish(pubsub.EventFailed, events.NewErrorEvent(sessionID, err.Error()))
				return nil
			}
			m.hub.Chat.Publish(pubsub.EventCompleted, events.NewCompleteEvent(sessionID, reply))
			return nil
		}
	}

	return func() tea.Msg {
		defer cancel()

		err := m.client.Stream(ctx, prompt, sessionID, api.StreamCallbacks{
			OnTextDelta: func(delta string) {
				m.hub.Chat.Publish(pubsub.EventProgress, events.NewTextDeltaEvent(sessionID, delta))
			},
			OnComplete: func(full string) {
				m.hub.Chat.Publish(pubsub.EventCompleted, events.NewCompleteEvent(sessionID, full))
			},
			OnError: func(message string) {
				m.hub.Chat.Publish(pubsub.EventFailed, events.NewErrorEvent(sessionID, message))
			},
		})
		if err != nil && (errors.Is(err, context.Canceled) || ctx.Err() != nil) {
			m.hub.Chat.Publish(pubsub.EventCancelled, events.NewCancelledEvent(sessionID))
		}
		return nil
	}
}

// cancelInFlight aborts the current request. The stream command notices
// the cancellation and publishes the terminal event itself.
func (m *Model) cancelInFlight() tea.Cmd {
	if m.cancelReply != nil {
		m.cancelReply()
		m.cancelReply = nil
	}
	m.activity.Clear()
	return nil
}

// listen runs one dictation pass and delivers the transcript.
func (m *Model) listen() tea.Cmd {
	return func() tea.Msg {
		text, err := m.listener.Listen(context.Background())
		return TranscriptMsg{Text: text, Err: err}
	}
}

// loadHistory fetches the transcript of a session off the UI goroutine.
func (m *Model) loadHistory(sessionID string) tea.Cmd {
	return func() tea.Msg {
		messages := m.sessions.History(context.Background(), sessionID)
		return HistoryLoadedMsg{SessionID: sessionID, Messages: messages}
	}
}

// handleChatEvent processes streaming reply events from the pub/sub bridge.
func (m *Model) handleChatEvent(event pubsub.Event[events.ChatEvent]) (util.Model, tea.Cmd) {
	// Only handle events for our session
	if event.Payload.SessionID != m.sessionID {
		return m, nil
	}

	switch event.Payload.Type {
	case events.ChatEventTextDelta:
		// First token: the spinner gives way to the growing reply.
		if m.activity.IsActive() {
			m.activity.Clear()
			m.status.SetStatus(StatusStreaming)
		}
		m.messages.UpdateLast(m.messages.LastBotReply() + event.Payload.TextDelta)
		return m, nil

	case events.ChatEventComplete:
		m.isStreaming = false
		m.cancelReply = nil
		m.activity.Clear()
		m.status.SetStatus(StatusReady)
		m.input.Enable()
		m.messages.UpdateLast(event.Payload.FullText)

		cmds := []tea.Cmd{m.input.Focus(), m.refreshSessions()}
		if m.speaker != nil && m.speaker.Enabled() {
			cmds = append(cmds, m.speak(event.Payload.FullText))
		}
		return m, tea.Batch(cmds...)

	case events.ChatEventError:
		m.isStreaming = false
		m.cancelReply = nil
		m.activity.Clear()
		m.status.SetError(event.Payload.Error)
		m.input.Enable()
		// The error becomes the bot message content; text that streamed
		// in before the failure stays above it.
		display := "⚠ " + event.Payload.Error
		if partial := m.messages.LastBotReply(); partial != "" {
			display = partial + "\n\n" + display
		}
		m.messages.UpdateLast(display)
		return m, m.input.Focus()

	case events.ChatEventCancelled:
		m.isStreaming = false
		m.cancelReply = nil
		m.activity.Clear()
		m.status.SetStatus(StatusReady)
		m.input.Enable()
		// Whatever streamed in before the cancel stays on screen.
		if m.messages.LastBotReply() == "" {
			m.messages.DropLast()
		}
		return m, m.input.Focus()
	}

	return m, nil
}

// handleSessionEvent processes session lifecycle events from the bridge.
func (m *Model) handleSessionEvent(event pubsub.Event[events.SessionEvent]) (util.Model, tea.Cmd) {
	switch event.Payload.Type {
	case events.SessionEventSwitched:
		m.sessionID = event.Payload.SessionID
		m.status.SetStatus(StatusReady)
		return m, m.loadHistory(m.sessionID)

	case events.SessionEventReset:
		m.sessionID = event.Payload.SessionID
		m.suggestions = suggest.Random(3)
		m.suggestIdx = 0
		m.messages.SetSuggestions(m.suggestions)
		m.messages.Clear()
		m.status.SetStatus(StatusReady)
		return m, nil

	case events.SessionEventDeleted:
		// The active session is reset separately; a deleted background
		// session does not touch the transcript.
		return m, nil

	case events.SessionEventRefresh:
		return m, nil
	}

	return m, nil
}

// speak reads a finished reply aloud. Speech failures are swallowed
// inside the speaker; the reply is already on screen either way.
func (m *Model) speak(text string) tea.Cmd {
	return func() tea.Msg {
		m.speaker.Speak(context.Background(), text)
		return spokenMsg{}
	}
}

// persistSpeechEnabled writes the speech toggle to the global config so
// it survives restarts.
func (m *Model) persistSpeechEnabled(enabled bool) tea.Cmd {
	return func() tea.Msg {
		if err := config.SetConfigField("speech.enabled", enabled); err != nil {
			debug.Error("chat", err, "persisting speech toggle")
		}
		return nil
	}
}

// refreshSessions nudges the session list to re-fetch; a finished reply
// changes titles and timestamps on the backend.
func (m *Model) refreshSessions() tea.Cmd {
	return func() tea.Msg {
		m.hub.Session.Publish(pubsub.EventUpdated, events.NewSessionRefreshEvent())
		return nil
	}
}

// View renders the chat page.
func (m *Model) View() string {
	t := styles.CurrentTheme()

	m.messages.SetSize(m.width, m.messagesAreaHeight())
	m.activity.SetWidth(m.width)
	m.input.SetWidth(m.width)
	m.status.SetWidth(m.width)

	messagesView := m.messages.View()
	activityView := m.activity.View()
	inputView := m.input.View()
	statusView := m.status.View()

	separator := lipgloss.NewStyle().
		Width(m.width).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		Render("")

	var parts []string
	parts = append(parts, messagesView)

	if m.activity.IsActive() {
		parts = append(parts, separator, activityView)
	}

	parts = append(parts, separator, inputView, statusView)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// SetSize sets the chat page size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SessionID returns the session the page is currently showing.
func (m *Model) SessionID() string {
	return m.sessionID
}

// IsStreaming reports whether a reply is currently in flight.
func (m *Model) IsStreaming() bool {
	return m.isStreaming
}

// messagesAreaHeight calculates the current height of the messages area.
func (m *Model) messagesAreaHeight() int {
	statusHeight := 1
	inputHeight := m.input.Height()
	separatorHeight := 1

	activityHeight := m.activity.Height()
	if activityHeight > 0 {
		activityHeight++ // Add separator height
	}

	h := m.height - statusHeight - inputHeight - separatorHeight - activityHeight
	if h < 1 {
		h = 1
	}
	return h
}

// Cursor returns the cursor position.
func (m *Model) Cursor() *tea.Cursor {
	if !m.isStreaming {
		return m.input.Cursor()
	}
	return nil
}
