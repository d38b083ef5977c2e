package chat

import (
	"context"
	"strings"
	"testing"

	"github.com/adrg/xdg"

	"github.com/pirizgpt/cli/internal/api"
	"github.com/pirizgpt/cli/internal/bridge"
	"github.com/pirizgpt/cli/internal/config"
	"github.com/pirizgpt/cli/internal/events"
	"github.com/pirizgpt/cli/internal/pubsub"
	"github.com/pirizgpt/cli/internal/session"
	"github.com/pirizgpt/cli/internal/speech"
)

// fakeRegistry is an in-memory Registry for tests.
type fakeRegistry struct {
	history []api.Message
}

func (f *fakeRegistry) ListSessions(_ context.Context, _ int) ([]api.Session, error) {
	return nil, nil
}

func (f *fakeRegistry) History(_ context.Context, _ string, _ int) ([]api.Message, error) {
	return f.history, nil
}

func (f *fakeRegistry) ClearSession(_ context.Context, _ string) error {
	return nil
}

func newTestChatModel(t *testing.T) *Model {
	t.Helper()

	hub := pubsub.NewHub()
	t.Cleanup(hub.Shutdown)

	svc := session.NewService(&fakeRegistry{}, hub.Session)
	m := New(api.NewClient(""), svc, hub, speech.NewSpeaker("", false), nil, true)
	m.SetSize(80, 24)
	m.sessionID = svc.ActiveID()
	return m
}

// deliver feeds one chat event through the page the way the bridge does.
func deliver(m *Model, typ pubsub.EventType, evt events.ChatEvent) {
	m.Update(bridge.ChatEventMsg{Event: pubsub.Event[events.ChatEvent]{Type: typ, Payload: evt}})
}

func TestErrorFrameShownAsBotMessage(t *testing.T) {
	m := newTestChatModel(t)
	m.startReply("hi")

	deliver(m, pubsub.EventFailed, events.NewErrorEvent(m.sessionID, "model overloaded"))

	got := m.messages.LastBotReply()
	if !strings.Contains(got, "model overloaded") {
		t.Errorf("expected error in bot message content, got %q", got)
	}
	if m.IsStreaming() {
		t.Error("expected streaming to stop on error")
	}
	if !m.input.IsEnabled() {
		t.Error("expected input re-enabled on error")
	}
}

func TestErrorFrameKeepsPartialText(t *testing.T) {
	m := newTestChatModel(t)
	m.startReply("hi")

	deliver(m, pubsub.EventProgress, events.NewTextDeltaEvent(m.sessionID, "Hello, "))
	deliver(m, pubsub.EventFailed, events.NewErrorEvent(m.sessionID, "connection reset"))

	got := m.messages.LastBotReply()
	if !strings.Contains(got, "Hello, ") {
		t.Errorf("expected partial text preserved, got %q", got)
	}
	if !strings.Contains(got, "connection reset") {
		t.Errorf("expected error appended to partial text, got %q", got)
	}
}

func TestCancelKeepsPartialText(t *testing.T) {
	m := newTestChatModel(t)
	m.startReply("hi")

	deliver(m, pubsub.EventProgress, events.NewTextDeltaEvent(m.sessionID, "Halfway"))
	deliver(m, pubsub.EventCancelled, events.NewCancelledEvent(m.sessionID))

	if got := m.messages.LastBotReply(); got != "Halfway" {
		t.Errorf("expected partial text kept on cancel, got %q", got)
	}
	if m.IsStreaming() {
		t.Error("expected streaming to stop on cancel")
	}
}

func TestOtherSessionEventsIgnored(t *testing.T) {
	m := newTestChatModel(t)
	m.startReply("hi")

	deliver(m, pubsub.EventProgress, events.NewTextDeltaEvent("session_other", "noise"))

	if got := m.messages.LastBotReply(); got != "" {
		t.Errorf("expected foreign deltas dropped, got %q", got)
	}
}

func TestSpeakCommandReportsCompletion(t *testing.T) {
	m := newTestChatModel(t)

	msg := m.speak("hello")()
	if _, ok := msg.(spokenMsg); !ok {
		t.Fatalf("expected spokenMsg, got %T", msg)
	}
}

func TestSpeechTogglePersists(t *testing.T) {
	t.Cleanup(func() { xdg.Reload() })
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()

	m := newTestChatModel(t)
	if msg := m.persistSpeechEnabled(true)(); msg != nil {
		t.Fatalf("expected no message, got %T", msg)
	}

	cfg, err := config.LoadFromFile(config.GlobalConfigPath())
	if err != nil {
		t.Fatalf("loading config after toggle: %v", err)
	}
	if !cfg.Speech.Enabled {
		t.Error("expected speech.enabled persisted to config")
	}
}
