package tui

import (
	"context"
	"testing"

	"github.com/pirizgpt/cli/internal/api"
	"github.com/pirizgpt/cli/internal/bridge"
	"github.com/pirizgpt/cli/internal/config"
	"github.com/pirizgpt/cli/internal/events"
	"github.com/pirizgpt/cli/internal/pubsub"
	"github.com/pirizgpt/cli/internal/session"
	"github.com/pirizgpt/cli/internal/speech"
)

type stubRegistry struct{}

func (stubRegistry) ListSessions(_ context.Context, _ int) ([]api.Session, error) {
	return nil, nil
}

func (stubRegistry) History(_ context.Context, _ string, _ int) ([]api.Message, error) {
	return nil, nil
}

func (stubRegistry) ClearSession(_ context.Context, _ string) error {
	return nil
}

func newTestModel(t *testing.T) (*Model, *session.Service) {
	t.Helper()

	hub := pubsub.NewHub()
	t.Cleanup(hub.Shutdown)

	svc := session.NewService(stubRegistry{}, hub.Session)
	m := New(config.NewConfig(), api.NewClient(""), hub, svc,
		speech.NewSpeaker("", false), speech.NewListener())
	m.bridge = bridge.NewTUIBridge(hub, nil,
		bridge.WithSessionFilter(svc.ActiveID()))
	return m, svc
}

func sessionMsg(evt events.SessionEvent) bridge.SessionEventMsg {
	return bridge.SessionEventMsg{Event: pubsub.Event[events.SessionEvent]{
		Type:    pubsub.EventUpdated,
		Payload: evt,
	}}
}

func TestBridgeFilterFollowsActiveSession(t *testing.T) {
	t.Run("reset retargets the chat filter", func(t *testing.T) {
		m, svc := newTestModel(t)
		if got := m.bridge.SessionFilter(); got != svc.ActiveID() {
			t.Fatalf("filter = %q, want initial active id %q", got, svc.ActiveID())
		}

		// Deleting the active session resets to a fresh id; the reset
		// event must retarget the filter or every reply in the new
		// session is dropped before it reaches the page.
		m.Update(sessionMsg(events.NewSessionResetEvent("session_1787566797080")))

		if got := m.bridge.SessionFilter(); got != "session_1787566797080" {
			t.Errorf("filter = %q, want the reset session id", got)
		}
	})

	t.Run("switch retargets the chat filter", func(t *testing.T) {
		m, _ := newTestModel(t)

		m.Update(sessionMsg(events.NewSessionSwitchedEvent("session_other")))

		if got := m.bridge.SessionFilter(); got != "session_other" {
			t.Errorf("filter = %q, want the switched session id", got)
		}
	})

	t.Run("refresh leaves the filter alone", func(t *testing.T) {
		m, svc := newTestModel(t)

		m.Update(sessionMsg(events.NewSessionRefreshEvent()))

		if got := m.bridge.SessionFilter(); got != svc.ActiveID() {
			t.Errorf("filter = %q, want unchanged active id", got)
		}
	})
}
