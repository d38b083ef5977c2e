package sessions

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/pirizgpt/cli/internal/session"
	"github.com/pirizgpt/cli/internal/tui/util"
)

func newTestModal(registry *stubRegistry) (*Modal, *session.Service) {
	svc := session.NewService(registry, nil)
	m := New(svc)
	m.SetSize(80, 24)
	if cmd := m.Show(); cmd != nil {
		m.Update(cmd())
	}
	return m, svc
}

func modalKey(t *testing.T, m *Modal, key string) tea.Msg {
	t.Helper()
	var k tea.KeyPressMsg
	switch key {
	case "enter":
		k = tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		k = tea.KeyPressMsg{Code: tea.KeyEscape}
	default:
		k = tea.KeyPressMsg{Code: rune(key[0]), Text: key}
	}
	_, cmd := m.Update(k)
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestModalShowHide(t *testing.T) {
	m, _ := newTestModal(&stubRegistry{sessions: threeSessions()})

	if !m.IsVisible() {
		t.Fatal("Expected modal to be visible after Show")
	}

	msg := modalKey(t, m, "esc")
	if _, ok := msg.(ModalClosedMsg); !ok {
		t.Fatalf("Expected ModalClosedMsg, got %T", msg)
	}
	if m.IsVisible() {
		t.Error("Expected modal to be hidden after esc")
	}
}

func TestModalDeleteConfirmFlow(t *testing.T) {
	registry := &stubRegistry{sessions: threeSessions()}
	m, svc := newTestModal(registry)

	// d parks the intent and moves to the confirmation step.
	m.Update(DeleteSessionMsg{SessionID: "session_2"})
	if m.step != StepDeleteConfirm {
		t.Fatal("Expected delete confirmation step")
	}
	if got := svc.PendingDeletion(); got != "session_2" {
		t.Fatalf("Expected pending deletion session_2, got %q", got)
	}

	// y confirms: the registry is cleared and the intent discarded.
	msg := modalKey(t, m, "y")
	res, ok := msg.(DeleteResolvedMsg)
	if !ok {
		t.Fatalf("Expected DeleteResolvedMsg, got %T", msg)
	}
	if res.Err != nil {
		t.Fatalf("Unexpected delete error: %v", res.Err)
	}
	if m.step != StepList {
		t.Error("Expected modal back on the list step")
	}
	if len(registry.cleared) != 1 || registry.cleared[0] != "session_2" {
		t.Errorf("Expected session_2 cleared, got %v", registry.cleared)
	}
	if svc.PendingDeletion() != "" {
		t.Error("Expected pending deletion to be discarded")
	}

	// Resolving the outcome refreshes the list and reports success.
	_, cmd := m.Update(res)
	if cmd == nil {
		t.Fatal("Expected a command from the delete outcome")
	}
	var sawSuccess bool
	if batch, ok := cmd().(tea.BatchMsg); ok {
		for _, c := range batch {
			if info, ok := c().(util.InfoMsg); ok && info.Type == util.InfoTypeSuccess {
				sawSuccess = true
			}
		}
	}
	if !sawSuccess {
		t.Error("Expected a success notification")
	}
}

func TestModalDeleteConfirmRunsOffEventLoop(t *testing.T) {
	registry := &stubRegistry{sessions: threeSessions()}
	m, _ := newTestModal(registry)

	m.Update(DeleteSessionMsg{SessionID: "session_2"})

	// Pressing y only schedules the deletion; the registry call happens
	// when the command runs, never on the event loop.
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	if cmd == nil {
		t.Fatal("Expected a deferred delete command")
	}
	if len(registry.cleared) != 0 {
		t.Fatal("Delete hit the registry on the event loop")
	}

	if _, ok := cmd().(DeleteResolvedMsg); !ok {
		t.Fatal("Expected the command to resolve the deletion")
	}
	if len(registry.cleared) != 1 {
		t.Errorf("Expected one cleared session, got %v", registry.cleared)
	}
}

func TestModalShowDefersListFetch(t *testing.T) {
	registry := &stubRegistry{sessions: threeSessions()}
	svc := session.NewService(registry, nil)
	m := New(svc)
	m.SetSize(80, 24)

	cmd := m.Show()
	if registry.listCalls != 0 {
		t.Fatal("Show hit the registry on the event loop")
	}
	if cmd == nil {
		t.Fatal("Expected a fetch command from Show")
	}

	m.Update(cmd())
	if registry.listCalls != 1 {
		t.Errorf("Expected one registry fetch, got %d", registry.listCalls)
	}
	if m.sessionList.Selected() == nil {
		t.Error("Expected the list populated after the fetch resolves")
	}
}

func TestModalDeleteCancel(t *testing.T) {
	registry := &stubRegistry{sessions: threeSessions()}
	m, svc := newTestModal(registry)

	m.Update(DeleteSessionMsg{SessionID: "session_1"})

	// n backs out with no side effects.
	modalKey(t, m, "n")
	if m.step != StepList {
		t.Error("Expected modal back on the list step")
	}
	if len(registry.cleared) != 0 {
		t.Errorf("Expected nothing cleared, got %v", registry.cleared)
	}
	if svc.PendingDeletion() != "" {
		t.Error("Expected pending deletion to be discarded")
	}
}

func TestModalDeleteEscapeBacksOut(t *testing.T) {
	registry := &stubRegistry{sessions: threeSessions()}
	m, svc := newTestModal(registry)

	m.Update(DeleteSessionMsg{SessionID: "session_1"})

	// esc in the confirmation step returns to the list, not out of the
	// modal.
	modalKey(t, m, "esc")
	if m.step != StepList {
		t.Error("Expected modal back on the list step")
	}
	if !m.IsVisible() {
		t.Error("Expected modal to stay open")
	}
	if svc.PendingDeletion() != "" {
		t.Error("Expected pending deletion to be discarded")
	}
	if len(registry.cleared) != 0 {
		t.Errorf("Expected nothing cleared, got %v", registry.cleared)
	}
}

func TestModalSelectSwitchesSession(t *testing.T) {
	m, _ := newTestModal(&stubRegistry{sessions: threeSessions()})

	_, cmd := m.Update(SessionSelectedMsg{SessionID: "session_3"})
	if cmd == nil {
		t.Fatal("Expected a command from session selection")
	}
	if m.IsVisible() {
		t.Error("Expected modal to close on selection")
	}

	// The batch carries both the close and the switch messages.
	var sawSwitch bool
	collect := func(msg tea.Msg) {
		if sw, ok := msg.(SwitchSessionMsg); ok {
			if sw.SessionID != "session_3" {
				t.Errorf("Expected session_3, got %s", sw.SessionID)
			}
			sawSwitch = true
		}
	}
	if batch, ok := cmd().(tea.BatchMsg); ok {
		for _, c := range batch {
			collect(c())
		}
	} else {
		collect(cmd())
	}
	if !sawSwitch {
		t.Error("Expected a SwitchSessionMsg")
	}
}
