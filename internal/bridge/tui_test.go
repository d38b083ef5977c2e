package bridge

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/pirizgpt/cli/internal/events"
	"github.com/pirizgpt/cli/internal/pubsub"
)

func TestNewTUIBridge(t *testing.T) {
	t.Run("creates bridge with hub and program", func(t *testing.T) {
		hub := pubsub.NewHub()
		defer hub.Shutdown()

		// Create a real tea.Program (we won't run it)
		program := tea.NewProgram(nil)

		bridge := NewTUIBridge(hub, program)

		if bridge == nil {
			t.Fatal("expected bridge to be created")
		}
		if bridge.hub != hub {
			t.Error("hub mismatch")
		}
		if bridge.program != program {
			t.Error("program mismatch")
		}
	})

	t.Run("applies session filter option", func(t *testing.T) {
		hub := pubsub.NewHub()
		defer hub.Shutdown()

		program := tea.NewProgram(nil)
		bridge := NewTUIBridge(hub, program, WithSessionFilter("session_123"))

		if got := bridge.SessionFilter(); got != "session_123" {
			t.Errorf("expected sessionFilter 'session_123', got %q", got)
		}
	})
}

func TestTUIBridgeStartStop(t *testing.T) {
	t.Run("start and stop lifecycle", func(t *testing.T) {
		hub := pubsub.NewHub()
		defer hub.Shutdown()

		program := tea.NewProgram(nil)
		bridge := NewTUIBridge(hub, program)

		ctx := context.Background()
		bridge.Start(ctx)

		// Give goroutines time to start
		time.Sleep(50 * time.Millisecond)

		bridge.Stop()

		// Should be safe to stop again
		bridge.Stop()
	})

	t.Run("stop without start is safe", func(t *testing.T) {
		hub := pubsub.NewHub()
		defer hub.Shutdown()

		program := tea.NewProgram(nil)
		bridge := NewTUIBridge(hub, program)

		// Should not panic
		bridge.Stop()
	})
}

func TestTUIBridgeSessionFilter(t *testing.T) {
	t.Run("SetSessionFilter changes filter", func(t *testing.T) {
		hub := pubsub.NewHub()
		defer hub.Shutdown()

		program := tea.NewProgram(nil)
		bridge := NewTUIBridge(hub, program)

		bridge.SetSessionFilter("session_new")

		if got := bridge.SessionFilter(); got != "session_new" {
			t.Errorf("expected sessionFilter 'session_new', got %q", got)
		}
	})

	t.Run("ClearSessionFilter removes filter", func(t *testing.T) {
		hub := pubsub.NewHub()
		defer hub.Shutdown()

		program := tea.NewProgram(nil)
		bridge := NewTUIBridge(hub, program, WithSessionFilter("initial"))

		bridge.ClearSessionFilter()

		if got := bridge.SessionFilter(); got != "" {
			t.Errorf("expected empty sessionFilter, got %q", got)
		}
	})

	t.Run("filter updates are safe while forwarding", func(t *testing.T) {
		hub := pubsub.NewHub()
		defer hub.Shutdown()

		program := tea.NewProgram(nil)
		bridge := NewTUIBridge(hub, program, WithSessionFilter("session_a"))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		bridge.Start(ctx)
		defer bridge.Stop()

		// Publish chat events while the filter changes underneath the
		// subscriber goroutine. The events never match the filter, so
		// they exercise the read path without reaching the program.
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				hub.Chat.Publish(pubsub.EventProgress,
					events.NewTextDeltaEvent("session_c", "x"))
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				bridge.SetSessionFilter("session_b")
				bridge.SetSessionFilter("session_a")
			}
		}()
		wg.Wait()

		if got := bridge.SessionFilter(); got != "session_a" {
			t.Errorf("expected sessionFilter 'session_a', got %q", got)
		}
	})
}

func TestTUIBridgeChatEventForwarding(t *testing.T) {
	t.Run("forwards chat events to program", func(t *testing.T) {
		hub := pubsub.NewHub()
		defer hub.Shutdown()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Subscribe directly to verify events are published
		chatEvents := hub.Chat.Subscribe(ctx)

		hub.Chat.Publish(pubsub.EventProgress,
			events.NewTextDeltaEvent("session_1", "Hello"))

		select {
		case event := <-chatEvents:
			if event.Payload.TextDelta != "Hello" {
				t.Errorf("expected TextDelta 'Hello', got %q", event.Payload.TextDelta)
			}
		case <-time.After(100 * time.Millisecond):
			t.Error("timeout waiting for chat event")
		}
	})
}

func TestTUIBridgeSessionEventForwarding(t *testing.T) {
	t.Run("forwards session events to program", func(t *testing.T) {
		hub := pubsub.NewHub()
		defer hub.Shutdown()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Subscribe directly to verify events are published
		sessionEvents := hub.Session.Subscribe(ctx)

		hub.Session.Publish(pubsub.EventUpdated,
			events.NewSessionSwitchedEvent("session_1"))

		select {
		case event := <-sessionEvents:
			if event.Payload.SessionID != "session_1" {
				t.Errorf("expected SessionID 'session_1', got %q", event.Payload.SessionID)
			}
		case <-time.After(100 * time.Millisecond):
			t.Error("timeout waiting for session event")
		}
	})
}

func TestTUIBridgeContextCancellation(t *testing.T) {
	t.Run("stops forwarding when context is cancelled", func(t *testing.T) {
		hub := pubsub.NewHub()
		defer hub.Shutdown()

		program := tea.NewProgram(nil)
		bridge := NewTUIBridge(hub, program)

		ctx, cancel := context.WithCancel(context.Background())
		bridge.Start(ctx)

		// Give goroutines time to start
		time.Sleep(50 * time.Millisecond)

		// Cancel context
		cancel()

		// Give goroutines time to stop
		time.Sleep(50 * time.Millisecond)

		// Stop should complete without hanging
		done := make(chan struct{})
		go func() {
			bridge.Stop()
			close(done)
		}()

		select {
		case <-done:
			// Success
		case <-time.After(1 * time.Second):
			t.Error("Stop() hung after context cancellation")
		}
	})
}

func TestTUIBridgeConcurrentPublish(t *testing.T) {
	t.Run("handles concurrent events from both brokers without panic", func(t *testing.T) {
		hub := pubsub.NewHub()
		defer hub.Shutdown()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Create subscribers to receive events
		chatSub := hub.Chat.Subscribe(ctx)
		sessionSub := hub.Session.Subscribe(ctx)

		// Drain subscribers in background
		go func() {
			for range chatSub {
			}
		}()
		go func() {
			for range sessionSub {
			}
		}()

		// Publish events concurrently from both brokers
		var wg sync.WaitGroup
		numEvents := 10

		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < numEvents; i++ {
				hub.Chat.Publish(pubsub.EventProgress,
					events.NewTextDeltaEvent("s", "text"))
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < numEvents; i++ {
				hub.Session.Publish(pubsub.EventUpdated,
					events.NewSessionSwitchedEvent("s"))
			}
		}()

		// Wait for all publishes to complete
		wg.Wait()

		// Cancel context to stop subscribers
		cancel()

		// Test passes if we get here without panic or deadlock
	})
}
