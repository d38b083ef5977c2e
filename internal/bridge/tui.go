package bridge

import (
	"context"
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/pirizgpt/cli/internal/debug"
	"github.com/pirizgpt/cli/internal/pubsub"
)

// TUIBridge subscribes to all Hub brokers and forwards events to tea.Program.
// It handles the conversion from domain events to Bubble Tea messages.
type TUIBridge struct { //nolint:govet // fieldalignment: preserving logical field order
	hub     *pubsub.Hub
	program *tea.Program

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// sessionFilter limits chat event forwarding to one session. It is
	// read from the subscriber goroutine and written from the UI loop,
	// so access goes through filterMu.
	filterMu      sync.RWMutex
	sessionFilter string
}

// TUIBridgeOption configures the TUIBridge.
type TUIBridgeOption func(*TUIBridge)

// WithSessionFilter only forwards chat events for the specified session.
func WithSessionFilter(sessionID string) TUIBridgeOption {
	return func(b *TUIBridge) {
		b.sessionFilter = sessionID
	}
}

// NewTUIBridge creates a new TUI bridge.
func NewTUIBridge(hub *pubsub.Hub, program *tea.Program, opts ...TUIBridgeOption) *TUIBridge {
	b := &TUIBridge{
		hub:     hub,
		program: program,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Start begins forwarding events to the TUI.
// Call Stop() to gracefully shut down.
func (b *TUIBridge) Start(ctx context.Context) {
	b.ctx, b.cancel = context.WithCancel(ctx)

	// Start subscriber goroutines for each broker
	b.wg.Add(2)
	go b.subscribeChat()
	go b.subscribeSession()

	debug.Event("bridge", "start", "TUI bridge started")
}

// Stop gracefully shuts down the bridge.
func (b *TUIBridge) Stop() {
	if b.cancel != nil {
		b.cancel()
	}
	b.wg.Wait()
	debug.Event("bridge", "stop", "TUI bridge stopped")
}

func (b *TUIBridge) subscribeChat() {
	defer b.wg.Done()

	events := b.hub.Chat.Subscribe(b.ctx)
	for {
		select {
		case <-b.ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}

			// Apply session filter if set
			if filter := b.SessionFilter(); filter != "" && event.Payload.SessionID != filter {
				continue
			}

			b.program.Send(ChatEventMsg{Event: event})
		}
	}
}

func (b *TUIBridge) subscribeSession() {
	defer b.wg.Done()

	events := b.hub.Session.Subscribe(b.ctx)
	for {
		select {
		case <-b.ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}

			b.program.Send(SessionEventMsg{Event: event})
		}
	}
}

// SetSessionFilter updates the session filter at runtime.
func (b *TUIBridge) SetSessionFilter(sessionID string) {
	b.filterMu.Lock()
	b.sessionFilter = sessionID
	b.filterMu.Unlock()
}

// ClearSessionFilter removes the session filter.
func (b *TUIBridge) ClearSessionFilter() {
	b.SetSessionFilter("")
}

// SessionFilter returns the current session filter, or "" when unset.
func (b *TUIBridge) SessionFilter() string {
	b.filterMu.RLock()
	defer b.filterMu.RUnlock()
	return b.sessionFilter
}
