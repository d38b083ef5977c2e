// Package session owns the client-side session view-model: which
// session is active, which one is pending deletion, and the named
// transitions that mutate that state. All durable state lives in the
// remote registry; this layer only coordinates it.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pirizgpt/cli/internal/api"
	"github.com/pirizgpt/cli/internal/debug"
	"github.com/pirizgpt/cli/internal/events"
	"github.com/pirizgpt/cli/internal/pubsub"
)

// Registry is the slice of the backend client the service needs.
type Registry interface {
	ListSessions(ctx context.Context, limit int) ([]api.Session, error)
	History(ctx context.Context, sessionID string, limit int) ([]api.Message, error)
	ClearSession(ctx context.Context, sessionID string) error
}

// Service manages the active session and pending deletion with pub/sub
// event publishing. There is exactly one active session at a time; the
// pending deletion is non-empty only between a delete intent and its
// resolution.
type Service struct {
	registry Registry
	broker   *pubsub.Broker[events.SessionEvent]
	active   string
	pending  string
	mu       sync.RWMutex
}

// NewService creates a session service starting on a fresh local session.
func NewService(registry Registry, broker *pubsub.Broker[events.SessionEvent]) *Service {
	return &Service{
		registry: registry,
		broker:   broker,
		active:   NewLocalID(),
	}
}

// NewLocalID generates a client-side session identifier. The backend
// records it on first message send; until then the session is invisible
// in the registry.
func NewLocalID() string {
	return fmt.Sprintf("session_%d", time.Now().UnixMilli())
}

// ActiveID returns the currently active session identifier.
func (s *Service) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Select switches the active session.
func (s *Service) Select(id string) {
	s.mu.Lock()
	s.active = id
	s.mu.Unlock()

	if s.broker != nil {
		s.broker.Publish(pubsub.EventUpdated, events.NewSessionSwitchedEvent(id))
	}
}

// Reset switches to a freshly generated local session with an empty
// transcript, the "new chat" transition.
func (s *Service) Reset() string {
	id := NewLocalID()

	s.mu.Lock()
	s.active = id
	s.mu.Unlock()

	if s.broker != nil {
		s.broker.Publish(pubsub.EventCreated, events.NewSessionResetEvent(id))
	}
	return id
}

// List fetches all known sessions. A registry failure degrades to an
// empty list; the sidebar shows nothing rather than crashing.
func (s *Service) List(ctx context.Context) []api.Session {
	sessions, err := s.registry.ListSessions(ctx, 0)
	if err != nil {
		debug.Error("session", err, "listing sessions")
		return nil
	}
	return sessions
}

// History fetches the transcript of one session, assigning local
// message ids. A registry failure degrades to an empty transcript.
func (s *Service) History(ctx context.Context, id string) []api.Message {
	messages, err := s.registry.History(ctx, id, 0)
	if err != nil {
		debug.Error("session", err, "fetching history")
		return nil
	}
	for i := range messages {
		messages[i].ID = uuid.New().String()
	}
	return messages
}

// RequestDelete records a deletion intent awaiting confirmation.
func (s *Service) RequestDelete(id string) {
	s.mu.Lock()
	s.pending = id
	s.mu.Unlock()
}

// PendingDeletion returns the session id awaiting delete confirmation,
// or "" when none is pending.
func (s *Service) PendingDeletion() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending
}

// CancelDelete discards the deletion intent without side effects.
func (s *Service) CancelDelete() {
	s.mu.Lock()
	s.pending = ""
	s.mu.Unlock()
}

// ConfirmDelete issues the pending deletion against the registry. The
// intent is discarded whether or not the request succeeds. If the
// deleted session was active, the view-model resets to a fresh session
// and resetActive is true. On failure the error is returned for a
// user-visible alert.
func (s *Service) ConfirmDelete(ctx context.Context) (resetActive bool, err error) {
	s.mu.Lock()
	target := s.pending
	s.pending = ""
	s.mu.Unlock()

	if target == "" {
		return false, nil
	}

	if err := s.registry.ClearSession(ctx, target); err != nil {
		debug.Error("session", err, "deleting session")
		return false, err
	}

	if s.broker != nil {
		s.broker.Publish(pubsub.EventDeleted, events.NewSessionDeletedEvent(target))
	}

	s.mu.RLock()
	wasActive := s.active == target
	s.mu.RUnlock()

	if wasActive {
		s.Reset()
		return true, nil
	}
	return false, nil
}
