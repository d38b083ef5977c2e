// Package speech bridges bot replies to the platform's speech synthesis
// and recognition tools. Everything here shells out to external binaries;
// when none are installed the bridge degrades to a no-op.
package speech

import (
	"context"
	"os/exec"
	"sync"

	"github.com/pirizgpt/cli/internal/debug"
)

// engine describes one synthesis backend and how to invoke it.
type engine struct {
	name string
	// args builds the command line for speaking text with an optional voice.
	args func(voice, text string) []string
}

// engines in preference order. The first whose binary is on PATH wins.
var engines = []engine{
	{
		name: "say",
		args: func(voice, text string) []string {
			if voice != "" {
				return []string{"say", "-v", voice, text}
			}
			return []string{"say", text}
		},
	},
	{
		name: "espeak-ng",
		args: func(voice, text string) []string {
			if voice != "" {
				return []string{"espeak-ng", "-v", voice, text}
			}
			return []string{"espeak-ng", text}
		},
	},
	{
		name: "espeak",
		args: func(voice, text string) []string {
			if voice != "" {
				return []string{"espeak", "-v", voice, text}
			}
			return []string{"espeak", text}
		},
	},
}

// chooseEngine picks the first engine whose binary is available.
// The lookup is injected so tests can control availability.
func chooseEngine(available func(name string) bool) (engine, bool) {
	for _, e := range engines {
		if available(e.name) {
			return e, true
		}
	}
	return engine{}, false
}

func onPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// Speaker speaks bot replies aloud. At most one utterance plays at a
// time; a new Speak interrupts the current one.
type Speaker struct {
	mu      sync.Mutex
	engine  engine
	voice   string
	current *exec.Cmd
	enabled bool
	found   bool
}

// NewSpeaker detects an available synthesis engine. A missing engine is
// not an error; the speaker stays silent.
func NewSpeaker(voice string, enabled bool) *Speaker {
	e, found := chooseEngine(onPath)
	if found {
		debug.Event("speech", "engine", e.name)
	} else if enabled {
		debug.Event("speech", "engine", "none found on PATH")
	}
	return &Speaker{
		engine:  e,
		voice:   voice,
		enabled: enabled,
		found:   found,
	}
}

// Available reports whether a synthesis engine was found.
func (s *Speaker) Available() bool {
	return s.found
}

// Enabled reports whether speaking is turned on.
func (s *Speaker) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// SetEnabled toggles speaking. Disabling stops the current utterance.
func (s *Speaker) SetEnabled(enabled bool) {
	s.mu.Lock()
	s.enabled = enabled
	s.mu.Unlock()
	if !enabled {
		s.Stop()
	}
}

// Speak voices the given reply, interrupting any current utterance.
// Markdown syntax is stripped so the engine doesn't read asterisks aloud.
func (s *Speaker) Speak(ctx context.Context, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || !s.found {
		return
	}

	s.stopLocked()

	spoken := StripMarkdown(text)
	if spoken == "" {
		return
	}

	args := s.engine.args(s.voice, spoken)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...) //nolint:gosec // Engine name comes from the fixed table above.
	if err := cmd.Start(); err != nil {
		debug.Error("speech", err, "starting synthesis")
		return
	}
	s.current = cmd

	go func() {
		_ = cmd.Wait()
		s.mu.Lock()
		if s.current == cmd {
			s.current = nil
		}
		s.mu.Unlock()
	}()
}

// Stop interrupts the current utterance, if any.
func (s *Speaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Speaker) stopLocked() {
	if s.current != nil && s.current.Process != nil {
		_ = s.current.Process.Kill()
	}
	s.current = nil
}
