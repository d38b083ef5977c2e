package speech

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/pirizgpt/cli/internal/debug"
)

// recognizer describes one dictation backend. Each runs until the user
// stops talking and prints the transcript on stdout.
type recognizer struct {
	name string
	args []string
}

// recognizers in preference order.
var recognizers = []recognizer{
	{name: "hear", args: []string{"hear", "-d", "-p"}},
	{name: "nerd-dictation", args: []string{"nerd-dictation", "begin", "--timeout", "2"}},
}

// chooseRecognizer picks the first recognizer whose binary is available.
func chooseRecognizer(available func(name string) bool) (recognizer, bool) {
	for _, r := range recognizers {
		if available(r.name) {
			return r, true
		}
	}
	return recognizer{}, false
}

// Listener captures a single spoken utterance and returns its transcript.
type Listener struct {
	rec   recognizer
	found bool
}

// NewListener detects an available dictation tool.
func NewListener() *Listener {
	r, found := chooseRecognizer(onPath)
	if found {
		debug.Event("speech", "recognizer", r.name)
	}
	return &Listener{rec: r, found: found}
}

// Available reports whether a dictation tool was found.
func (l *Listener) Available() bool {
	return l.found
}

// Listen blocks until the user finishes speaking and returns the
// transcript. Cancel the context to abort the capture.
func (l *Listener) Listen(ctx context.Context) (string, error) {
	if !l.found {
		return "", fmt.Errorf("no dictation tool found on PATH")
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, l.rec.args[0], l.rec.args[1:]...) //nolint:gosec // Recognizer name comes from the fixed table above.
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("running %s: %w", l.rec.name, err)
	}
	return strings.TrimSpace(out.String()), nil
}
