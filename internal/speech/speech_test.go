package speech

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChooseEngine(t *testing.T) {
	tests := []struct {
		name      string
		available map[string]bool
		want      string
		found     bool
	}{
		{
			name:      "prefers say when present",
			available: map[string]bool{"say": true, "espeak-ng": true},
			want:      "say",
			found:     true,
		},
		{
			name:      "falls back to espeak-ng",
			available: map[string]bool{"espeak-ng": true, "espeak": true},
			want:      "espeak-ng",
			found:     true,
		},
		{
			name:      "espeak is last resort",
			available: map[string]bool{"espeak": true},
			want:      "espeak",
			found:     true,
		},
		{
			name:      "nothing installed",
			available: map[string]bool{},
			found:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, found := chooseEngine(func(name string) bool { return tt.available[name] })
			if found != tt.found {
				t.Fatalf("found = %v, want %v", found, tt.found)
			}
			if found && e.name != tt.want {
				t.Errorf("engine = %q, want %q", e.name, tt.want)
			}
		})
	}
}

func TestEngineArgs(t *testing.T) {
	e, found := chooseEngine(func(name string) bool { return name == "say" })
	if !found {
		t.Fatal("expected say engine")
	}

	args := e.args("Samantha", "hello")
	joined := strings.Join(args, " ")
	if joined != "say -v Samantha hello" {
		t.Errorf("args with voice = %q", joined)
	}

	args = e.args("", "hello")
	if strings.Join(args, " ") != "say hello" {
		t.Errorf("args without voice = %q", strings.Join(args, " "))
	}
}

func TestChooseRecognizer(t *testing.T) {
	r, found := chooseRecognizer(func(name string) bool { return name == "hear" })
	if !found || r.name != "hear" {
		t.Errorf("recognizer = (%+v, %v), want hear", r, found)
	}

	_, found = chooseRecognizer(func(string) bool { return false })
	if found {
		t.Error("expected no recognizer")
	}
}

func TestSpeakerDisabledWithoutEngine(t *testing.T) {
	s := &Speaker{enabled: true, found: false}

	// Must not panic or spawn anything.
	s.Speak(t.Context(), "hello")
	s.Stop()
}

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text unchanged",
			in:   "Hello there.",
			want: "Hello there.",
		},
		{
			name: "fenced code dropped",
			in:   "Before\n```go\nfunc main() {}\n```\nAfter",
			want: "Before\n\nAfter",
		},
		{
			name: "inline code dropped",
			in:   "Run `go build` now",
			want: "Run  now",
		},
		{
			name: "heading marker removed",
			in:   "## Results\nAll good.",
			want: "Results\nAll good.",
		},
		{
			name: "link keeps visible text",
			in:   "See [the docs](https://example.com) for more.",
			want: "See the docs for more.",
		},
		{
			name: "emphasis unwrapped",
			in:   "This is **important** and *subtle*.",
			want: "This is important and subtle.",
		},
		{
			name: "horizontal rule removed",
			in:   "Above\n---\nBelow",
			want: "Above\n\nBelow",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripMarkdown(tt.in); got != tt.want {
				t.Errorf("StripMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripMarkdownTruncates(t *testing.T) {
	long := strings.Repeat("a", maxSpokenLength+100)
	if got := StripMarkdown(long); len(got) != maxSpokenLength {
		t.Errorf("len = %d, want %d", len(got), maxSpokenLength)
	}
}

func TestStripMarkdownTruncatesOnRuneBoundary(t *testing.T) {
	// Two-byte runes guarantee the byte cap lands mid-rune.
	long := strings.Repeat("é", maxSpokenLength)
	got := StripMarkdown(long)

	if !utf8.ValidString(got) {
		t.Error("truncated text is not valid UTF-8")
	}
	if len(got) > maxSpokenLength {
		t.Errorf("len = %d, want <= %d", len(got), maxSpokenLength)
	}
	if got == "" {
		t.Error("expected non-empty truncated text")
	}
}
