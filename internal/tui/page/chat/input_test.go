package chat

import "testing"

func TestInputNarrowWidths(t *testing.T) {
	in := NewInput()

	// Terminals narrower than the border and padding must not panic.
	for _, w := range []int{0, 1, 4, 7, 8, 80} {
		in.SetWidth(w)
		if got := in.View(); got == "" {
			t.Errorf("width %d: expected a rendered view", w)
		}
	}
}

func TestInputEnableDisable(t *testing.T) {
	in := NewInput()
	if !in.IsEnabled() {
		t.Fatal("expected input to start enabled")
	}

	in.Disable()
	if in.IsEnabled() {
		t.Error("expected input disabled after Disable")
	}

	in.Enable()
	if !in.IsEnabled() {
		t.Error("expected input enabled after Enable")
	}
}

func TestInputValueRoundTrip(t *testing.T) {
	in := NewInput()
	in.SetValue("hello")
	if got := in.Value(); got != "hello" {
		t.Errorf("Value() = %q", got)
	}

	in.Clear()
	if got := in.Value(); got != "" {
		t.Errorf("Value() after Clear = %q", got)
	}
}
