// Package styles provides the theme and shared lipgloss styles for the TUI.
package styles

import (
	"image/color"

	"charm.land/bubbles/v2/textinput"
	"charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Theme holds the color palette for the TUI.
type Theme struct {
	Name   string
	IsDark bool

	Primary   color.Color
	Secondary color.Color
	Tertiary  color.Color
	Accent    color.Color

	BgBase    color.Color
	BgSubtle  color.Color
	BgOverlay color.Color

	FgBase   color.Color
	FgMuted  color.Color
	FgSubtle color.Color

	Border      color.Color
	BorderFocus color.Color

	Success color.Color
	Error   color.Color
	Warning color.Color
	Info    color.Color

	styles *Styles
}

// Styles is the set of pre-built lipgloss styles derived from a theme.
type Styles struct {
	Text      lipgloss.Style
	Muted     lipgloss.Style
	Subtle    lipgloss.Style
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Info      lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	TextInput textinput.Styles
}

// S returns the styles for this theme, building them on first use.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	textInput := textinput.DefaultStyles(t.IsDark)
	textInput.Focused.Placeholder = base.Foreground(t.FgSubtle)
	textInput.Focused.Text = base
	textInput.Blurred.Placeholder = base.Foreground(t.FgSubtle)
	textInput.Blurred.Text = base.Foreground(t.FgMuted)
	textInput.Cursor.Color = t.Primary

	return &Styles{
		Text:      base,
		Muted:     base.Foreground(t.FgMuted),
		Subtle:    base.Foreground(t.FgSubtle),
		Primary:   base.Foreground(t.Primary),
		Secondary: base.Foreground(t.Secondary),
		Info:      base.Foreground(t.Info),
		Success:   base.Foreground(t.Success),
		Warning:   base.Foreground(t.Warning),
		Error:     base.Foreground(t.Error),
		Title:     base.Foreground(t.Accent).Bold(true),
		Subtitle:  base.Foreground(t.Secondary).Bold(true),
		TextInput: textInput,
	}
}

// ParseHex parses a hex color string like "#5eb5f7".
func ParseHex(hex string) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.White
	}
	return c
}

// ApplyForegroundGrad renders text with a horizontal color gradient,
// blending per grapheme cluster between the two endpoint colors.
func ApplyForegroundGrad(text string, from, to color.Color) string {
	if text == "" {
		return ""
	}

	start, _ := colorful.MakeColor(from)
	end, _ := colorful.MakeColor(to)

	clusters := make([]string, 0, len(text))
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}

	if len(clusters) == 1 {
		return lipgloss.NewStyle().Foreground(start).Render(text)
	}

	var out string
	for i, cluster := range clusters {
		blend := start.BlendLuv(end, float64(i)/float64(len(clusters)-1))
		out += lipgloss.NewStyle().Foreground(blend).Render(cluster)
	}
	return out
}

// Manager owns the active theme.
type Manager struct {
	current *Theme
}

var manager *Manager

// themes indexes the built-in themes by name. "dark" aliases the
// default ocean theme so the persisted preference reads naturally.
func themes() map[string]func() *Theme {
	return map[string]func() *Theme{
		"default": NewDefaultTheme,
		"dark":    NewDefaultTheme,
		"light":   NewLightTheme,
	}
}

// NewManager initializes the theme manager with the named theme.
// Empty or unknown names fall back to the default.
func NewManager(name string) *Manager {
	build, ok := themes()[name]
	if !ok {
		build = NewDefaultTheme
	}
	manager = &Manager{current: build()}
	return manager
}

// CurrentTheme returns the active theme, initializing the manager if needed.
func CurrentTheme() *Theme {
	if manager == nil {
		NewManager("")
	}
	return manager.current
}
