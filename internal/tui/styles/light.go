package styles

// NewLightTheme creates the light variant of the ocean palette, for
// terminals with a light background.
func NewLightTheme() *Theme {
	return &Theme{
		Name:   "light",
		IsDark: false,

		Primary:   ParseHex("#1d7dc4"), // Deep ocean blue
		Secondary: ParseHex("#3a9bd1"), // Sky blue
		Tertiary:  ParseHex("#c3d4de"), // Shallow water
		Accent:    ParseHex("#0f6aa8"), // Saturated water

		BgBase:    ParseHex("#f5f8fa"), // Paper
		BgSubtle:  ParseHex("#e8eef2"), // Slightly shaded
		BgOverlay: ParseHex("#dde6ec"), // Overlay background

		FgBase:   ParseHex("#22313c"), // Ink
		FgMuted:  ParseHex("#5a6c78"), // Muted slate
		FgSubtle: ParseHex("#8897a2"), // Subtle slate

		Border:      ParseHex("#c3d4de"),
		BorderFocus: ParseHex("#1d7dc4"),

		Success: ParseHex("#2c8a4b"), // Sea green
		Error:   ParseHex("#c43d52"), // Coral red
		Warning: ParseHex("#a8842c"), // Sand
		Info:    ParseHex("#1d7dc4"), // Blue
	}
}
