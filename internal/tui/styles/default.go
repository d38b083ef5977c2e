package styles

// NewDefaultTheme creates the ocean-blue dark theme for PirizGPT.
func NewDefaultTheme() *Theme {
	return &Theme{
		Name:   "default",
		IsDark: true,

		// Ocean blue tones
		Primary:   ParseHex("#5eb5f7"), // Ocean blue
		Secondary: ParseHex("#7ec8e8"), // Light sky blue
		Tertiary:  ParseHex("#33424d"), // Deep water
		Accent:    ParseHex("#8fd4f4"), // Bright water

		// Dark backgrounds
		BgBase:    ParseHex("#0f1419"), // Abyss
		BgSubtle:  ParseHex("#16202a"), // Slightly lighter
		BgOverlay: ParseHex("#1d2a36"), // Overlay background

		// Light foregrounds
		FgBase:   ParseHex("#c5d1de"), // Soft white-blue
		FgMuted:  ParseHex("#7a8b99"), // Muted blue-gray
		FgSubtle: ParseHex("#4d5b66"), // Subtle blue-gray

		// Borders
		Border:      ParseHex("#33424d"),
		BorderFocus: ParseHex("#5eb5f7"),

		// Status colors
		Success: ParseHex("#8ad4a1"), // Sea green
		Error:   ParseHex("#ef7d8e"), // Coral red
		Warning: ParseHex("#eace6e"), // Sand yellow
		Info:    ParseHex("#5eb5f7"), // Blue
	}
}
