package ui

import "fmt"

// ANSI256 color codes for CLI output.
const (
	colorLocale   = 74  // blue, locale codes
	colorValue    = 250 // light gray, translated values
	colorMuted    = 245 // medium gray, placeholders and hints
	colorReadonly = 179 // amber, readonly markers
)

var noColor bool

// RenderLocale returns a locale code in the accent (blue) color.
func RenderLocale(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorLocale, s)
}

// RenderValue returns a translated value (light gray).
func RenderValue(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorValue, s)
}

// RenderMuted returns s in the muted (gray) color, used for untranslated
// placeholders and hints.
func RenderMuted(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorMuted, s)
}

// RenderReadonly returns the marker for seeded, protected records (amber).
func RenderReadonly(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorReadonly, s)
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
