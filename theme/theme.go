// Package theme provides the color palette and text styles for the
// browser. Document attributes (bold, italic, code) and UI chrome
// (bars, frames, overlays) all draw from one Theme so every surface
// agrees.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme bundles the lipgloss styles used across the UI.
type Theme struct {
	Name string

	// Document text attributes.
	Text      lipgloss.Style
	Bold      lipgloss.Style
	Italic    lipgloss.Style
	Underline lipgloss.Style
	Code      lipgloss.Style

	// Links. Focused links render in reverse video so they stand out
	// regardless of the terminal palette.
	Link        lipgloss.Style
	LinkFocused lipgloss.Style

	// Structure: list markers, horizontal rules, paragraph frames.
	Marker lipgloss.Style
	Rule   lipgloss.Style
	Frame  lipgloss.Style

	// Chrome.
	Title     lipgloss.Style
	Accent    lipgloss.Style
	URLBar    lipgloss.Style
	StatusBar lipgloss.Style
	HelpBar   lipgloss.Style
	Overlay   lipgloss.Style
	Error     lipgloss.Style
}

// Adaptive pairs pick a readable variant for light and dark terminals.
var (
	dim    = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#666666"}
	accent = lipgloss.AdaptiveColor{Light: "#00838f", Dark: "#5fd7d7"}
	link   = lipgloss.AdaptiveColor{Light: "#1565c0", Dark: "#5f87d7"}
	errc   = lipgloss.AdaptiveColor{Light: "#c62828", Dark: "#d75f5f"}
	barFG  = lipgloss.AdaptiveColor{Light: "#343433", Dark: "#bfbaaa"}
	barBG  = lipgloss.AdaptiveColor{Light: "#d9dccf", Dark: "#222222"}
)

// Default returns the standard theme. It sets no base foreground or
// background so the terminal's own colors shine through.
func Default() *Theme {
	return &Theme{
		Name: "default",

		Text:      lipgloss.NewStyle(),
		Bold:      lipgloss.NewStyle().Bold(true),
		Italic:    lipgloss.NewStyle().Italic(true),
		Underline: lipgloss.NewStyle().Underline(true),
		Code:      lipgloss.NewStyle().Foreground(accent),

		Link:        lipgloss.NewStyle().Foreground(link).Underline(true),
		LinkFocused: lipgloss.NewStyle().Foreground(link).Underline(true).Reverse(true),

		Marker: lipgloss.NewStyle().Foreground(dim),
		Rule:   lipgloss.NewStyle().Foreground(dim),
		Frame:  lipgloss.NewStyle().Foreground(dim),

		Title:     lipgloss.NewStyle().Bold(true),
		Accent:    lipgloss.NewStyle().Foreground(accent),
		URLBar:    lipgloss.NewStyle().Foreground(barFG).Background(barBG),
		StatusBar: lipgloss.NewStyle().Foreground(barFG).Background(barBG),
		HelpBar:   lipgloss.NewStyle().Foreground(dim),
		Overlay:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 2),
		Error:     lipgloss.NewStyle().Foreground(errc).Bold(true),
	}
}

// Plain returns a theme with no styling at all. Used for piping page
// text to stdout and by tests that assert on rendered content.
func Plain() *Theme {
	return &Theme{Name: "plain"}
}
