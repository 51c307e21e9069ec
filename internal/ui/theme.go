// Package ui holds the terminal presentation layer: theme colors,
// headless-mode detection and the spinner/progress primitives the CLI
// commands share.
package ui

import "github.com/charmbracelet/lipgloss"

// Palette is the set of theme colors, as hex strings.
type Palette struct {
	Primary   string
	Secondary string
	Success   string
	Error     string
	Warning   string
	Muted     string
}

// Theme carries the palette and the global color switch. NoColor
// disables all styling, for pipes and CI logs.
type Theme struct {
	NoColor bool
	Colors  Palette
}

// DefaultTheme returns the standard palette.
func DefaultTheme() *Theme {
	return &Theme{
		Colors: Palette{
			Primary:   "#7C3AED",
			Secondary: "#06B6D4",
			Success:   "#22C55E",
			Error:     "#EF4444",
			Warning:   "#F59E0B",
			Muted:     "#6B7280",
		},
	}
}

func (t *Theme) paint(color, text string) string {
	if t.NoColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(text)
}

// Title renders a bold primary-colored heading.
func (t *Theme) Title(text string) string {
	if t.NoColor {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Colors.Primary)).Render(text)
}

// Success renders text in the success color.
func (t *Theme) Success(text string) string { return t.paint(t.Colors.Success, text) }

// Error renders text in the error color.
func (t *Theme) Error(text string) string { return t.paint(t.Colors.Error, text) }

// Warning renders text in the warning color.
func (t *Theme) Warning(text string) string { return t.paint(t.Colors.Warning, text) }

// Muted renders de-emphasized text.
func (t *Theme) Muted(text string) string { return t.paint(t.Colors.Muted, text) }

// Accent renders text in the secondary color.
func (t *Theme) Accent(text string) string { return t.paint(t.Colors.Secondary, text) }
