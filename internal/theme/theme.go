// Package theme holds the light and dark palettes and derived styles.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme is one named color palette.
type Theme struct {
	Name string

	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color
	Accent     lipgloss.Color
}

// The two themes the dark-mode toggle switches between.
var (
	LightTheme = Theme{
		Name:       "light",
		Primary:    lipgloss.Color("#22C55E"),
		Secondary:  lipgloss.Color("#F97316"),
		Background: lipgloss.Color("#F9FAFB"),
		Surface:    lipgloss.Color("#FFFFFF"),
		Foreground: lipgloss.Color("#111827"),
		Muted:      lipgloss.Color("#6B7280"),
		Success:    lipgloss.Color("#16A34A"),
		Warning:    lipgloss.Color("#EA580C"),
		Error:      lipgloss.Color("#DC2626"),
		Border:     lipgloss.Color("#D1D5DB"),
		Accent:     lipgloss.Color("#15803D"),
	}
	DarkTheme = Theme{
		Name:       "dark",
		Primary:    lipgloss.Color("#4ADE80"),
		Secondary:  lipgloss.Color("#FB923C"),
		Background: lipgloss.Color("#111827"),
		Surface:    lipgloss.Color("#1F2937"),
		Foreground: lipgloss.Color("#F0F0F0"),
		Muted:      lipgloss.Color("#9CA3AF"),
		Success:    lipgloss.Color("#22C55E"),
		Warning:    lipgloss.Color("#F59E0B"),
		Error:      lipgloss.Color("#F87171"),
		Border:     lipgloss.Color("#374151"),
		Accent:     lipgloss.Color("#86EFAC"),
	}
)

// Select returns the theme for the dark-mode flag.
func Select(dark bool) Theme {
	if dark {
		return DarkTheme
	}
	return LightTheme
}

// Indicator returns the dark-mode toggle glyph.
func Indicator(dark bool) string {
	if dark {
		return "☀"
	}
	return "☾"
}

// Styles are the rendering styles derived from a theme.
type Styles struct {
	Title     lipgloss.Style
	Emphasis  lipgloss.Style
	Body      lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Info      lipgloss.Style
	Card      lipgloss.Style
	ActiveDot lipgloss.Style
	Dot       lipgloss.Style
	ActiveTab lipgloss.Style
	Tab       lipgloss.Style
	Banner    lipgloss.Style
	Input     lipgloss.Style
}

// NewStyles derives the style set for a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Foreground(t.Foreground).Bold(true),
		Emphasis:  lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Body:      lipgloss.NewStyle().Foreground(t.Foreground),
		Muted:     lipgloss.NewStyle().Foreground(t.Muted),
		Success:   lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		Warning:   lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		Error:     lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		Info:      lipgloss.NewStyle().Foreground(t.Secondary),
		Card:      lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder(), true).BorderForeground(t.Border),
		ActiveDot: lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Dot:       lipgloss.NewStyle().Foreground(t.Muted),
		ActiveTab: lipgloss.NewStyle().Foreground(t.Foreground).Bold(true).Padding(0, 1).Border(lipgloss.RoundedBorder(), true).BorderForeground(t.Primary),
		Tab:       lipgloss.NewStyle().Foreground(t.Muted).Padding(0, 1).Border(lipgloss.RoundedBorder(), true).BorderForeground(t.Border),
		Banner:    lipgloss.NewStyle().Padding(0, 1).Bold(true),
		Input:     lipgloss.NewStyle().Foreground(t.Foreground),
	}
}
