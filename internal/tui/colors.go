package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/luna/internal/format"
)

// Color constants for the luna terminal theme
const (
	// Base Colors
	ColorCardBackground = "#1E1B2E" // Dark indigo
	ColorBorder         = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2"
	ColorSecondaryText = "#B1B8C7"
	ColorDisabledText  = "#6D7383"
	ColorHelpText      = "240" // Dark grey

	// Accent Colors
	ColorAccentMain   = "#7C3AED" // Active borders, selected card
	ColorAccentBright = "#A78BFA" // Headers, highlights

	// State Colors
	ColorError   = "#EF4444"
	ColorSuccess = "#22C55E"
	ColorWarning = "#F59E0B"
)

// BadgeStyle draws a format.Badge as a padded terminal pill
func BadgeStyle(b format.Badge) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(b.Foreground)).
		Background(lipgloss.Color(b.Background)).
		Padding(0, 1)
}

// Badge renders the badge label in its colors
func Badge(b format.Badge) string {
	return BadgeStyle(b).Render(b.Label)
}

// truncate shortens s to width runes, ending in "..." when cut
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
