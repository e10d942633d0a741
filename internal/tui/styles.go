package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jpalmerr/buildpulse/internal/health"
)

var (
	colorGreen  = lipgloss.Color("#10b981")
	colorYellow = lipgloss.Color("#f59e0b")
	colorRed    = lipgloss.Color("#ef4444")
	colorGray   = lipgloss.Color("#6b7280")
	colorWhite  = lipgloss.Color("#f8fafc")
	colorDark   = lipgloss.Color("#1e293b")
)

// State badge styles.
var (
	StyleStable    = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	StyleUnstable  = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	StyleUnhealthy = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	StylePending   = lipgloss.NewStyle().Foreground(colorGray)
)

// StyleHeader is the full-width dark header bar.
var StyleHeader = lipgloss.NewStyle().
	Background(colorDark).
	Foreground(colorWhite).
	Padding(0, 1)

var (
	StyleTableHeader = lipgloss.NewStyle().
				Bold(true).
				Underline(true).
				Foreground(colorGray)

	StyleTableRow = lipgloss.NewStyle().
			Foreground(colorWhite)
)

var (
	StyleError = lipgloss.NewStyle().Foreground(colorRed)
	StyleDim   = lipgloss.NewStyle().Foreground(colorGray)
)

// StateStyle returns the badge style for a classification.
func StateStyle(s health.State) lipgloss.Style {
	switch s {
	case health.StateStable:
		return StyleStable
	case health.StateUnstable:
		return StyleUnstable
	default:
		return StyleUnhealthy
	}
}
