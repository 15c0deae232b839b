package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	colorAccent  = lipgloss.Color("#7B68EE")
	colorSuccess = lipgloss.Color("#50C878")
	colorError   = lipgloss.Color("#FF6961")
	colorMuted   = lipgloss.Color("#808080")
	colorBorder  = lipgloss.Color("#3A3A5C")
	colorTitle   = lipgloss.Color("#C4B5FD")
)

// Tab bar styles.
var (
	styleTabActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorAccent).
			Padding(0, 2)

	styleTabInactive = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	styleTabBar = lipgloss.NewStyle().
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottomForeground(colorBorder).
			MarginBottom(1)
)

// Panel styles.
var (
	stylePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			MarginBottom(1)

	stylePanelTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorTitle).
			Padding(0, 1)
)

// Text styles.
var (
	styleOK       = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	styleErr      = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	styleDim      = lipgloss.NewStyle().Foreground(colorMuted)
	styleKey      = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleSelected = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(colorAccent)
)

// Status bar (bottom of screen).
var styleStatusBar = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(0, 1)
