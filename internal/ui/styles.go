package ui

import "github.com/charmbracelet/lipgloss"

// Amber phosphor palette
var (
	ColorAmberBright = lipgloss.Color("#FFB000")
	ColorAmber       = lipgloss.Color("#CC8800")
	ColorMidAmber    = lipgloss.Color("#B37400")
	ColorDimAmber    = lipgloss.Color("#5C3D00")
	ColorWarning     = lipgloss.Color("#FFAA00")
	ColorError       = lipgloss.Color("#FF3300")
)

// Pre-built styles
var (
	StyleMenuBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#221500")).
			Foreground(ColorAmberBright).
			Bold(true).
			Padding(0, 1)

	StyleMenuKey = lipgloss.NewStyle().
			Foreground(ColorAmberBright).
			Bold(true)

	StyleMenuLabel = lipgloss.NewStyle().
			Foreground(ColorAmber)

	StyleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#221500")).
			Foreground(ColorAmber).
			Padding(0, 1)

	StyleStatusScanning = lipgloss.NewStyle().
				Foreground(ColorAmberBright).
				Bold(true)

	StyleStatusPaused = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	StyleStatusCalibrating = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	StylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorAmber)

	StylePanelTitle = lipgloss.NewStyle().
			Foreground(ColorAmberBright).
			Bold(true).
			Padding(0, 1)

	StyleLabel = lipgloss.NewStyle().
			Foreground(ColorMidAmber)

	StyleValue = lipgloss.NewStyle().
			Foreground(ColorAmberBright).
			Bold(true)

	StyleSeparator = lipgloss.NewStyle().
			Foreground(ColorMidAmber)

	StyleSparkline = lipgloss.NewStyle().
			Foreground(ColorAmber)

	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorDimAmber)
)
