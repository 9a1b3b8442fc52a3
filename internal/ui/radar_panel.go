package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderRadarPanel wraps the radar content and legend in a bordered panel.
func RenderRadarPanel(width, height int, radarContent, legend string) string {
	title := StylePanelTitle.Render("FIELD SCAN")

	lines := []string{title, radarContent, legend}
	content := strings.Join(lines, "\n")

	return StylePanelBorder.
		Width(width - 2).
		Height(height - 2).
		Render(content)
}

// ComposeLayout joins the radar panel and readout panel horizontally,
// with menu bar on top and status bar on bottom.
func ComposeLayout(menuBar, radarPanel, readoutPanel, statusBar string) string {
	middle := lipgloss.JoinHorizontal(lipgloss.Top, radarPanel, readoutPanel)
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, middle, statusBar)
}
