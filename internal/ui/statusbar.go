package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"mag-radar.solberg.io/internal/detection"
)

// RenderStatusBar renders the bottom status bar. Timestamps feed only this
// display; the processor never uses them.
func RenderStatusBar(width int, scanning bool, r detection.Reading, calibDone, calibTotal int,
	samples int, elapsed time.Duration, muted bool, srcErr error) string {

	var mode string
	switch {
	case !r.Calibrated:
		mode = StyleStatusCalibrating.Render(fmt.Sprintf("[CALIBRATING %d/%d]", calibDone, calibTotal))
	case scanning:
		mode = StyleStatusScanning.Render("[SCANNING]")
	default:
		mode = StyleStatusPaused.Render("[PAUSED]")
	}

	audio := "on"
	if muted {
		audio = "off"
	}

	info := fmt.Sprintf(" Delta: %5.1fµT  Level: %s  Samples: %d  Elapsed: %s  Audio: %s",
		r.Delta, r.Level, samples, formatElapsed(elapsed), audio)

	content := mode + StyleStatusBar.Foreground(ColorAmber).Render(info)
	if srcErr != nil {
		content += lipgloss.NewStyle().Foreground(ColorError).Render("  " + srcErr.Error())
	}

	gap := width - lipgloss.Width(content)
	if gap < 0 {
		gap = 0
	}

	return StyleStatusBar.Width(width).Render(content + strings.Repeat(" ", gap))
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}
