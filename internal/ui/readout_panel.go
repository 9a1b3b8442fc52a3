package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mag-radar.solberg.io/internal/detection"
)

// RenderReadoutPanel renders the signal readout beside the radar: current
// level, delta, baseline, bearing, vertical direction, and the delta
// history sparkline.
func RenderReadoutPanel(r detection.Reading, history []float64, width, height int) string {
	innerW := width - 4
	if innerW < 18 {
		innerW = 18
	}

	title := StylePanelTitle.Render("SIGNAL")
	sep := StyleSeparator.Render(strings.Repeat("-", innerW))

	lines := []string{title, sep, ""}

	if !r.Calibrated {
		lines = append(lines,
			StyleLabel.Render("  Hold the sensor still."),
			StyleLabel.Render("  Establishing baseline..."),
		)
	} else {
		fields := []struct{ label, value string }{
			{"Level", r.Level.String()},
			{"Delta", fmt.Sprintf("%.1f µT", r.Delta)},
			{"Field", fmt.Sprintf("%.1f µT", r.Magnitude)},
			{"Baseline", fmt.Sprintf("%.1f µT", r.Baseline)},
			{"Bearing", bearingLabel(r)},
			{"Vertical", verticalLabel(r)},
		}
		for _, f := range fields {
			label := StyleLabel.Render(fmt.Sprintf("  %-10s", f.label))
			lines = append(lines, label+StyleValue.Render(f.value))
		}

		lines = append(lines, "")

		barWidth := innerW - 14
		if barWidth < 8 {
			barWidth = 8
		}
		bar := renderStrengthBar(r.Strength, barWidth)
		lines = append(lines, StyleLabel.Render("  Strength ")+bar)
	}

	lines = append(lines, "")

	if len(history) > 0 {
		sparkW := innerW - 4
		if sparkW < 10 {
			sparkW = 10
		}
		lines = append(lines, StyleLabel.Render("  Delta history:"))
		lines = append(lines, "  "+StyleSparkline.Render(renderSparkline(history, sparkW)))
	}

	// Pad to fill height
	for len(lines) < height-2 {
		lines = append(lines, "")
	}

	content := strings.Join(lines, "\n")
	return StylePanelBorder.Width(width - 2).Height(height - 2).Render(content)
}

func bearingLabel(r detection.Reading) string {
	if !r.Detecting {
		return "--"
	}
	// Processor angle is atan2 convention; the dial reads 0=north.
	screen := math.Pi/2 - r.Angle
	for screen < 0 {
		screen += 2 * math.Pi
	}
	deg := int(math.Round(screen * 180 / math.Pi))
	return fmt.Sprintf("%ddeg %s", deg%360, angleToDir(screen))
}

func verticalLabel(r detection.Reading) string {
	if !r.Detecting {
		return "--"
	}
	return fmt.Sprintf("%s (%+.1f µT)", strings.ToLower(r.Vertical.String()), r.VerticalDelta)
}

func renderStrengthBar(strength float64, width int) string {
	if strength < 0 {
		strength = 0
	}
	if strength > 1 {
		strength = 1
	}
	filled := int(math.Round(strength * float64(width)))

	filledPart := lipgloss.NewStyle().Foreground(strengthColor(strength)).
		Render(strings.Repeat("|", filled))
	emptyPart := lipgloss.NewStyle().Foreground(ColorDimAmber).
		Render(strings.Repeat("-", width-filled))
	pct := StyleValue.Render(fmt.Sprintf(" %3.0f%%", strength*100))
	return StyleHelp.Render("[") + filledPart + emptyPart + StyleHelp.Render("]") + pct
}

func strengthColor(strength float64) lipgloss.Color {
	switch {
	case strength > 0.66:
		return ColorError
	case strength > 0.33:
		return ColorWarning
	default:
		return ColorAmberBright
	}
}

func renderSparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}

	chars := []byte{'_', '.', '-', '~', '^'}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	rng := maxV - minV
	if rng < 1 {
		rng = 1
	}

	start := 0
	if len(values) > width {
		start = len(values) - width
	}

	var sb strings.Builder
	for i := start; i < len(values); i++ {
		idx := int((values[i] - minV) / rng * float64(len(chars)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		sb.WriteByte(chars[idx])
	}

	return sb.String()
}

// angleToDir maps a screen angle (0=north, clockwise) to a compass point.
func angleToDir(a float64) string {
	for a < 0 {
		a += 2 * math.Pi
	}
	for a >= 2*math.Pi {
		a -= 2 * math.Pi
	}
	dirs := []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	idx := int(math.Round(a/(math.Pi/4))) % 8
	return dirs[idx]
}
