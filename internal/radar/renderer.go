package radar

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mag-radar.solberg.io/internal/config"
	"mag-radar.solberg.io/internal/detection"
)

// Amber phosphor palette.
var (
	colorBright = lipgloss.Color("#FFB000")
	colorMid    = lipgloss.Color("#B37400")
	colorDim    = lipgloss.Color("#5C3D00")

	styleCenter = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleRing   = lipgloss.NewStyle().Foreground(colorMid)
	styleDot    = lipgloss.NewStyle().Foreground(colorDim)
	styleCalib  = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleLegend = lipgloss.NewStyle().Foreground(colorMid)
)

// levelColor maps a detection level to the blip color (hotter = stronger).
func levelColor(l detection.Level) lipgloss.Color {
	switch l {
	case detection.LevelWeak:
		return lipgloss.Color("#FFD75F")
	case detection.LevelModerate:
		return lipgloss.Color("#FFAA00")
	case detection.LevelStrong:
		return lipgloss.Color("#FF7700")
	case detection.LevelVeryStrong:
		return lipgloss.Color("#FF3300")
	default:
		return colorDim
	}
}

// levelSymbol maps a detection level to the blip character.
func levelSymbol(l detection.Level) byte {
	switch l {
	case detection.LevelWeak:
		return 'o'
	case detection.LevelModerate:
		return 'O'
	case detection.LevelStrong:
		return '@'
	case detection.LevelVeryStrong:
		return '#'
	default:
		return '.'
	}
}

// verticalMarker is drawn beside the blip: where the source sits
// relative to the sensor plane.
func verticalMarker(v detection.Vertical) byte {
	switch v {
	case detection.VerticalAbove:
		return '^'
	case detection.VerticalBelow:
		return 'v'
	default:
		return 0
	}
}

// Render produces the radar display. The reading places a single target
// blip; while uncalibrated a progress note replaces it.
func Render(width, height int, r detection.Reading, calibDone, calibTotal int, sweep *Sweep) string {
	if width < 10 || height < 5 {
		return ""
	}

	centerX := width / 2
	centerY := height / 2
	radius := float64(min(centerX-1, int(float64(centerY-1)/config.AspectRatio)))
	if radius < 3 {
		radius = 3
	}

	ringRadii := make([]float64, config.RingCount)
	for i := range ringRadii {
		ringRadii[i] = radius * float64(i+1) / float64(config.RingCount)
	}

	// Target blip position, only when calibrated and detecting.
	blipCol, blipRow := -1, -1
	markCol, markRow := -1, -1
	if r.Calibrated && r.Detecting {
		blipCol, blipRow = BlipCell(ScreenAngle(r.Angle), r.Distance, radius, centerX, centerY)
		if m := verticalMarker(r.Vertical); m != 0 {
			markCol, markRow = blipCol+1, blipRow
		}
	}

	// Calibration banner replaces cells on its row.
	banner := ""
	bannerRow, bannerCol := -1, -1
	if !r.Calibrated {
		banner = fmt.Sprintf("CALIBRATING %d/%d", calibDone, calibTotal)
		bannerRow = centerY
		bannerCol = centerX - len(banner)/2
	}

	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			if row == bannerRow && col >= bannerCol && col < bannerCol+len(banner) {
				sb.WriteString(styleCalib.Render(string(banner[col-bannerCol])))
				continue
			}
			if col == blipCol && row == blipRow {
				sb.WriteString(renderBlip(r, sweep, CellAngle(col, row, centerX, centerY)))
				continue
			}
			if col == markCol && row == markRow {
				sty := lipgloss.NewStyle().Foreground(levelColor(r.Level))
				sb.WriteString(sty.Render(string(verticalMarker(r.Vertical))))
				continue
			}
			sb.WriteString(renderCell(col, row, centerX, centerY, radius, ringRadii, sweep))
		}
		if row < height-1 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

func renderBlip(r detection.Reading, sweep *Sweep, cellAngle float64) string {
	sym := string(levelSymbol(r.Level))
	if sweep.Intensity(cellAngle) > 0.5 {
		return lipgloss.NewStyle().Foreground(colorBright).Bold(true).Render(sym)
	}
	return lipgloss.NewStyle().Foreground(levelColor(r.Level)).Bold(true).Render(sym)
}

func renderCell(col, row, centerX, centerY int, radius float64, ringRadii []float64, sweep *Sweep) string {
	dist := CellDistance(col, row, centerX, centerY)
	angle := CellAngle(col, row, centerX, centerY)

	if dist > radius+0.5 {
		return " "
	}

	if col == centerX && row == centerY {
		return styleCenter.Render("+")
	}

	if col == centerX && dist <= radius {
		return renderSweepChar('|', sweep, angle)
	}
	if row == centerY && dist <= radius {
		return renderSweepChar('-', sweep, angle)
	}

	for _, ringR := range ringRadii {
		if math.Abs(dist-ringR) < 0.8 {
			return renderSweepChar(RingChar(angle), sweep, angle)
		}
	}

	return renderInteriorCell(sweep, angle)
}

func renderSweepChar(ch rune, sweep *Sweep, angle float64) string {
	color := sweepColor(sweep.Intensity(angle))
	if color == "" {
		return styleRing.Render(string(ch))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(ch))
}

func renderInteriorCell(sweep *Sweep, angle float64) string {
	color := sweepColor(sweep.Intensity(angle))
	if color == "" {
		return styleDot.Render(".")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(".")
}

func sweepColor(intensity float64) string {
	switch {
	case intensity <= 0:
		return ""
	case intensity > 0.8:
		return "#FFB000"
	case intensity > 0.5:
		return "#CC8800"
	case intensity > 0.3:
		return "#996600"
	default:
		return "#4D3300"
	}
}

// RenderLegend produces the level legend line under the radar.
func RenderLegend(width int) string {
	parts := make([]string, 0, 4)
	for _, l := range []detection.Level{
		detection.LevelWeak,
		detection.LevelModerate,
		detection.LevelStrong,
		detection.LevelVeryStrong,
	} {
		sty := lipgloss.NewStyle().Foreground(levelColor(l))
		parts = append(parts, sty.Render(string(levelSymbol(l)))+styleLegend.Render(" "+strings.ToLower(l.String())))
	}
	legend := strings.Join(parts, "  ")

	pad := (width - lipgloss.Width(legend)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + legend
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
