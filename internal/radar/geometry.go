package radar

import (
	"math"

	"mag-radar.solberg.io/internal/config"
)

// CellDistance computes the distance from a cell to the radar center,
// accounting for terminal aspect ratio.
func CellDistance(col, row, centerX, centerY int) float64 {
	dx := float64(col - centerX)
	dy := float64(row-centerY) / config.AspectRatio
	return math.Sqrt(dx*dx + dy*dy)
}

// CellAngle computes the angle from center to a cell.
// Returns radians in [0, 2π), where 0=north, increasing clockwise.
func CellAngle(col, row, centerX, centerY int) float64 {
	dx := float64(col - centerX)
	dy := float64(row-centerY) / config.AspectRatio
	angle := math.Atan2(dx, -dy) // 0=north, clockwise
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

// ScreenAngle converts a processor bearing (atan2 convention: 0=+x,
// counterclockwise) to the display convention (0=north, clockwise).
func ScreenAngle(mathAngle float64) float64 {
	return NormalizeAngle(math.Pi/2 - mathAngle)
}

// BlipCell places a target at the given screen angle and radius fraction,
// returning the terminal cell.
func BlipCell(screenAngle, fraction, radius float64, centerX, centerY int) (col, row int) {
	r := fraction * radius
	col = centerX + int(math.Round(r*math.Sin(screenAngle)))
	row = centerY - int(math.Round(r*math.Cos(screenAngle)*config.AspectRatio))
	return col, row
}

// RingChar returns the appropriate character for a ring at the given angle.
func RingChar(angle float64) rune {
	sector := int(math.Round(NormalizeAngle(angle)/(math.Pi/4))) % 8

	switch sector {
	case 1, 5: // NE, SW
		return '/'
	case 2, 6: // E, W
		return '|'
	case 3, 7: // SE, NW
		return '\\'
	default: // N, S
		return '-'
	}
}

// NormalizeAngle wraps an angle to [0, 2π).
func NormalizeAngle(a float64) float64 {
	for a < 0 {
		a += 2 * math.Pi
	}
	for a >= 2*math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// AngleDiff returns the shortest angular distance between two angles.
// Result is in [0, π].
func AngleDiff(a, b float64) float64 {
	d := math.Abs(NormalizeAngle(a) - NormalizeAngle(b))
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}
