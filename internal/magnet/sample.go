package magnet

import (
	"math"
	"time"
)

// Sample is one raw magnetometer observation. Field components are in
// microtesla. Immutable once produced.
type Sample struct {
	X, Y, Z float64
	Time    time.Time
}

// Magnitude returns the total field strength in µT.
func (s Sample) Magnitude() float64 {
	return math.Sqrt(s.X*s.X + s.Y*s.Y + s.Z*s.Z)
}

// Valid reports whether all components are finite. Sources drop invalid
// samples at the boundary; the processor assumes finite input.
func (s Sample) Valid() bool {
	return !math.IsNaN(s.X) && !math.IsInf(s.X, 0) &&
		!math.IsNaN(s.Y) && !math.IsInf(s.Y, 0) &&
		!math.IsNaN(s.Z) && !math.IsInf(s.Z, 0)
}
