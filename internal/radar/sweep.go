package radar

import (
	"math"
	"time"

	"mag-radar.solberg.io/internal/config"
)

// Sweep manages the rotating sweep line state.
type Sweep struct {
	Angle     float64 // Current angle in radians [0, 2π)
	StartTime time.Time

	rpm      float64
	trailRad float64
}

// NewSweep creates a sweep with the configured rotation speed and trail.
func NewSweep() *Sweep {
	return &Sweep{
		StartTime: time.Now(),
		rpm:       config.SweepSpeedRPM,
		trailRad:  config.SweepTrailDeg * math.Pi / 180.0,
	}
}

// Update advances the sweep angle based on elapsed time.
func (s *Sweep) Update() {
	elapsed := time.Since(s.StartTime).Seconds()
	rps := s.rpm / 60.0
	s.Angle = math.Mod(elapsed*rps*2*math.Pi, 2*math.Pi)
}

// Degrees returns the current sweep angle in degrees.
func (s *Sweep) Degrees() float64 {
	return s.Angle * 180 / math.Pi
}

// Intensity returns the glow intensity [0, 1] for a given cell angle.
// Cells outside the trailing glow get 0; inside it the glow falls off
// linearly from the sweep head to the trail end.
func (s *Sweep) Intensity(cellAngle float64) float64 {
	diff := NormalizeAngle(s.Angle - cellAngle)
	if diff > s.trailRad {
		return 0
	}
	return 1.0 - diff/s.trailRad
}
