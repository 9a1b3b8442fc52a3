// Package detection turns raw magnetometer samples into a calibrated,
// directional detection signal with discrete severity levels.
package detection

import (
	"math"
	"time"

	"mag-radar.solberg.io/internal/config"
	"mag-radar.solberg.io/internal/magnet"
)

// Reading is the derived output of one processed sample. Consumers must
// treat every field except Calibrated as invalid until Calibrated is true.
type Reading struct {
	Time time.Time

	Calibrated bool
	Detecting  bool

	Magnitude float64 // smoothed total field, µT
	Baseline  float64 // ambient field established during calibration, µT
	Delta     float64 // |Magnitude - Baseline|, the primary signal, µT
	Strength  float64 // Delta normalized to [0, 1]
	Level     Level

	Angle    float64 // planar deviation bearing, atan2 convention, (-π, π]
	Distance float64 // display radius fraction, [0, MaxDistance]

	VerticalDelta float64 // signed Z deviation, µT
	Vertical      Vertical
}

// Processor is the streaming signal core. It is not safe for concurrent
// use: Process must be invoked from exactly one call sequence. It does no
// I/O and never blocks.
type Processor struct {
	tuning config.Tuning

	smoothedMag float64
	smoothedX   float64
	smoothedY   float64
	smoothedZ   float64
	primed      bool // smoothing values initialized from the first sample

	calibMag []float64
	calibX   []float64
	calibY   []float64
	calibZ   []float64

	calibrated bool
	baseline   float64
	baselineX  float64
	baselineY  float64
	baselineZ  float64
}

// NewProcessor creates a processor with the given tuning. One processor
// serves one scan session.
func NewProcessor(t config.Tuning) *Processor {
	return &Processor{
		tuning:   t,
		calibMag: make([]float64, 0, t.CalibrationCount),
		calibX:   make([]float64, 0, t.CalibrationCount),
		calibY:   make([]float64, 0, t.CalibrationCount),
		calibZ:   make([]float64, 0, t.CalibrationCount),
	}
}

// Process folds one sample into the state and returns the derived reading.
// The second return is false while calibrating: those readings carry only
// Time and the Calibrated flag. The flag turns true on the exact call that
// completes the calibration window, still without detection output.
func (p *Processor) Process(s magnet.Sample) (Reading, bool) {
	mag := s.Magnitude()

	// Smoothing runs on every sample, calibrated or not, so the filter
	// carries no startup transient into the detection phase.
	if !p.primed {
		p.smoothedMag = mag
		p.smoothedX = s.X
		p.smoothedY = s.Y
		p.smoothedZ = s.Z
		p.primed = true
	} else {
		a := p.tuning.FilterAlpha
		p.smoothedMag += a * (mag - p.smoothedMag)
		p.smoothedX += a * (s.X - p.smoothedX)
		p.smoothedY += a * (s.Y - p.smoothedY)
		p.smoothedZ += a * (s.Z - p.smoothedZ)
	}

	if !p.calibrated {
		// Baseline averages use raw values, not smoothed.
		p.calibMag = append(p.calibMag, mag)
		p.calibX = append(p.calibX, s.X)
		p.calibY = append(p.calibY, s.Y)
		p.calibZ = append(p.calibZ, s.Z)

		if len(p.calibMag) >= p.tuning.CalibrationCount {
			p.baseline = mean(p.calibMag)
			p.baselineX = mean(p.calibX)
			p.baselineY = mean(p.calibY)
			p.baselineZ = mean(p.calibZ)
			p.calibrated = true
		}
		return Reading{Time: s.Time, Calibrated: p.calibrated}, false
	}

	// Scalar deviation. The sign is discarded: rising and falling field
	// read the same severity.
	delta := math.Abs(p.smoothedMag - p.baseline)

	// Planar deviation gives the bearing and the display radius.
	dx := p.smoothedX - p.baselineX
	dy := p.smoothedY - p.baselineY
	angle := math.Atan2(dy, dx)
	distance := math.Hypot(dx, dy) / p.tuning.MaxDelta * p.tuning.DistanceScale
	if distance > p.tuning.MaxDistance {
		distance = p.tuning.MaxDistance
	}

	strength := delta / p.tuning.MaxDelta
	if strength > 1 {
		strength = 1
	}

	level := p.classify(delta)

	vd := p.smoothedZ - p.baselineZ
	vertical := VerticalLevel
	switch {
	case vd > p.tuning.VerticalDeadZone:
		vertical = VerticalAbove
	case vd < -p.tuning.VerticalDeadZone:
		vertical = VerticalBelow
	}

	return Reading{
		Time:          s.Time,
		Calibrated:    true,
		Detecting:     level != LevelNone,
		Magnitude:     p.smoothedMag,
		Baseline:      p.baseline,
		Delta:         delta,
		Strength:      strength,
		Level:         level,
		Angle:         angle,
		Distance:      distance,
		VerticalDelta: vd,
		Vertical:      vertical,
	}, true
}

// classify buckets delta into a level. Boundaries belong to the higher
// bucket: exactly 15.0 is weak, exactly 120.0 is very strong.
func (p *Processor) classify(delta float64) Level {
	t := p.tuning
	switch {
	case delta < t.DetectionThreshold:
		return LevelNone
	case delta < t.ModerateThreshold:
		return LevelWeak
	case delta < t.StrongThreshold:
		return LevelModerate
	case delta < t.VeryStrongThreshold:
		return LevelStrong
	default:
		return LevelVeryStrong
	}
}

// Recalibrate discards the baselines and restarts the calibration window.
// Smoothing state is kept so filtering continues without a transient.
// Idempotent.
func (p *Processor) Recalibrate() {
	p.calibMag = p.calibMag[:0]
	p.calibX = p.calibX[:0]
	p.calibY = p.calibY[:0]
	p.calibZ = p.calibZ[:0]
	p.calibrated = false
	p.baseline = 0
	p.baselineX = 0
	p.baselineY = 0
	p.baselineZ = 0
}

// Calibrated reports whether the baseline has been established.
func (p *Processor) Calibrated() bool {
	return p.calibrated
}

// CalibrationProgress returns buffered samples and the window size.
func (p *Processor) CalibrationProgress() (done, total int) {
	return len(p.calibMag), p.tuning.CalibrationCount
}

// Baseline returns the calibrated ambient magnitude, zero before that.
func (p *Processor) Baseline() float64 {
	return p.baseline
}

func mean(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
