package detection

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mag-radar.solberg.io/internal/config"
	"mag-radar.solberg.io/internal/magnet"
)

func sampleAt(x, y, z float64) magnet.Sample {
	return magnet.Sample{X: x, Y: y, Z: z, Time: time.Now()}
}

// feed pushes n copies of the same sample and returns the last reading.
func feed(p *Processor, s magnet.Sample, n int) (Reading, bool) {
	var r Reading
	var ok bool
	for i := 0; i < n; i++ {
		r, ok = p.Process(s)
	}
	return r, ok
}

func TestCalibrationCompletion(t *testing.T) {
	p := NewProcessor(config.DefaultTuning())
	s := sampleAt(50, 0, 0) // magnitude exactly 50

	for i := 0; i < 29; i++ {
		r, ok := p.Process(s)
		assert.False(t, ok, "sample %d should not produce detection output", i+1)
		assert.False(t, r.Calibrated, "sample %d should not complete calibration", i+1)
		assert.False(t, p.Calibrated())
	}

	r, ok := p.Process(s)
	assert.False(t, ok, "the completing sample itself produces no detection output")
	assert.True(t, r.Calibrated)
	require.True(t, p.Calibrated())
	assert.Equal(t, 50.0, p.Baseline(), "constant input must give an exact baseline")

	done, total := p.CalibrationProgress()
	assert.Equal(t, 30, done)
	assert.Equal(t, 30, total)
}

func TestCalibrationTransitionHappensOnce(t *testing.T) {
	p := NewProcessor(config.DefaultTuning())
	s := sampleAt(50, 0, 0)

	transitions := 0
	wasCalibrated := false
	for i := 0; i < 100; i++ {
		p.Process(s)
		if p.Calibrated() && !wasCalibrated {
			transitions++
			wasCalibrated = true
		}
	}
	assert.Equal(t, 1, transitions)
}

func TestSmoothingInitializesFromFirstSample(t *testing.T) {
	p := NewProcessor(config.DefaultTuning())
	p.Process(sampleAt(80, 0, 0))
	assert.Equal(t, 80.0, p.smoothedMag, "first sample primes the filter with no ramp-up")
	assert.Equal(t, 80.0, p.smoothedX)
}

func TestSmoothingConvergesMonotonically(t *testing.T) {
	p := NewProcessor(config.DefaultTuning())
	feed(p, sampleAt(50, 0, 0), 30)
	require.True(t, p.Calibrated())

	target := sampleAt(250, 0, 0)
	prev := p.smoothedMag
	for i := 0; i < 40; i++ {
		p.Process(target)
		assert.Greater(t, p.smoothedMag, prev, "smoothed value must rise monotonically toward the input")
		assert.LessOrEqual(t, p.smoothedMag, 250.0)
		prev = p.smoothedMag
	}

	// (1-0.15)^40 ≈ 0.0019, so the residual of the 200 µT step is under 0.5 µT.
	assert.InDelta(t, 250.0, p.smoothedMag, 0.5)
}

func TestLevelThresholdBoundaries(t *testing.T) {
	p := NewProcessor(config.DefaultTuning())

	cases := []struct {
		delta float64
		want  Level
	}{
		{14.9, LevelNone},
		{15.0, LevelWeak},
		{29.9, LevelWeak},
		{30.0, LevelModerate},
		{49.9, LevelModerate},
		{50.0, LevelStrong},
		{119.9, LevelStrong},
		{120.0, LevelVeryStrong},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, p.classify(tc.delta), "delta %.1f", tc.delta)
	}
}

func TestNormalizationClamp(t *testing.T) {
	p := NewProcessor(config.DefaultTuning())
	feed(p, sampleAt(0, 0, 0), 30)
	require.True(t, p.Calibrated())

	// Delta far above MaxDelta=300 must clamp to exactly 1.0.
	r, ok := feed(p, sampleAt(1000, 0, 0), 50)
	require.True(t, ok)
	assert.Greater(t, r.Delta, 300.0)
	assert.Equal(t, 1.0, r.Strength)
}

func TestDistanceClamp(t *testing.T) {
	p := NewProcessor(config.DefaultTuning())
	feed(p, sampleAt(0, 0, 0), 30)

	r, ok := feed(p, sampleAt(1000, 1000, 0), 50)
	require.True(t, ok)
	assert.Equal(t, 0.85, r.Distance, "extreme planar deviation clamps to the display cap")
}

func TestDetectionAngle(t *testing.T) {
	p := NewProcessor(config.DefaultTuning())
	feed(p, sampleAt(0, 0, 0), 30)

	// Deviation purely along +y: atan2(dy, dx) = π/2.
	r, ok := feed(p, sampleAt(0, 100, 0), 60)
	require.True(t, ok)
	assert.InDelta(t, math.Pi/2, r.Angle, 1e-9)
}

func TestVerticalClassification(t *testing.T) {
	p := NewProcessor(config.DefaultTuning())
	feed(p, sampleAt(30, 0, 0), 30)

	// Z deviation inside the dead zone reads level.
	r, ok := feed(p, sampleAt(30, 0, 5), 60)
	require.True(t, ok)
	assert.Equal(t, VerticalLevel, r.Vertical)

	// Positive Z deviation beyond the dead zone reads above.
	r, _ = feed(p, sampleAt(30, 0, 60), 60)
	assert.Equal(t, VerticalAbove, r.Vertical)
	assert.Greater(t, r.VerticalDelta, 0.0)

	// Negative Z deviation reads below.
	r, _ = feed(p, sampleAt(30, 0, -60), 120)
	assert.Equal(t, VerticalBelow, r.Vertical)
	assert.Less(t, r.VerticalDelta, 0.0)
}

func TestRecalibrateResetsBaselineKeepsSmoothing(t *testing.T) {
	p := NewProcessor(config.DefaultTuning())
	feed(p, sampleAt(50, 0, 0), 30)
	require.True(t, p.Calibrated())

	smoothedBefore := p.smoothedMag
	p.Recalibrate()

	assert.False(t, p.Calibrated())
	assert.Equal(t, 0.0, p.Baseline())
	done, _ := p.CalibrationProgress()
	assert.Equal(t, 0, done)
	assert.Equal(t, smoothedBefore, p.smoothedMag, "smoothing state survives recalibration")

	// The filter must keep tracking without a startup transient: the next
	// sample is smoothed against the prior state, not adopted wholesale.
	p.Process(sampleAt(100, 0, 0))
	assert.InDelta(t, 50+0.15*(100-50), p.smoothedMag, 1e-9)
}

func TestRecalibrateIdempotent(t *testing.T) {
	p := NewProcessor(config.DefaultTuning())
	feed(p, sampleAt(50, 0, 0), 35)

	p.Recalibrate()
	baseline1, calibrated1 := p.Baseline(), p.Calibrated()
	done1, _ := p.CalibrationProgress()

	p.Recalibrate()
	assert.Equal(t, baseline1, p.Baseline())
	assert.Equal(t, calibrated1, p.Calibrated())
	done2, _ := p.CalibrationProgress()
	assert.Equal(t, done1, done2)
}

func TestEndToEndDetectionScenario(t *testing.T) {
	p := NewProcessor(config.DefaultTuning())

	// Baseline 50 µT from 30 constant samples.
	r, ok := feed(p, sampleAt(50, 0, 0), 30)
	assert.False(t, ok)
	require.True(t, r.Calibrated)
	assert.Equal(t, 50.0, p.Baseline())

	// Raise the raw field to 250 µT and hold until smoothing converges.
	r, ok = feed(p, sampleAt(250, 0, 0), 150)
	require.True(t, ok)

	assert.InDelta(t, 200.0, r.Delta, 1e-3)
	assert.Equal(t, LevelVeryStrong, r.Level)
	assert.True(t, r.Detecting)
	assert.InDelta(t, 200.0/300.0, r.Strength, 1e-3)
}

func TestPreCalibrationReadingsCarryNoOutput(t *testing.T) {
	p := NewProcessor(config.DefaultTuning())

	r, ok := p.Process(sampleAt(500, 500, 500))
	assert.False(t, ok)
	assert.False(t, r.Detecting)
	assert.Zero(t, r.Delta)
	assert.Zero(t, r.Level)
}

func TestDeltaDiscardsSign(t *testing.T) {
	p := NewProcessor(config.DefaultTuning())
	feed(p, sampleAt(100, 0, 0), 30)

	// A falling field reads the same severity as a rising one.
	r, ok := feed(p, sampleAt(40, 0, 0), 100)
	require.True(t, ok)
	assert.InDelta(t, 60.0, r.Delta, 1e-3)
	assert.Equal(t, LevelStrong, r.Level)
}
