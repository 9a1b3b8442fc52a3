package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mag-radar.solberg.io/internal/config"
	"mag-radar.solberg.io/internal/detection"
)

func TestToneParamsSilentCases(t *testing.T) {
	// Pre-calibration readings must never make noise.
	freq, pulse := toneParams(detection.Reading{Calibrated: false, Level: detection.LevelStrong})
	assert.Zero(t, freq)
	assert.Zero(t, pulse)

	freq, _ = toneParams(detection.Reading{Calibrated: true, Level: detection.LevelNone})
	assert.Zero(t, freq)
}

func TestToneParamsPitchFollowsStrength(t *testing.T) {
	low, _ := toneParams(detection.Reading{Calibrated: true, Level: detection.LevelWeak, Strength: 0.1})
	high, _ := toneParams(detection.Reading{Calibrated: true, Level: detection.LevelStrong, Strength: 0.9})
	assert.Greater(t, high, low)

	full, _ := toneParams(detection.Reading{Calibrated: true, Level: detection.LevelVeryStrong, Strength: 1.0})
	assert.Equal(t, config.ToneBaseHz+config.ToneSpanHz, full)
}

func TestToneParamsCadenceFollowsLevel(t *testing.T) {
	cases := []struct {
		level detection.Level
		pulse float64
	}{
		{detection.LevelWeak, 2},
		{detection.LevelModerate, 4},
		{detection.LevelStrong, 8},
		{detection.LevelVeryStrong, 0}, // continuous
	}
	for _, tc := range cases {
		_, pulse := toneParams(detection.Reading{Calibrated: true, Level: tc.level, Strength: 0.5})
		assert.Equal(t, tc.pulse, pulse, "level %s", tc.level)
	}
}

func TestFillSilentWritesZeros(t *testing.T) {
	tone := NewTone(config.AudioSampleRate)
	buf := make([]float32, 256)
	for i := range buf {
		buf[i] = 1 // stale data must be overwritten
	}

	tone.Fill(buf)
	for i, v := range buf {
		assert.Zerof(t, v, "sample %d", i)
	}
}

func TestFillActiveTone(t *testing.T) {
	tone := NewTone(config.AudioSampleRate)
	tone.SetReading(detection.Reading{
		Calibrated: true,
		Level:      detection.LevelVeryStrong,
		Strength:   1.0,
	})

	buf := make([]float32, 4096)
	tone.Fill(buf)

	var peak float32
	nonZero := 0
	for _, v := range buf {
		if v != 0 {
			nonZero++
		}
		if v > peak {
			peak = v
		}
		assert.LessOrEqual(t, float64(v), toneAmplitude+1e-6)
		assert.GreaterOrEqual(t, float64(v), -toneAmplitude-1e-6)
	}
	assert.Greater(t, nonZero, len(buf)/2, "continuous tone should be mostly non-zero")
	assert.InDelta(t, toneAmplitude, float64(peak), 0.02)
}

func TestFillPulsedToneGates(t *testing.T) {
	tone := NewTone(config.AudioSampleRate)
	tone.SetReading(detection.Reading{
		Calibrated: true,
		Level:      detection.LevelWeak,
		Strength:   0.1,
	})

	// One full 2 Hz beep cycle at 48 kHz is 24000 samples.
	buf := make([]float32, config.AudioSampleRate/2)
	tone.Fill(buf)

	gated := 0
	for _, v := range buf {
		if v == 0 {
			gated++
		}
	}
	// Half the cycle is gated off (plus sine zero crossings).
	assert.Greater(t, gated, len(buf)/3)
	assert.Less(t, gated, len(buf))
}

func TestSilenceStopsOutput(t *testing.T) {
	tone := NewTone(config.AudioSampleRate)
	tone.SetReading(detection.Reading{Calibrated: true, Level: detection.LevelStrong, Strength: 0.5})
	tone.Silence()

	buf := make([]float32, 128)
	tone.Fill(buf)
	for _, v := range buf {
		assert.Zero(t, v)
	}
}
