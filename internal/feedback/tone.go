package feedback

import (
	"math"
	"sync"

	"mag-radar.solberg.io/internal/config"
	"mag-radar.solberg.io/internal/detection"
)

const (
	toneAmplitude = 0.25
	pulseDuty     = 0.5
)

// Tone is a pulsed sine generator. SetReading is called from the update
// loop, Fill from the audio device callback, so the setpoint is guarded
// by a mutex. Everything else is pure math, which keeps it testable
// without an audio device.
type Tone struct {
	sampleRate float64

	mu      sync.Mutex
	freq    float64 // Hz; 0 means silent
	pulseHz float64 // beep cadence; 0 means continuous tone

	phase      float64 // sine phase, radians
	pulsePhase float64 // beep cycle position, [0, 1)
}

// NewTone creates a silent generator for the given sample rate.
func NewTone(sampleRate int) *Tone {
	return &Tone{sampleRate: float64(sampleRate)}
}

// SetReading updates the tone setpoint from a reading. Pre-calibration
// readings and LevelNone silence the tone.
func (t *Tone) SetReading(r detection.Reading) {
	freq, pulseHz := toneParams(r)

	t.mu.Lock()
	t.freq = freq
	t.pulseHz = pulseHz
	t.mu.Unlock()
}

// Silence stops output until the next SetReading.
func (t *Tone) Silence() {
	t.mu.Lock()
	t.freq = 0
	t.mu.Unlock()
}

// toneParams maps a reading to (pitch, pulse cadence).
func toneParams(r detection.Reading) (freq, pulseHz float64) {
	if !r.Calibrated || r.Level == detection.LevelNone {
		return 0, 0
	}

	freq = config.ToneBaseHz + r.Strength*config.ToneSpanHz

	switch r.Level {
	case detection.LevelWeak:
		pulseHz = 2
	case detection.LevelModerate:
		pulseHz = 4
	case detection.LevelStrong:
		pulseHz = 8
	default:
		pulseHz = 0 // very strong: continuous
	}
	return freq, pulseHz
}

// Fill writes mono float32 samples for the current setpoint.
func (t *Tone) Fill(buf []float32) {
	t.mu.Lock()
	freq := t.freq
	pulseHz := t.pulseHz
	t.mu.Unlock()

	if freq <= 0 {
		for i := range buf {
			buf[i] = 0
		}
		t.phase = 0
		t.pulsePhase = 0
		return
	}

	phaseStep := 2 * math.Pi * freq / t.sampleRate
	pulseStep := pulseHz / t.sampleRate

	for i := range buf {
		gate := 1.0
		if pulseHz > 0 && t.pulsePhase >= pulseDuty {
			gate = 0
		}
		buf[i] = float32(toneAmplitude * gate * math.Sin(t.phase))

		t.phase += phaseStep
		if t.phase >= 2*math.Pi {
			t.phase -= 2 * math.Pi
		}
		t.pulsePhase += pulseStep
		if t.pulsePhase >= 1 {
			t.pulsePhase -= 1
		}
	}
}
