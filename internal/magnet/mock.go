package magnet

import (
	"context"
	"math"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"mag-radar.solberg.io/internal/config"
)

// Ambient field for demo mode: roughly a mid-latitude Earth field with a
// typical downward dip, ~48 µT total.
const (
	demoAmbientX = 19.0
	demoAmbientY = 2.5
	demoAmbientZ = -44.0
	demoNoiseUT  = 0.6 // peak-to-peak jitter per axis
)

// MockSource generates fake magnetometer samples for demo mode: a quiet
// ambient field with a buried target that periodically swells into range
// and fades back out.
type MockSource struct {
	program *tea.Program
	cancel  context.CancelFunc

	bearing float64 // target bearing in radians, wanders slowly
	peak    float64 // peak anomaly strength in µT
}

// NewMockSource creates a demo source with a randomly placed target.
func NewMockSource() *MockSource {
	return &MockSource{
		bearing: rand.Float64() * 2 * math.Pi,
		peak:    140 + rand.Float64()*120, // strong enough to sweep all levels
	}
}

// Start begins emitting samples at the nominal rate.
func (s *MockSource) Start(p *tea.Program) error {
	s.program = p

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.loop(ctx)
	return nil
}

func (s *MockSource) loop(ctx context.Context) {
	ticker := time.NewTicker(time.Second / config.SampleRateHz)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if s.program != nil {
				s.program.Send(SampleMsg{Sample: s.sampleAt(now, now.Sub(start))})
			}
		}
	}
}

// sampleAt synthesizes one reading: ambient field + target anomaly + noise.
func (s *MockSource) sampleAt(now time.Time, elapsed time.Duration) Sample {
	t := elapsed.Seconds()

	// Anomaly envelope: 0 during the first seconds (clean calibration),
	// then raised-cosine swells toward the peak and back.
	period := config.DemoTargetPeriod.Seconds()
	phase := math.Mod(t, period) / period
	envelope := 0.0
	if t > 3.0 {
		envelope = 0.5 * (1 - math.Cos(2*math.Pi*phase))
	}

	// Target bearing drifts slowly so the blip moves around the dial.
	bearing := s.bearing + 0.05*t
	anomaly := s.peak * envelope

	return Sample{
		X:    demoAmbientX + anomaly*math.Cos(bearing) + noise(),
		Y:    demoAmbientY + anomaly*math.Sin(bearing) + noise(),
		Z:    demoAmbientZ + anomaly*0.4 + noise(),
		Time: now,
	}
}

func noise() float64 {
	return (rand.Float64() - 0.5) * demoNoiseUT
}

// Stop halts the mock source.
func (s *MockSource) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}
