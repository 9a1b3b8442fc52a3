package config

import "time"

const (
	// Sampling
	SampleRateHz = 60 // Nominal magnetometer sample rate

	// Radar display
	AspectRatio   = 0.5  // Terminal char aspect correction (chars are ~2:1 tall)
	RingCount     = 4    // Number of concentric rings
	SweepSpeedRPM = 30   // Sweep rotations per minute (1 rotation per 2 seconds)
	SweepTrailDeg = 60.0 // Sweep trail angle in degrees
	TargetFPS     = 30   // Target frames per second

	// Signal history
	HistorySize = 240 // Delta readings kept for the sparkline (~4s at 60Hz)

	// Audio feedback
	AudioSampleRate = 48000 // Playback sample rate (Hz)
	ToneBaseHz      = 440.0 // Pitch at zero strength
	ToneSpanHz      = 520.0 // Pitch rise across full strength

	// Demo mode
	DemoTargetPeriod = 18 * time.Second // Full approach/retreat cycle of the fake target

	// App
	AppName    = "MAG-RADAR"
	AppVersion = "1.0"
)
