// Package magnet provides magnetometer sample sources. Each source pushes
// SampleMsg values into the Bubble Tea program, which serializes delivery
// into the single update loop that owns the signal processor.
package magnet

import tea "github.com/charmbracelet/bubbletea"

// SampleMsg is sent via tea.Program.Send for each magnetometer reading.
type SampleMsg struct {
	Sample Sample
}

// SourceErrorMsg reports a failure inside a running source.
type SourceErrorMsg struct {
	Err error
}

// Source is a cancellable magnetometer stream.
type Source interface {
	// Start begins sampling in a goroutine. Must be called before p.Run().
	Start(p *tea.Program) error
	// Stop halts sampling. Cooperative: the sampling loop exits between
	// samples, never mid-read.
	Stop()
}
