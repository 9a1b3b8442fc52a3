// Package feedback maps detection readings onto audible feedback: pitch
// follows signal strength, pulse cadence follows the detection level.
package feedback

import "mag-radar.solberg.io/internal/detection"

// Sink consumes derived readings after each processed sample.
type Sink interface {
	Update(r detection.Reading)
	Close()
}

// Nop discards all readings. Used when audio is muted or unavailable.
type Nop struct{}

func (Nop) Update(detection.Reading) {}
func (Nop) Close()                   {}
