package app

import "time"

// TickMsg triggers a frame update for the sweep animation.
type TickMsg time.Time
