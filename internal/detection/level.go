package detection

// Level is the discrete detection severity derived from delta.
type Level int

const (
	LevelNone Level = iota
	LevelWeak
	LevelModerate
	LevelStrong
	LevelVeryStrong
)

func (l Level) String() string {
	switch l {
	case LevelWeak:
		return "WEAK"
	case LevelModerate:
		return "MODERATE"
	case LevelStrong:
		return "STRONG"
	case LevelVeryStrong:
		return "VERY STRONG"
	default:
		return "NONE"
	}
}

// Vertical classifies where the anomaly source sits relative to the sensor,
// from the Z-axis deviation.
type Vertical int

const (
	VerticalLevel Vertical = iota
	VerticalAbove
	VerticalBelow
)

func (v Vertical) String() string {
	switch v {
	case VerticalAbove:
		return "ABOVE"
	case VerticalBelow:
		return "BELOW"
	default:
		return "LEVEL"
	}
}
