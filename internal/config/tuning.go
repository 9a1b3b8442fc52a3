package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds the detection parameters. Defaults are design-chosen values,
// not derived; a YAML file can override any subset of them.
type Tuning struct {
	// FilterAlpha is the exponential smoothing coefficient (0-1).
	// Lower is smoother but slower to track.
	FilterAlpha float64 `yaml:"filter_alpha"`

	// CalibrationCount is the number of samples averaged into the baseline.
	CalibrationCount int `yaml:"calibration_count"`

	// Level thresholds on delta, in µT. Each boundary belongs to the
	// higher bucket.
	DetectionThreshold  float64 `yaml:"detection_threshold"`
	ModerateThreshold   float64 `yaml:"moderate_threshold"`
	StrongThreshold     float64 `yaml:"strong_threshold"`
	VeryStrongThreshold float64 `yaml:"very_strong_threshold"`

	// MaxDelta is the delta (µT) that maps to full normalized strength.
	MaxDelta float64 `yaml:"max_delta"`

	// DistanceScale and MaxDistance shape the radar blip position:
	// distance = min(planarDelta/MaxDelta * DistanceScale, MaxDistance).
	// Presentation tuning, kept configurable rather than derived.
	DistanceScale float64 `yaml:"distance_scale"`
	MaxDistance   float64 `yaml:"max_distance"`

	// VerticalDeadZone is the Z deviation (µT) below which the vertical
	// direction reads as level, to avoid flicker around zero.
	VerticalDeadZone float64 `yaml:"vertical_dead_zone"`
}

// DefaultTuning returns the stock detection parameters.
func DefaultTuning() Tuning {
	return Tuning{
		FilterAlpha:         0.15,
		CalibrationCount:    30,
		DetectionThreshold:  15.0,
		ModerateThreshold:   30.0,
		StrongThreshold:     50.0,
		VeryStrongThreshold: 120.0,
		MaxDelta:            300.0,
		DistanceScale:       2.5,
		MaxDistance:         0.85,
		VerticalDeadZone:    10.0,
	}
}

// LoadTuning reads YAML overrides from path and merges them over the
// defaults. An empty path or a missing file yields the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return t, fmt.Errorf("read tuning config: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parse tuning config: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

// Validate rejects parameter sets the processor cannot work with.
func (t Tuning) Validate() error {
	if t.FilterAlpha <= 0 || t.FilterAlpha > 1 {
		return fmt.Errorf("filter_alpha %.3f outside (0, 1]", t.FilterAlpha)
	}
	if t.CalibrationCount < 1 {
		return fmt.Errorf("calibration_count %d must be at least 1", t.CalibrationCount)
	}
	if t.DetectionThreshold >= t.ModerateThreshold ||
		t.ModerateThreshold >= t.StrongThreshold ||
		t.StrongThreshold >= t.VeryStrongThreshold {
		return fmt.Errorf("level thresholds must be strictly increasing")
	}
	if t.MaxDelta <= 0 {
		return fmt.Errorf("max_delta %.1f must be positive", t.MaxDelta)
	}
	if t.MaxDistance <= 0 || t.MaxDistance > 1 {
		return fmt.Errorf("max_distance %.2f outside (0, 1]", t.MaxDistance)
	}
	return nil
}
