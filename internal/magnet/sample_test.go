package magnet

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleMagnitude(t *testing.T) {
	s := Sample{X: 3, Y: 4, Z: 0}
	assert.Equal(t, 5.0, s.Magnitude())

	s = Sample{X: 2, Y: 3, Z: 6}
	assert.Equal(t, 7.0, s.Magnitude())
}

func TestSampleValid(t *testing.T) {
	assert.True(t, Sample{X: 1, Y: -2, Z: 3}.Valid())
	assert.True(t, Sample{}.Valid())

	assert.False(t, Sample{X: math.NaN()}.Valid())
	assert.False(t, Sample{Y: math.Inf(1)}.Valid())
	assert.False(t, Sample{Z: math.Inf(-1)}.Valid())
}

func TestParseSampleLine(t *testing.T) {
	now := time.Now()

	s, err := ParseSampleLine("12.5,-3.25,44", now)
	require.NoError(t, err)
	assert.Equal(t, 12.5, s.X)
	assert.Equal(t, -3.25, s.Y)
	assert.Equal(t, 44.0, s.Z)
	assert.Equal(t, now, s.Time)

	// Whitespace around fields is tolerated.
	s, err = ParseSampleLine("  1.0 , 2.0 , 3.0 \r", now)
	require.NoError(t, err)
	assert.Equal(t, 2.0, s.Y)
}

func TestParseSampleLineRejectsMalformed(t *testing.T) {
	now := time.Now()
	for _, line := range []string{
		"",
		"1,2",
		"1,2,3,4",
		"a,b,c",
		"1,,3",
	} {
		_, err := ParseSampleLine(line, now)
		assert.Error(t, err, "line %q", line)
	}
}

func TestParseSampleLineRejectsNonFinite(t *testing.T) {
	now := time.Now()
	for _, line := range []string{
		"NaN,0,0",
		"0,+Inf,0",
		"0,0,-Inf",
	} {
		_, err := ParseSampleLine(line, now)
		assert.Error(t, err, "line %q", line)
	}
}
