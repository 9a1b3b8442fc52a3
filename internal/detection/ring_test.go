package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRingEmpty(t *testing.T) {
	r := NewRing(4)
	assert.Nil(t, r.Values())
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 0.0, r.Last())
}

func TestRingPartialFill(t *testing.T) {
	r := NewRing(4)
	r.Push(1)
	r.Push(2)
	assert.Equal(t, []float64{1, 2}, r.Values())
	assert.Equal(t, 2.0, r.Last())
	assert.Equal(t, 2, r.Len())
}

func TestRingWrapKeepsChronologicalOrder(t *testing.T) {
	r := NewRing(3)
	for _, v := range []float64{1, 2, 3, 4, 5} {
		r.Push(v)
	}
	assert.Equal(t, []float64{3, 4, 5}, r.Values())
	assert.Equal(t, 5.0, r.Last())
	assert.Equal(t, 3, r.Len())
}

func TestRingReset(t *testing.T) {
	r := NewRing(3)
	r.Push(1)
	r.Push(2)
	r.Reset()
	assert.Equal(t, 0, r.Len())
	assert.Nil(t, r.Values())

	r.Push(9)
	assert.Equal(t, []float64{9}, r.Values())
}
