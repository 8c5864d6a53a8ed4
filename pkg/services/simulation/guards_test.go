package simulation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-3, 0, 1))
	assert.Equal(t, 1.0, Clamp(7, 0, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
	assert.Equal(t, -0.1, Clamp(-0.1, -0.1, 0.25))
}

func TestSafeDivide(t *testing.T) {
	t.Run("denominator above floor", func(t *testing.T) {
		assert.Equal(t, 2.0, SafeDivide(10, 5, MarginFloor))
	})

	t.Run("zero denominator uses floor", func(t *testing.T) {
		got := SafeDivide(1, 0, 1e-3)
		assert.InDelta(t, 1000.0, got, 1e-9)
		assert.False(t, math.IsInf(got, 0))
	})

	t.Run("negative denominator keeps sign", func(t *testing.T) {
		got := SafeDivide(5, -20, 1e-3)
		assert.Greater(t, got, 0.0)
	})
}

func TestRound(t *testing.T) {
	tests := []struct {
		in       float64
		places   int
		expected float64
	}{
		{1167.9999999999998, 2, 1168.0},
		{0.017777, 3, 0.018},
		{-0.58873, 3, -0.589},
		{2.5, 0, 2.0},
		{3.5, 0, 4.0},
		{-7366.666666, 2, -7366.67},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Round(tt.in, tt.places), "Round(%v, %d)", tt.in, tt.places)
	}
}
