package ops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLag(t *testing.T) {
	values := []float64{10, 20, 30, 40}

	t.Run("shift_one", func(t *testing.T) {
		assert.Equal(t, []float64{0, 10, 20, 30}, Lag(values, 1))
	})

	t.Run("shift_two", func(t *testing.T) {
		assert.Equal(t, []float64{0, 0, 10, 20}, Lag(values, 2))
	})

	t.Run("shift_beyond_length", func(t *testing.T) {
		assert.Equal(t, []float64{0, 0, 0, 0}, Lag(values, 9))
	})
}

func TestPctChange(t *testing.T) {
	out := PctChange([]float64{100, 110, 99, 99})
	require.Len(t, out, 4)
	assert.Equal(t, 0.0, out[0], "first position is the fill value")
	assert.InDelta(t, 0.10, out[1], 1e-12)
	assert.InDelta(t, -0.10, out[2], 1e-12)
	assert.Equal(t, 0.0, out[3])
}

func TestStd_IsPopulation(t *testing.T) {
	// Population std divides by n, not n-1.
	assert.InDelta(t, math.Sqrt(1.25), Std([]float64{1, 2, 3, 4}), 1e-12)
	assert.Equal(t, 0.0, Std([]float64{5, 5, 5}))
	assert.Equal(t, 0.0, Std(nil))
}

func TestRollingMean(t *testing.T) {
	out := RollingMean([]float64{1, 2, 3, 4, 5}, 3)
	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	assert.InDelta(t, 2, out[2], 1e-12)
	assert.InDelta(t, 3, out[3], 1e-12)
	assert.InDelta(t, 4, out[4], 1e-12)

	t.Run("non_positive_window", func(t *testing.T) {
		for _, v := range RollingMean([]float64{1, 2, 3}, 0) {
			assert.True(t, math.IsNaN(v))
		}
	})
}

func TestRollingExtremes(t *testing.T) {
	values := []float64{3, 1, 4, 1, 5}

	max := RollingMax(values, 2)
	assert.True(t, math.IsNaN(max[0]))
	assert.Equal(t, []float64{3, 4, 4, 5}, max[1:])

	min := RollingMin(values, 2)
	assert.True(t, math.IsNaN(min[0]))
	assert.Equal(t, []float64{1, 1, 1, 1}, min[1:])
}

func TestATR(t *testing.T) {
	high := []float64{12, 13, 15}
	low := []float64{10, 11, 12}
	close := []float64{11, 12, 14}

	tr := TrueRange(high, low, close)
	assert.Equal(t, []float64{2, 2, 3}, tr)

	atr := ATR(high, low, close, 2)
	assert.True(t, math.IsNaN(atr[0]))
	assert.InDelta(t, 2, atr[1], 1e-12)
	assert.InDelta(t, 2.5, atr[2], 1e-12)
}
