package regression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFit_ExactLine(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{3, 5, 7, 9, 11} // y = 2x + 1

	m, err := Fit(x, y)
	require.NoError(t, err)
	assert.Equal(t, 2.0, m.Slope)
	assert.Equal(t, 1.0, m.Intercept)
	assert.Equal(t, 0.0, m.RMSE(x, y))
	assert.Equal(t, 13.0, m.Predict(6))
}

func TestFit_WithResiduals(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{1, 0, 3, 2}

	m, err := Fit(x, y)
	require.NoError(t, err)
	// Least squares on this square-wave pattern: slope 0.6, intercept 0.6.
	assert.InDelta(t, 0.6, m.Slope, 1e-12)
	assert.InDelta(t, 0.6, m.Intercept, 1e-12)
	assert.Greater(t, m.RMSE(x, y), 0.0)
}

func TestFit_Errors(t *testing.T) {
	t.Run("length_mismatch", func(t *testing.T) {
		_, err := Fit([]float64{1, 2}, []float64{1})
		assert.Error(t, err)
	})

	t.Run("too_few_points", func(t *testing.T) {
		_, err := Fit([]float64{1}, []float64{1})
		assert.Error(t, err)
	})

	t.Run("flat_x", func(t *testing.T) {
		_, err := Fit([]float64{2, 2, 2}, []float64{1, 2, 3})
		assert.Error(t, err)
	})
}
