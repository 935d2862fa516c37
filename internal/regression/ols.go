// Package regression implements the univariate ordinary least squares
// fit used by the walk-forward forecaster.
package regression

import (
	"fmt"
	"math"
)

// Model is a univariate least-squares fit of y on x.
type Model struct {
	Intercept float64
	Slope     float64
}

// Fit computes the ordinary least squares fit of y on x. The x series
// must carry variation; callers are expected to screen flat inputs first.
func Fit(x, y []float64) (Model, error) {
	if len(x) != len(y) {
		return Model{}, fmt.Errorf("x and y must have same length: %d vs %d", len(x), len(y))
	}
	n := len(x)
	if n < 2 {
		return Model{}, fmt.Errorf("need at least 2 observations, got %d", n)
	}

	var sumX, sumY, sumXY, sumXX float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumXX += x[i] * x[i]
	}

	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	denominator := sumXX - float64(n)*meanX*meanX
	if math.Abs(denominator) < 1e-12 {
		return Model{}, fmt.Errorf("x has no variation, cannot fit")
	}

	slope := (sumXY - float64(n)*meanX*meanY) / denominator
	return Model{
		Intercept: meanY - slope*meanX,
		Slope:     slope,
	}, nil
}

// Predict evaluates the fitted line at x.
func (m Model) Predict(x float64) float64 {
	return m.Intercept + m.Slope*x
}

// RMSE returns the in-sample root mean square error of the fit over the
// given observations.
func (m Model) RMSE(x, y []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sumSq float64
	for i := range x {
		resid := y[i] - m.Predict(x[i])
		sumSq += resid * resid
	}
	return math.Sqrt(sumSq / float64(len(x)))
}
