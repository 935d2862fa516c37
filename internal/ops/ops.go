// Package ops provides the vectorized series transforms the allocation
// rules are built from: lagging, percentage change, population standard
// deviation, and rolling-window aggregates.
package ops

import (
	"math"
)

// Lag returns a series of the same length where position i holds the
// value at i-shift. The first shift positions are filled with 0.0.
func Lag(values []float64, shift int) []float64 {
	out := make([]float64, len(values))
	for i := shift; i < len(values); i++ {
		out[i] = values[i-shift]
	}
	return out
}

// PctChange returns (values[i]-values[i-1])/values[i-1] with position 0
// fixed at 0.0.
func PctChange(values []float64) []float64 {
	out := make([]float64, len(values))
	for i := 1; i < len(values); i++ {
		out[i] = (values[i] - values[i-1]) / values[i-1]
	}
	return out
}

// Mean returns the arithmetic mean, 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Std returns the population standard deviation (divide by n).
func Std(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// RollingMean returns the mean over a trailing window. Positions with an
// incomplete window are NaN; a non-positive window makes every position NaN.
func RollingMean(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window <= 0 {
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// RollingMax returns the maximum over a trailing window, NaN while the
// window is incomplete.
func RollingMax(values []float64, window int) []float64 {
	return rollingExtreme(values, window, func(a, b float64) bool { return a > b })
}

// RollingMin returns the minimum over a trailing window, NaN while the
// window is incomplete.
func RollingMin(values []float64, window int) []float64 {
	return rollingExtreme(values, window, func(a, b float64) bool { return a < b })
}

func rollingExtreme(values []float64, window int, better func(a, b float64) bool) []float64 {
	out := nanSlice(len(values))
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		best := values[i-window+1]
		for j := i - window + 2; j <= i; j++ {
			if better(values[j], best) {
				best = values[j]
			}
		}
		out[i] = best
	}
	return out
}

// TrueRange returns the true range series: max(high-low, |high-prevClose|,
// |low-prevClose|), with position 0 falling back to high-low.
func TrueRange(high, low, close []float64) []float64 {
	out := make([]float64, len(high))
	for i := range high {
		tr := high[i] - low[i]
		if i > 0 {
			tr = math.Max(tr, math.Abs(high[i]-close[i-1]))
			tr = math.Max(tr, math.Abs(low[i]-close[i-1]))
		}
		out[i] = tr
	}
	return out
}

// ATR returns the rolling mean of the true range over period.
func ATR(high, low, close []float64, period int) []float64 {
	return RollingMean(TrueRange(high, low, close), period)
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
