package levelrel

// applyWindow writes a window's allocation at its prediction index.
func applyWindow(alloc []float64, fit windowFit) {
	alloc[fit.window.PredictionIndex] = fit.allocation
}

// shiftBack moves every allocation one step earlier; the last slot keeps
// its value until the final-point overwrite. The original rule shifts the
// whole series and then overwrites the last slot, and its own notes doubt
// the shift lands where intended; the literal behavior is kept.
func shiftBack(alloc []float64) {
	for i := 0; i+1 < len(alloc); i++ {
		alloc[i] = alloc[i+1]
	}
}

// finalAllocation extrapolates the most recently fitted model to the last
// observed signal value, using the last window's floored volatility. A
// degenerate last window pins the final slot to zero.
func finalAllocation(last windowFit, lastSignal, kellyFraction float64) float64 {
	if last.degenerate || last.model == nil {
		return 0.0
	}
	return kellySize(kellyFraction, last.model.Predict(lastSignal), last.volatility)
}
