package levelrel

// kellySize converts a forecast price change and a volatility estimate
// into a position size. The output is intentionally unbounded: unlike the
// simple crossover rules there is no clamp to [-1, 1].
func kellySize(kellyFraction, forecastChange, volatility float64) float64 {
	return kellyFraction * forecastChange / (volatility * volatility)
}
