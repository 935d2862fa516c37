package levelrel

// Window pairs a contiguous fit range over the lagged series with the
// single index its fitted model predicts for. FitStart and FitEnd are
// inclusive, FitEnd is always PredictionIndex-1.
type Window struct {
	FitStart        int
	FitEnd          int
	PredictionIndex int
}

// PlanWindows tiles the series with fit/prediction window pairs. The
// lagged and percentage-change series carry a synthetic 0.0 fill at index
// 0, so the earliest usable fit range is [1, regressionPeriod] and the
// first prediction index is regressionPeriod+1. Prediction indices
// advance one step per window; a window is emitted only while its
// prediction index plus the forecast period stays inside the series.
//
// The returned slice is consumed once, in order. Processing order is
// load-bearing: the last window's model services the final-point
// extrapolation.
func PlanWindows(seriesLength, regressionPeriod, forecastPeriod int) []Window {
	if regressionPeriod < 1 || forecastPeriod < 0 {
		return nil
	}
	var windows []Window
	for p := regressionPeriod + 1; p+forecastPeriod < seriesLength; p++ {
		windows = append(windows, Window{
			FitStart:        p - regressionPeriod,
			FitEnd:          p - 1,
			PredictionIndex: p,
		})
	}
	return windows
}
