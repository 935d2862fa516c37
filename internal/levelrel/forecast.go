package levelrel

import (
	"math"

	"github.com/allocrun/allocrun/internal/ops"
	"github.com/allocrun/allocrun/internal/regression"
)

// forecastDistance is fixed at one step ahead. The volatility formula
// keeps its general form so a configurable distance slots in without
// rewriting it.
const forecastDistance = 1.0

// minVolatility floors a zero volatility estimate before Kelly sizing.
const minVolatility = 0.01

// windowFit is the outcome of fitting one window: either a model with a
// forecast, or a degenerate marker when an input series was flat.
type windowFit struct {
	window     Window
	model      *regression.Model
	modelError float64 // in-sample RMSE of the fit
	forecast   float64 // predicted price change at the prediction index
	volatility float64
	allocation float64
	degenerate bool
	flatSeries []string // which fit inputs had zero variation
}

// fitWindow fits the regression of price percentage change on lagged
// signal over one window and sizes the resulting forecast. A flat input
// series is not an error: the window falls back to a zero allocation and
// unit volatility, with a diagnostic on the engine logger.
func (e *Engine) fitWindow(lagged, pctChange []float64, w Window) (windowFit, error) {
	fitSignal := lagged[w.FitStart : w.FitEnd+1]
	fitChange := pctChange[w.FitStart : w.FitEnd+1]

	stdPrice := ops.Std(fitChange)
	stdSignal := ops.Std(fitSignal)

	if !(stdPrice > 0) || !(stdSignal > 0) {
		fit := windowFit{window: w, degenerate: true, volatility: 1.0}
		if !(stdPrice > 0) {
			fit.flatSeries = append(fit.flatSeries, "price")
			e.log.Warn().
				Int("prediction_index", w.PredictionIndex).
				Float64("std", stdPrice).
				Msg("price had no variation over fit window")
		}
		if !(stdSignal > 0) {
			fit.flatSeries = append(fit.flatSeries, "signal")
			e.log.Warn().
				Int("prediction_index", w.PredictionIndex).
				Float64("std", stdSignal).
				Msg("signal had no variation over fit window, lookback may be too short for the sample")
		}
		return fit, nil
	}

	model, err := regression.Fit(fitSignal, fitChange)
	if err != nil {
		return windowFit{}, err
	}

	modelError := model.RMSE(fitSignal, fitChange)
	forecast := model.Predict(lagged[w.PredictionIndex])

	volatility := (1+modelError)*math.Pow(forecastDistance, -0.5) - 1
	if volatility < 0 {
		return windowFit{}, &NumericError{Quantity: "volatility", Value: volatility}
	}
	if volatility == 0 {
		volatility = minVolatility
	}

	fit := windowFit{
		window:     w,
		model:      &model,
		modelError: modelError,
		forecast:   forecast,
		volatility: volatility,
	}
	fit.allocation = kellySize(e.params.KellyFraction, forecast, volatility)
	return fit, nil
}
