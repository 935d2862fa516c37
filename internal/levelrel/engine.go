// Package levelrel implements the walk-forward regression allocation
// rule: a re-fitting linear forecaster that predicts future price
// percentage change from a lagged research signal and converts the
// forecast and model error into a Kelly position size.
package levelrel

import (
	"github.com/rs/zerolog"

	"github.com/allocrun/allocrun/internal/frame"
	"github.com/allocrun/allocrun/internal/ops"
)

// Params configure the walk-forward regression rule.
type Params struct {
	RegressionPeriod int     `yaml:"regression_period" default:"120" validate:"gt=1"`
	ForecastPeriod   int     `yaml:"forecast_period" default:"100" validate:"gt=0"`
	KellyFraction    float64 `yaml:"kelly_fraction" default:"1.0" validate:"gt=0"`
}

// WindowStatus tags the outcome of one prediction window.
type WindowStatus string

const (
	// WindowFitted means a model was fit and a sized forecast written.
	WindowFitted WindowStatus = "fitted"
	// WindowDegenerate means an input series was flat over the fit range
	// and the window fell back to a zero allocation.
	WindowDegenerate WindowStatus = "degenerate"
)

// WindowReport describes what happened in one prediction window, so
// callers can tell a valid zero allocation from a failed call.
type WindowReport struct {
	PredictionIndex int          `json:"prediction_index"`
	Status          WindowStatus `json:"status"`
	Allocation      float64      `json:"allocation"`
	Volatility      float64      `json:"volatility"`
	ModelError      float64      `json:"model_error"`
	FlatSeries      []string     `json:"flat_series,omitempty"`
}

// Result is the tagged outcome of one run over one frame.
type Result struct {
	ShortSeries     bool           `json:"short_series"`
	Windows         []WindowReport `json:"windows,omitempty"`
	Fitted          int            `json:"fitted"`
	Degenerate      int            `json:"degenerate"`
	FinalAllocation float64        `json:"final_allocation"`
}

// Engine computes the level-relationship allocation for one frame per
// call. It holds no state between calls.
type Engine struct {
	params Params
	log    zerolog.Logger
}

// New creates an engine with the given parameters.
func New(params Params, logger zerolog.Logger) *Engine {
	return &Engine{
		params: params,
		log:    logger.With().Str("component", "levelrel").Logger(),
	}
}

// Run fits the walk-forward windows over the frame and writes the
// allocation column. The frame must carry research_1 and mid columns.
//
// A series shorter than regression_period+1 is not an error: the
// allocation column is set to all zeros. An empty window plan and a
// negative volatility are fatal and leave the allocation column unset.
func (e *Engine) Run(f *frame.Frame) (*Result, error) {
	research, err := f.Column(frame.ColResearch1)
	if err != nil {
		return nil, err
	}
	signal := make([]float64, len(research))
	copy(signal, research)
	if err := f.SetColumn(frame.ColSignal, signal); err != nil {
		return nil, err
	}

	mid, err := f.Column(frame.ColMid)
	if err != nil {
		return nil, err
	}

	n := f.Len()
	if n < e.params.RegressionPeriod+1 {
		e.log.Debug().
			Int("rows", n).
			Int("regression_period", e.params.RegressionPeriod).
			Msg("series too short to fit, returning zero allocation")
		f.SetConst(frame.ColAllocation, 0.0)
		return &Result{ShortSeries: true}, nil
	}

	lagged := ops.Lag(signal, 1)
	pctChange := ops.PctChange(mid)

	windows := PlanWindows(n, e.params.RegressionPeriod, e.params.ForecastPeriod)
	if len(windows) == 0 {
		return nil, &ConfigError{
			SeriesLength:     n,
			RegressionPeriod: e.params.RegressionPeriod,
			ForecastPeriod:   e.params.ForecastPeriod,
		}
	}

	// Placeholder values establish the output shape; every slot inside a
	// processed window is overwritten below.
	alloc := make([]float64, n)
	copy(alloc, signal)

	res := &Result{}
	var last windowFit
	for _, w := range windows {
		fit, err := e.fitWindow(lagged, pctChange, w)
		if err != nil {
			return nil, err
		}
		applyWindow(alloc, fit)
		last = fit

		report := WindowReport{
			PredictionIndex: w.PredictionIndex,
			Status:          WindowFitted,
			Allocation:      fit.allocation,
			Volatility:      fit.volatility,
			ModelError:      fit.modelError,
			FlatSeries:      fit.flatSeries,
		}
		if fit.degenerate {
			report.Status = WindowDegenerate
			res.Degenerate++
		} else {
			res.Fitted++
		}
		res.Windows = append(res.Windows, report)
	}

	shiftBack(alloc)
	res.FinalAllocation = finalAllocation(last, signal[n-1], e.params.KellyFraction)
	alloc[n-1] = res.FinalAllocation

	if err := f.SetColumn(frame.ColAllocation, alloc); err != nil {
		return nil, err
	}
	return res, nil
}
