package rules

import (
	"github.com/allocrun/allocrun/internal/frame"
	"github.com/allocrun/allocrun/internal/ops"
)

// ChandeKrollParams configure the chande_kroll_crossover rule.
type ChandeKrollParams struct {
	ATRPeriod  int     `yaml:"atr_period" default:"10" validate:"gt=0"`
	Multiplier float64 `yaml:"multiplier" default:"1.0" validate:"gte=0"`
	StopPeriod int     `yaml:"stop_period" default:"9" validate:"gt=0"`
}

func init() {
	register(Definition{
		Name: "chande_kroll_crossover",
		Description: "All-or-nothing rule: long when price is above both Chande Kroll " +
			"stop lines, short when below both.",
		Series:    []string{frame.ColPrice, frame.ColHigh, frame.ColLow},
		NewParams: func() any { return &ChandeKrollParams{} },
		Apply:     applyChandeKroll,
	})
}

func applyChandeKroll(f *frame.Frame, params any) (any, error) {
	p := params.(*ChandeKrollParams)
	price, err := f.Column(frame.ColPrice)
	if err != nil {
		return nil, err
	}
	high, err := f.Column(frame.ColHigh)
	if err != nil {
		return nil, err
	}
	low, err := f.Column(frame.ColLow)
	if err != nil {
		return nil, err
	}

	stopLong, stopShort := chandeKrollLines(high, low, price, p)

	if !f.Has(frame.ColAllocation) {
		f.SetConst(frame.ColAllocation, 0.0)
	}
	alloc, err := f.Column(frame.ColAllocation)
	if err != nil {
		return nil, err
	}

	// Rows where price sits between the lines (or the lines are still in
	// their warm-up) keep whatever allocation they already carry.
	for i := range alloc {
		switch {
		case price[i] > stopLong[i] && price[i] > stopShort[i]:
			alloc[i] = 1.0
		case price[i] < stopLong[i] && price[i] < stopShort[i]:
			alloc[i] = -1.0
		}
	}
	return nil, nil
}

// chandeKrollLines computes the Chande Kroll stop lines: preliminary
// stops offset rolling extremes by a multiple of ATR, and the final lines
// take rolling extremes of the preliminary stops.
func chandeKrollLines(high, low, close []float64, p *ChandeKrollParams) (stopLong, stopShort []float64) {
	atr := ops.ATR(high, low, close, p.ATRPeriod)

	firstHigh := ops.RollingMax(high, p.ATRPeriod)
	firstLow := ops.RollingMin(low, p.ATRPeriod)
	for i := range firstHigh {
		firstHigh[i] -= p.Multiplier * atr[i]
		firstLow[i] += p.Multiplier * atr[i]
	}

	stopShort = ops.RollingMax(firstHigh, p.StopPeriod)
	stopLong = ops.RollingMin(firstLow, p.StopPeriod)
	return stopLong, stopShort
}
