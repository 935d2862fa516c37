package rules

import (
	"github.com/allocrun/allocrun/internal/frame"
	"github.com/allocrun/allocrun/internal/ops"
)

// NoParams is the parameter struct for rules with no parameters.
type NoParams struct{}

// ConstantParams configure constant_allocation_size.
type ConstantParams struct {
	FixedAllocationSize float64 `yaml:"fixed_allocation_size" default:"1.0"`
}

// HighLowParams configure high_low_difference.
type HighLowParams struct {
	Scale    float64 `yaml:"scale" default:"1.0"`
	Constant float64 `yaml:"constant"`
}

// SMACrossoverParams configure sma_crossover.
type SMACrossoverParams struct {
	Fast int `yaml:"fast" validate:"gte=0"`
	Slow int `yaml:"slow" validate:"gte=0"`
}

// WeightedMovingAveragesParams configure weighted_moving_averages.
type WeightedMovingAveragesParams struct {
	AvgPriceCoeff     float64 `yaml:"avg_price_coeff" default:"1.0"`
	AvgResearchCoeff  float64 `yaml:"avg_research_coeff" default:"1.0"`
	AvgPriceLength    int     `yaml:"avg_price_length" default:"2" validate:"gt=0"`
	AvgResearchLength int     `yaml:"avg_research_length" default:"2" validate:"gt=0"`
}

func init() {
	register(Definition{
		Name:        "fifty_fifty",
		Description: "Allocates 50% of the strategy budget to the asset, 50% to cash.",
		NewParams:   func() any { return &NoParams{} },
		Apply: func(f *frame.Frame, _ any) (any, error) {
			f.SetConst(frame.ColAllocation, 0.5)
			return nil, nil
		},
	})

	register(Definition{
		Name:        "buy_and_hold",
		Description: "Allocates 100% of the strategy budget to the asset for the whole period.",
		NewParams:   func() any { return &NoParams{} },
		Apply: func(f *frame.Frame, _ any) (any, error) {
			f.SetConst(frame.ColAllocation, 1.0)
			return nil, nil
		},
	})

	register(Definition{
		Name:        "constant_allocation_size",
		Description: "Returns a constant allocation controlled by fixed_allocation_size.",
		NewParams:   func() any { return &ConstantParams{} },
		Apply: func(f *frame.Frame, params any) (any, error) {
			p := params.(*ConstantParams)
			f.SetConst(frame.ColAllocation, p.FixedAllocationSize)
			return nil, nil
		},
	})

	register(Definition{
		Name:        "high_low_difference",
		Description: "Sizes by the spread between high and low, scaled and offset.",
		Series:      []string{frame.ColHigh, frame.ColLow},
		NewParams:   func() any { return &HighLowParams{} },
		Apply:       applyHighLow,
	})

	register(Definition{
		Name:        "sma_crossover",
		Description: "Goes long when a fast SMA of price is above a slow SMA.",
		Series:      []string{frame.ColPrice},
		NewParams:   func() any { return &SMACrossoverParams{} },
		Apply:       applySMACrossover,
	})

	register(Definition{
		Name:        "weighted_moving_averages",
		Description: "Weights moving averages of price and research, normalized by price level.",
		Series:      []string{frame.ColResearch},
		NewParams:   func() any { return &WeightedMovingAveragesParams{} },
		Apply:       applyWeightedMovingAverages,
	})
}

func applyHighLow(f *frame.Frame, params any) (any, error) {
	p := params.(*HighLowParams)
	high, err := f.Column(frame.ColHigh)
	if err != nil {
		return nil, err
	}
	low, err := f.Column(frame.ColLow)
	if err != nil {
		return nil, err
	}
	alloc := make([]float64, f.Len())
	for i := range alloc {
		alloc[i] = (high[i]-low[i])*p.Scale + p.Constant
	}
	return nil, f.SetColumn(frame.ColAllocation, alloc)
}

func applySMACrossover(f *frame.Frame, params any) (any, error) {
	p := params.(*SMACrossoverParams)
	price, err := f.Column(frame.ColPrice)
	if err != nil {
		return nil, err
	}
	fast := ops.RollingMean(price, p.Fast)
	slow := ops.RollingMean(price, p.Slow)
	alloc := make([]float64, f.Len())
	for i := range alloc {
		// NaN comparisons are false, so incomplete windows stay flat.
		if fast[i] > slow[i] {
			alloc[i] = 1.0
		}
	}
	return nil, f.SetColumn(frame.ColAllocation, alloc)
}

func applyWeightedMovingAverages(f *frame.Frame, params any) (any, error) {
	p := params.(*WeightedMovingAveragesParams)
	mid, err := f.Column(frame.ColMid)
	if err != nil {
		return nil, err
	}
	research, err := f.Column(frame.ColResearch)
	if err != nil {
		return nil, err
	}

	avgPrice := ops.RollingMean(mid, p.AvgPriceLength)
	avgResearch := ops.RollingMean(research, p.AvgResearchLength)

	// The sum assumes the research series has the same dimensionality as
	// the price series, e.g. a fair-value estimate.
	alloc := make([]float64, f.Len())
	for i := range alloc {
		alloc[i] = (p.AvgPriceCoeff*avgPrice[i] + p.AvgResearchCoeff*avgResearch[i]) / mid[i]
	}
	return nil, f.SetColumn(frame.ColAllocation, alloc)
}
