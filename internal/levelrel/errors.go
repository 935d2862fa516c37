package levelrel

import "fmt"

// ConfigError reports a series length / parameter combination that cannot
// produce any prediction window. Fatal for the call, never retried.
type ConfigError struct {
	SeriesLength     int
	RegressionPeriod int
	ForecastPeriod   int
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("prediction indices are zero in length (series=%d regression_period=%d forecast_period=%d)",
		e.SeriesLength, e.RegressionPeriod, e.ForecastPeriod)
}

// NumericError reports an invariant violation in the numeric core, such
// as a negative volatility estimate. Fatal for the call.
type NumericError struct {
	Quantity string
	Value    float64
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("%s must be non-negative, got %g", e.Quantity, e.Value)
}
