package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// BollingerBands fills Volatility, BandUpper and BandLower.
//
// The bands are centred on the MovingAverage column of the same row, so MA must
// run before it in the pipeline. The MA and volatility windows are independent.
type BollingerBands struct {
	period     int     // Rows in the volatility window
	multiplier float64 // Number of standard deviations
}

// NewBollingerBands creates a new Bollinger Bands indicator with default configuration.
func NewBollingerBands() Indicator {
	return &BollingerBands{
		period:     20,
		multiplier: 2.0,
	}
}

// Name returns the name of the indicator.
func (bb *BollingerBands) Name() types.IndicatorType {
	return types.IndicatorTypeBollingerBands
}

// Config configures the Bollinger Bands indicator. Expected parameters: period (int), multiplier (float64).
func (bb *BollingerBands) Config(params ...any) error {
	if len(params) != 2 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 2 parameters: period (int), multiplier (float64)")
	}

	period, err := periodParam(params[0], "period")
	if err != nil {
		return err
	}

	if period < 2 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "period must be at least 2 for a sample standard deviation, got %d", period)
	}

	multiplier, ok := params[1].(float64)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for multiplier parameter, expected float64")
	}

	if multiplier <= 0 {
		return errors.Newf(errors.ErrCodeInvalidMultiplier, "multiplier must be a positive number, got %f", multiplier)
	}

	bb.period = period
	bb.multiplier = multiplier

	return nil
}

// Lookback implements Indicator.
func (bb *BollingerBands) Lookback() int {
	return bb.period
}

// Update implements Indicator.
func (bb *BollingerBands) Update(rows []types.IndicatorRow, i int) error {
	volatility := types.Undefined()
	if window, ok := trailing(rows, i, bb.period, closePrice); ok {
		volatility = types.Defined(SampleStdDev(window))
	}

	width := types.Combine(volatility, types.Defined(bb.multiplier), func(v, k float64) float64 { return k * v })

	rows[i].Volatility = volatility
	rows[i].BandUpper = types.Combine(rows[i].MovingAverage, width, func(ma, w float64) float64 { return ma + w })
	rows[i].BandLower = types.Combine(rows[i].MovingAverage, width, func(ma, w float64) float64 { return ma - w })

	return nil
}

// SampleStdDev returns the sample (n-1) standard deviation of values.
// Callers pass at least two values. A constant window yields exactly 0; otherwise
// the corrected two-pass form removes the rounding left in the mean.
func SampleStdDev(values []float64) float64 {
	if allEqual(values) {
		return 0
	}

	mean := Mean(values)

	var squaredDiffSum, diffSum float64

	for _, v := range values {
		diff := v - mean
		squaredDiffSum += diff * diff
		diffSum += diff
	}

	n := float64(len(values))
	variance := (squaredDiffSum - diffSum*diffSum/n) / (n - 1)

	return math.Sqrt(max(variance, 0))
}
