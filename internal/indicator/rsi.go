package indicator

import (
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// RSI represents the Relative Strength Index indicator.
//
// Average gain and loss are simple means over the trailing period of
// day-over-day close changes, not Wilder's smoothing. The first row has no
// change, so RSI is undefined for the first period rows.
type RSI struct {
	period  int
	epsilon float64
}

// NewRSI creates a new RSI indicator with default configuration.
func NewRSI() Indicator {
	return &RSI{
		period:  14,   // Default period
		epsilon: 1e-6, // Keeps a zero average loss from dividing by zero
	}
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Config configures the RSI indicator. Expected parameters: period (int), optional epsilon (float64).
func (r *RSI) Config(params ...any) error {
	if len(params) < 1 || len(params) > 2 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 or 2 parameters: period (int), epsilon (float64)")
	}

	period, err := periodParam(params[0], "period")
	if err != nil {
		return err
	}

	epsilon := r.epsilon

	if len(params) == 2 {
		e, ok := params[1].(float64)
		if !ok {
			return errors.New(errors.ErrCodeInvalidType, "invalid type for epsilon parameter, expected float64")
		}

		if e <= 0 {
			return errors.Newf(errors.ErrCodeInvalidThreshold, "epsilon must be a positive number, got %g", e)
		}

		epsilon = e
	}

	r.period = period
	r.epsilon = epsilon

	return nil
}

// Lookback implements Indicator. period changes need period+1 closes.
func (r *RSI) Lookback() int {
	return r.period + 1
}

// Update implements Indicator.
func (r *RSI) Update(rows []types.IndicatorRow, i int) error {
	closes, ok := trailing(rows, i, r.period+1, closePrice)
	if !ok {
		rows[i].RSI = types.Undefined()

		return nil
	}

	gains := make([]float64, r.period)
	losses := make([]float64, r.period)

	for k := 1; k < len(closes); k++ {
		change := closes[k] - closes[k-1]
		if change > 0 {
			gains[k-1] = change
		} else if change < 0 {
			losses[k-1] = -change
		}
	}

	avgGain := Mean(gains)
	avgLoss := Mean(losses)

	rs := avgGain / (avgLoss + r.epsilon)
	rows[i].RSI = types.Defined(100 - (100 / (1 + rs)))

	return nil
}
