package indicator

import (
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// MACD represents the Moving Average Convergence Divergence indicator.
// It fills EMAFast, EMASlow, MACDDiff, MACDSignal and MACDHist, each defined
// from the first row.
type MACD struct {
	fast   *EMA
	slow   *EMA
	signal *EMA
}

// NewMACD creates a new MACD indicator with default configuration.
func NewMACD() Indicator {
	m := &MACD{}
	// defaults are valid spans
	_ = m.Config(12, 26, 9)

	return m
}

// Name returns the name of the indicator.
func (m *MACD) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Config configures the MACD indicator. Expected parameters: fastSpan (int), slowSpan (int), signalSpan (int).
func (m *MACD) Config(params ...any) error {
	if len(params) != 3 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 3 parameters: fastSpan (int), slowSpan (int), signalSpan (int)")
	}

	spans := make([]int, 3)

	for k, name := range []string{"fastSpan", "slowSpan", "signalSpan"} {
		span, err := periodParam(params[k], name)
		if err != nil {
			return err
		}

		spans[k] = span
	}

	if spans[0] >= spans[1] {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "fastSpan must be less than slowSpan, got %d and %d", spans[0], spans[1])
	}

	fast, err := NewEMA(spans[0])
	if err != nil {
		return err
	}

	slow, err := NewEMA(spans[1])
	if err != nil {
		return err
	}

	signal, err := NewEMA(spans[2])
	if err != nil {
		return err
	}

	m.fast = fast
	m.slow = slow
	m.signal = signal

	return nil
}

// Lookback implements Indicator. The recurrences only need the previous row.
func (m *MACD) Lookback() int {
	return 2
}

// Update implements Indicator.
func (m *MACD) Update(rows []types.IndicatorRow, i int) error {
	prevFast, prevSlow, prevSignal := types.Undefined(), types.Undefined(), types.Undefined()
	if i > 0 {
		prevFast, prevSlow, prevSignal = rows[i-1].EMAFast, rows[i-1].EMASlow, rows[i-1].MACDSignal
	}

	price := rows[i].ClosePrice
	fast := m.fast.Next(prevFast, price)
	slow := m.slow.Next(prevSlow, price)

	diff := types.Combine(fast, slow, func(f, s float64) float64 { return f - s })
	if diff.IsNone() {
		return errors.Newf(errors.ErrCodeIndicatorCalculation, "MACD difference undefined at row %d", i)
	}

	signal := m.signal.Next(prevSignal, diff.Unwrap())

	rows[i].EMAFast = fast
	rows[i].EMASlow = slow
	rows[i].MACDDiff = diff
	rows[i].MACDSignal = signal
	rows[i].MACDHist = types.Combine(diff, signal, func(d, s float64) float64 { return d - s })

	return nil
}
