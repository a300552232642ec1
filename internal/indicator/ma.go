package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// MA indicator implements the Simple Moving Average of the close price.
type MA struct {
	period int
}

// NewMA creates a new MA indicator with default configuration.
func NewMA() Indicator {
	return &MA{
		period: 10, // Default period
	}
}

// Name returns the name of the indicator.
func (m *MA) Name() types.IndicatorType {
	return types.IndicatorTypeMA
}

// Config configures the MA indicator. Expected parameters: period (int).
func (m *MA) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, err := periodParam(params[0], "period")
	if err != nil {
		return err
	}

	m.period = period

	return nil
}

// Lookback implements Indicator.
func (m *MA) Lookback() int {
	return m.period
}

// Update sets MovingAverage on rows[i]; undefined for the first period-1 rows.
func (m *MA) Update(rows []types.IndicatorRow, i int) error {
	window, ok := trailing(rows, i, m.period, closePrice)
	if !ok {
		rows[i].MovingAverage = types.Undefined()

		return nil
	}

	rows[i].MovingAverage = types.Defined(Mean(window))

	return nil
}

// Mean returns the arithmetic mean of values. Callers pass a non-empty window.
// A constant window yields its value exactly; otherwise the sum is compensated
// (Neumaier) so rounding does not accumulate across the window.
func Mean(values []float64) float64 {
	if allEqual(values) {
		return values[0]
	}

	var sum, compensation float64

	for _, v := range values {
		t := sum + v
		if math.Abs(sum) >= math.Abs(v) {
			compensation += (sum - t) + v
		} else {
			compensation += (v - t) + sum
		}

		sum = t
	}

	return (sum + compensation) / float64(len(values))
}

func allEqual(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}

	return true
}

// periodParam accepts an int, or a float64 holding a whole number, greater than zero.
func periodParam(param any, name string) (int, error) {
	var period int

	switch p := param.(type) {
	case int:
		period = p
	case float64:
		if p != float64(int(p)) {
			return 0, errors.Newf(errors.ErrCodeInvalidType, "invalid value for %s parameter, expected a whole number, got %v", name, p)
		}

		period = int(p)
	default:
		return 0, errors.Newf(errors.ErrCodeInvalidType, "invalid type for %s parameter, expected int", name)
	}

	if period <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidPeriod, "%s must be a positive integer, got %d", name, period)
	}

	return period, nil
}
