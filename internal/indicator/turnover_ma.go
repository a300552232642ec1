package indicator

import (
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// TurnoverMA is the simple moving average of the traded turnover.
type TurnoverMA struct {
	period int
}

// NewTurnoverMA creates a new turnover average with default configuration.
func NewTurnoverMA() Indicator {
	return &TurnoverMA{
		period: 5,
	}
}

// Name returns the name of the indicator.
func (t *TurnoverMA) Name() types.IndicatorType {
	return types.IndicatorTypeTurnoverMA
}

// Config configures the indicator. Expected parameters: period (int).
func (t *TurnoverMA) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, err := periodParam(params[0], "period")
	if err != nil {
		return err
	}

	t.period = period

	return nil
}

// Lookback implements Indicator.
func (t *TurnoverMA) Lookback() int {
	return t.period
}

// Update sets AvgTurnover on rows[i].
func (t *TurnoverMA) Update(rows []types.IndicatorRow, i int) error {
	window, ok := trailing(rows, i, t.period, turnover)
	if !ok {
		rows[i].AvgTurnover = types.Undefined()

		return nil
	}

	rows[i].AvgTurnover = types.Defined(Mean(window))

	return nil
}
