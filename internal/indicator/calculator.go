package indicator

import (
	"github.com/rxtech-lab/argo-signal/internal/config"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// Pipeline is the order indicators run in for each row. BollingerBands reads the
// MovingAverage column, so MA comes first.
var Pipeline = []types.IndicatorType{
	types.IndicatorTypeMA,
	types.IndicatorTypeBollingerBands,
	types.IndicatorTypeMACD,
	types.IndicatorTypeRSI,
	types.IndicatorTypeTurnoverMA,
}

// Calculator computes every indicator column of a series.
type Calculator struct {
	registry IndicatorRegistry
	pipeline []Indicator
	lookback int
}

// NewCalculator builds the indicator pipeline from cfg.
func NewCalculator(cfg config.IndicatorConfig) (*Calculator, error) {
	registry := NewIndicatorRegistry()

	configured := []struct {
		indicator Indicator
		params    []any
	}{
		{NewMA(), []any{cfg.MAPeriod}},
		{NewBollingerBands(), []any{cfg.VolatilityPeriod, cfg.BandMultiplier}},
		{NewMACD(), []any{cfg.FastSpan, cfg.SlowSpan, cfg.SignalSpan}},
		{NewRSI(), []any{cfg.RSIPeriod, cfg.RSIEpsilon}},
		{NewTurnoverMA(), []any{cfg.TurnoverPeriod}},
	}

	for _, c := range configured {
		if err := c.indicator.Config(c.params...); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidParameter, err, "failed to configure %s", c.indicator.Name())
		}

		if err := registry.RegisterIndicator(c.indicator); err != nil {
			return nil, err
		}
	}

	return NewCalculatorWithRegistry(registry)
}

// NewCalculatorWithRegistry builds a calculator from indicators already
// registered and configured under the Pipeline names.
func NewCalculatorWithRegistry(registry IndicatorRegistry) (*Calculator, error) {
	pipeline := make([]Indicator, 0, len(Pipeline))
	lookback := 1

	for _, name := range Pipeline {
		ind, err := registry.GetIndicator(name)
		if err != nil {
			return nil, err
		}

		pipeline = append(pipeline, ind)
		lookback = max(lookback, ind.Lookback())
	}

	return &Calculator{
		registry: registry,
		pipeline: pipeline,
		lookback: lookback,
	}, nil
}

// Registry returns the registry backing the pipeline.
func (c *Calculator) Registry() IndicatorRegistry {
	return c.registry
}

// Lookback returns the trailing rows, current row included, any indicator reads.
func (c *Calculator) Lookback() int {
	return c.lookback
}

// Compute returns one IndicatorRow per observation, in input order.
// series is not modified.
func (c *Calculator) Compute(series []types.Observation) ([]types.IndicatorRow, error) {
	if err := ValidateSeries(series); err != nil {
		return nil, err
	}

	rows := make([]types.IndicatorRow, len(series))
	for i, obs := range series {
		rows[i] = types.NewIndicatorRow(obs)
		if err := c.Update(rows, i); err != nil {
			return nil, err
		}
	}

	return rows, nil
}

// Update runs the pipeline on rows[i]. Rows before i must already be complete.
func (c *Calculator) Update(rows []types.IndicatorRow, i int) error {
	for _, ind := range c.pipeline {
		if err := ind.Update(rows, i); err != nil {
			return errors.Wrapf(errors.ErrCodeIndicatorCalculation, err, "%s failed at row %d", ind.Name(), i)
		}
	}

	return nil
}

// ValidateSeries rejects an empty series or one whose time is not strictly increasing.
func ValidateSeries(series []types.Observation) error {
	if len(series) == 0 {
		return errors.NewInvalidInputError("series is empty")
	}

	for i := 1; i < len(series); i++ {
		if !series[i].Time.After(series[i-1].Time) {
			return errors.NewInvalidInputErrorf("time at index %d (%s) is not after index %d (%s)",
				i, series[i].Time.Format("2006-01-02"), i-1, series[i-1].Time.Format("2006-01-02"))
		}
	}

	return nil
}
