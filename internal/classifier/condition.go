package classifier

import (
	"github.com/rxtech-lab/argo-signal/internal/config"
	"github.com/rxtech-lab/argo-signal/internal/indicator"
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// ConditionFn evaluates a condition on rows[i]. It may read rows before i.
// Any undefined operand makes the condition false.
type ConditionFn func(rows []types.IndicatorRow, i int) bool

// Condition is one named buy condition.
type Condition struct {
	Name types.ConditionName
	// Lookback is the number of trailing rows, current row included, Eval reads.
	Lookback int
	Eval     ConditionFn
}

// DefaultConditions returns the seven buy conditions in evaluation order.
func DefaultConditions(cfg config.ClassifierConfig) []Condition {
	return []Condition{
		{Name: types.ConditionPriceBelowMA, Lookback: 1, Eval: priceBelowMA},
		{Name: types.ConditionPriceBelowLowerBand, Lookback: 1, Eval: priceBelowLowerBand},
		{
			Name:     types.ConditionBandContraction,
			Lookback: cfg.BandContractionPeriod,
			Eval:     bandContraction(cfg.BandContractionPeriod, cfg.BandContractionThreshold),
		},
		{Name: types.ConditionMACDHistRising, Lookback: 2, Eval: macdHistRising},
		{Name: types.ConditionMACDBullishCross, Lookback: 2, Eval: macdBullishCross},
		{Name: types.ConditionRSIRebound, Lookback: 2, Eval: rsiRebound(cfg.RSIOversold)},
		{
			Name:     types.ConditionTurnoverInRange,
			Lookback: 1,
			Eval:     turnoverInRange(cfg.TurnoverRateMin, cfg.TurnoverRateMax),
		},
	}
}

func priceBelowMA(rows []types.IndicatorRow, i int) bool {
	return types.Less(types.Defined(rows[i].ClosePrice), rows[i].MovingAverage)
}

func priceBelowLowerBand(rows []types.IndicatorRow, i int) bool {
	return types.Less(types.Defined(rows[i].ClosePrice), rows[i].BandLower)
}

// bandContraction holds when the upper band has barely moved over the trailing
// period rows, all of which must have a defined upper band.
func bandContraction(period int, threshold float64) ConditionFn {
	return func(rows []types.IndicatorRow, i int) bool {
		window, ok := indicator.TrailingDefined(rows, i, period, func(r types.IndicatorRow) types.Value {
			return r.BandUpper
		})
		if !ok {
			return false
		}

		return indicator.SampleStdDev(window) < threshold
	}
}

func macdHistRising(rows []types.IndicatorRow, i int) bool {
	if i < 1 {
		return false
	}

	return types.Greater(rows[i].MACDHist, rows[i-1].MACDHist)
}

// macdBullishCross holds on the row where diff moves from at or below the
// signal line to strictly above it.
func macdBullishCross(rows []types.IndicatorRow, i int) bool {
	if i < 1 {
		return false
	}

	return types.Greater(rows[i].MACDDiff, rows[i].MACDSignal) &&
		types.LessOrEqual(rows[i-1].MACDDiff, rows[i-1].MACDSignal)
}

func rsiRebound(oversold float64) ConditionFn {
	return func(rows []types.IndicatorRow, i int) bool {
		if i < 1 {
			return false
		}

		prev := rows[i-1].RSI

		return types.Less(prev, types.Defined(oversold)) && types.Greater(rows[i].RSI, prev)
	}
}

// turnoverInRange uses exclusive bounds.
func turnoverInRange(lower, upper float64) ConditionFn {
	return func(rows []types.IndicatorRow, i int) bool {
		rate := rows[i].TurnoverRate

		return rate > lower && rate < upper
	}
}
