package types

import (
	"fmt"

	"github.com/moznion/go-optional"
)

// SignalType is the per-row trading decision.
type SignalType int

const (
	// SignalTypeBuy means enough conditions agree on a buy.
	SignalTypeBuy SignalType = 1
	// SignalTypeAvoid means the row does not qualify.
	SignalTypeAvoid SignalType = -1
)

// String implements fmt.Stringer.
func (s SignalType) String() string {
	switch s {
	case SignalTypeBuy:
		return "BUY"
	case SignalTypeAvoid:
		return "AVOID"
	default:
		return fmt.Sprintf("SignalType(%d)", int(s))
	}
}

// ConditionName identifies one of the classifier's buy conditions.
type ConditionName string

const (
	ConditionPriceBelowMA        ConditionName = "price_below_ma"
	ConditionPriceBelowLowerBand ConditionName = "price_below_lower_band"
	ConditionBandContraction     ConditionName = "band_contraction"
	ConditionMACDHistRising      ConditionName = "macd_hist_rising"
	ConditionMACDBullishCross    ConditionName = "macd_bullish_cross"
	ConditionRSIRebound          ConditionName = "rsi_rebound"
	ConditionTurnoverInRange     ConditionName = "turnover_in_range"
)

// ConditionResult is the outcome of one condition on one row.
type ConditionResult struct {
	Name      ConditionName `json:"name"`
	Satisfied bool          `json:"satisfied"`
}

// SignalRow is an IndicatorRow extended with the classifier's verdict.
type SignalRow struct {
	IndicatorRow

	// Conditions holds every condition result in evaluation order.
	Conditions []ConditionResult `json:"conditions"`
	// ConditionCount is the number of satisfied conditions.
	ConditionCount int `json:"condition_count"`
	// Signal is the verdict computed from this row's own data.
	Signal SignalType `json:"signal"`
	// Position is the previous row's Signal; a same-day signal can only be acted on the next day.
	// None on the first row.
	Position optional.Option[SignalType] `json:"position"`
}

// Satisfied reports whether the named condition held on this row.
func (r SignalRow) Satisfied(name ConditionName) bool {
	for _, c := range r.Conditions {
		if c.Name == name {
			return c.Satisfied
		}
	}

	return false
}

// IsBuy reports whether the row's own signal is BUY.
func (r SignalRow) IsBuy() bool {
	return r.Signal == SignalTypeBuy
}
