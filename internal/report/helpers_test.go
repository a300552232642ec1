package report

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/types"
)

var defaultConditions = []types.ConditionName{
	types.ConditionPriceBelowMA,
	types.ConditionPriceBelowLowerBand,
	types.ConditionBandContraction,
	types.ConditionMACDHistRising,
	types.ConditionMACDBullishCross,
	types.ConditionRSIRebound,
	types.ConditionTurnoverInRange,
}

// sampleRows returns an AVOID row with undefined indicators followed by a BUY row.
func sampleRows() []types.SignalRow {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	first := types.SignalRow{
		IndicatorRow: types.NewIndicatorRow(types.Observation{
			Time:         day,
			Symbol:       "000001",
			Name:         "Ping An Bank",
			ClosePrice:   10.5,
			Turnover:     1e6,
			TurnoverRate: 1.2,
		}),
		ConditionCount: 1,
		Signal:         types.SignalTypeAvoid,
		Position:       optional.None[types.SignalType](),
	}

	for _, name := range defaultConditions {
		first.Conditions = append(first.Conditions, types.ConditionResult{
			Name:      name,
			Satisfied: name == types.ConditionTurnoverInRange,
		})
	}

	second := first
	second.Time = day.AddDate(0, 0, 1)
	second.ClosePrice = 9.75
	second.MovingAverage = types.Defined(10.25)
	second.RSI = types.Defined(21.5)
	second.ConditionCount = 4
	second.Signal = types.SignalTypeBuy
	second.Position = optional.Some(types.SignalTypeAvoid)
	second.Conditions = []types.ConditionResult{
		{Name: types.ConditionPriceBelowMA, Satisfied: true},
		{Name: types.ConditionPriceBelowLowerBand, Satisfied: true},
		{Name: types.ConditionBandContraction, Satisfied: false},
		{Name: types.ConditionMACDHistRising, Satisfied: true},
		{Name: types.ConditionMACDBullishCross, Satisfied: false},
		{Name: types.ConditionRSIRebound, Satisfied: false},
		{Name: types.ConditionTurnoverInRange, Satisfied: true},
	}

	return []types.SignalRow{first, second}
}

// customRows returns sampleRows evaluated by a classifier with two custom conditions.
func customRows() []types.SignalRow {
	rows := sampleRows()
	for i := range rows {
		rows[i].Conditions = []types.ConditionResult{
			{Name: "close_above_ten", Satisfied: rows[i].ClosePrice > 10},
			{Name: types.ConditionTurnoverInRange, Satisfied: true},
		}
		rows[i].ConditionCount = 1
		if rows[i].ClosePrice > 10 {
			rows[i].ConditionCount = 2
		}
	}

	return rows
}
