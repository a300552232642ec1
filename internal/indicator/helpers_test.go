package indicator

import (
	"time"

	"github.com/rxtech-lab/argo-signal/internal/types"
)

var baseDate = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

// observations builds one daily observation per close price.
func observations(closes ...float64) []types.Observation {
	series := make([]types.Observation, len(closes))
	for i, c := range closes {
		series[i] = types.Observation{
			Time:         baseDate.AddDate(0, 0, i),
			Symbol:       "000001",
			Name:         "Test",
			ClosePrice:   c,
			Turnover:     1000 + float64(i),
			TurnoverRate: 1.0,
		}
	}

	return series
}

func repeat(value float64, n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = value
	}

	return values
}

// dropAndRecovery is 30 flat rows at 10, a drop to 8, then a recovery back to 10.
func dropAndRecovery() []float64 {
	return append(repeat(10, 30), 8.0, 8.4, 8.8, 9.2, 9.6, 10.0)
}

// newRows returns rows with every indicator column undefined.
func newRows(series []types.Observation) []types.IndicatorRow {
	rows := make([]types.IndicatorRow, len(series))
	for i, obs := range series {
		rows[i] = types.NewIndicatorRow(obs)
	}

	return rows
}

// runIndicator updates rows left to right with ind.
func runIndicator(ind Indicator, rows []types.IndicatorRow) error {
	for i := range rows {
		if err := ind.Update(rows, i); err != nil {
			return err
		}
	}

	return nil
}
