package engine

import (
	"time"

	"github.com/rxtech-lab/argo-signal/internal/types"
)

var baseDate = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

// observations builds one daily observation per close price with a 1% turnover rate.
func observations(closes ...float64) []types.Observation {
	series := make([]types.Observation, len(closes))
	for i, c := range closes {
		series[i] = types.Observation{
			Time:         baseDate.AddDate(0, 0, i),
			Symbol:       "000001",
			Name:         "Test",
			ClosePrice:   c,
			Turnover:     1e6,
			TurnoverRate: 1.0,
		}
	}

	return series
}

func flat(value float64, n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = value
	}

	return values
}
