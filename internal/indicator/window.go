package indicator

import (
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// trailing returns field over rows[i-n+1 : i+1], or false when fewer than n rows exist.
func trailing(rows []types.IndicatorRow, i, n int, field func(types.IndicatorRow) float64) ([]float64, bool) {
	if n <= 0 || i+1 < n || i >= len(rows) {
		return nil, false
	}

	values := make([]float64, n)
	for k := 0; k < n; k++ {
		values[k] = field(rows[i-n+1+k])
	}

	return values, true
}

// TrailingDefined is trailing for optional columns. It reports false when fewer
// than n rows exist or any value in the window is undefined.
func TrailingDefined(rows []types.IndicatorRow, i, n int, field func(types.IndicatorRow) types.Value) ([]float64, bool) {
	if n <= 0 || i+1 < n || i >= len(rows) {
		return nil, false
	}

	values := make([]float64, n)
	for k := 0; k < n; k++ {
		v := field(rows[i-n+1+k])
		if v.IsNone() {
			return nil, false
		}

		values[k] = v.Unwrap()
	}

	return values, true
}

func closePrice(r types.IndicatorRow) float64 { return r.ClosePrice }

func turnover(r types.IndicatorRow) float64 { return r.Turnover }
