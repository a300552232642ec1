package classifier

import (
	"time"

	"github.com/rxtech-lab/argo-signal/internal/types"
)

var baseDate = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

// blankRows returns n rows with close 10, turnover rate 0 and every indicator undefined.
func blankRows(n int) []types.IndicatorRow {
	rows := make([]types.IndicatorRow, n)
	for i := range rows {
		rows[i] = types.NewIndicatorRow(types.Observation{
			Time:       baseDate.AddDate(0, 0, i),
			Symbol:     "000001",
			ClosePrice: 10,
		})
	}

	return rows
}

// buyRows returns a two-row slice whose second row satisfies the four
// price, MACD and turnover conditions.
func buyRows() []types.IndicatorRow {
	rows := blankRows(2)

	rows[1].ClosePrice = 8
	rows[1].MovingAverage = types.Defined(10)
	rows[1].BandLower = types.Defined(9)
	rows[1].TurnoverRate = 1

	rows[0].MACDHist = types.Defined(-0.2)
	rows[1].MACDHist = types.Defined(0.1)

	return rows
}
