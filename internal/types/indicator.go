package types

import "github.com/moznion/go-optional"

type IndicatorType string

const (
	IndicatorTypeMA             IndicatorType = "ma"
	IndicatorTypeBollingerBands IndicatorType = "bollinger_bands"
	IndicatorTypeMACD           IndicatorType = "macd"
	IndicatorTypeRSI            IndicatorType = "rsi"
	IndicatorTypeTurnoverMA     IndicatorType = "turnover_ma"
)

// IndicatorRow is an Observation extended with the derived indicator columns.
// A column is None until its trailing window has accumulated enough rows.
type IndicatorRow struct {
	Observation

	MovingAverage optional.Option[float64] `json:"moving_average"`
	Volatility    optional.Option[float64] `json:"volatility"`
	BandUpper     optional.Option[float64] `json:"band_upper"`
	BandLower     optional.Option[float64] `json:"band_lower"`
	EMAFast       optional.Option[float64] `json:"ema_fast"`
	EMASlow       optional.Option[float64] `json:"ema_slow"`
	MACDDiff      optional.Option[float64] `json:"macd_diff"`
	MACDSignal    optional.Option[float64] `json:"macd_signal"`
	MACDHist      optional.Option[float64] `json:"macd_hist"`
	RSI           optional.Option[float64] `json:"rsi"`
	AvgTurnover   optional.Option[float64] `json:"avg_turnover"`
}

// NewIndicatorRow returns a row for obs with every indicator column undefined.
func NewIndicatorRow(obs Observation) IndicatorRow {
	return IndicatorRow{
		Observation:   obs,
		MovingAverage: optional.None[float64](),
		Volatility:    optional.None[float64](),
		BandUpper:     optional.None[float64](),
		BandLower:     optional.None[float64](),
		EMAFast:       optional.None[float64](),
		EMASlow:       optional.None[float64](),
		MACDDiff:      optional.None[float64](),
		MACDSignal:    optional.None[float64](),
		MACDHist:      optional.None[float64](),
		RSI:           optional.None[float64](),
		AvgTurnover:   optional.None[float64](),
	}
}
