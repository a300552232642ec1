package types

import "time"

// Observation is one daily record for a single instrument.
type Observation struct {
	// Time is the trading date. Strictly increasing within a series.
	Time time.Time `yaml:"time" json:"time" csv:"time"`
	// Symbol is the instrument code (e.g. "000001").
	Symbol string `yaml:"symbol" json:"symbol" csv:"instrument_id"`
	// Name is the instrument display name.
	Name string `yaml:"name" json:"name" csv:"instrument_name"`
	// ClosePrice is the settlement price every derived statistic is computed from.
	ClosePrice float64 `yaml:"close_price" json:"close_price" csv:"close_price"`
	// Turnover is the monetary volume traded.
	Turnover float64 `yaml:"turnover" json:"turnover" csv:"turnover"`
	// TurnoverRate is the percentage of float traded.
	TurnoverRate float64 `yaml:"turnover_rate" json:"turnover_rate" csv:"turnover_rate"`
}
