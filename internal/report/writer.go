// Package report renders signal rows to the console, Parquet and Excel.
package report

import (
	"path/filepath"
	"strings"

	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// SignalWriter defines the interface for writing signal rows to a destination.
type SignalWriter interface {
	// Initialize sets up the writer, potentially creating tables or files.
	Initialize() error
	// Write appends a single signal row.
	Write(row types.SignalRow) error
	// Finalize completes the writing process and returns the output path.
	Finalize() (outputPath string, err error)
	// Close releases any resources held by the writer.
	Close() error
	// GetOutputPath returns the configured output file path.
	GetOutputPath() string
}

// NewSignalWriter picks a writer from the extension of outputPath.
func NewSignalWriter(outputPath string) (SignalWriter, error) {
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".parquet":
		return NewDuckDBSignalWriter(outputPath), nil
	case ".xlsx":
		return NewExcelSignalWriter(outputPath), nil
	default:
		return nil, errors.Newf(errors.ErrCodeUnsupportedFormat, "unsupported report format %q, expected .parquet or .xlsx", filepath.Ext(outputPath))
	}
}

// WriteAll initializes w, writes rows and finalizes it. w is closed on return.
func WriteAll(w SignalWriter, rows []types.SignalRow) (string, error) {
	defer w.Close()

	if err := w.Initialize(); err != nil {
		return "", err
	}

	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return w.Finalize()
}

// conditionNames returns the condition names of row in evaluation order. Writers
// take their condition columns from the first row they receive.
func conditionNames(row types.SignalRow) []types.ConditionName {
	names := make([]types.ConditionName, 0, len(row.Conditions))
	for _, c := range row.Conditions {
		names = append(names, c.Name)
	}

	return names
}

// nullable returns nil for an undefined value so it is stored as NULL.
func nullable(v types.Value) any {
	if v.IsNone() {
		return nil
	}

	return v.Unwrap()
}

func indicatorValues(row types.SignalRow) []types.Value {
	return []types.Value{
		row.MovingAverage,
		row.Volatility,
		row.BandUpper,
		row.BandLower,
		row.EMAFast,
		row.EMASlow,
		row.MACDDiff,
		row.MACDSignal,
		row.MACDHist,
		row.RSI,
		row.AvgTurnover,
	}
}

var indicatorColumns = []string{
	"moving_average",
	"volatility",
	"band_upper",
	"band_lower",
	"ema_fast",
	"ema_slow",
	"macd_diff",
	"macd_signal",
	"macd_hist",
	"rsi",
	"avg_turnover",
}
