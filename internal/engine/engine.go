// Package engine runs the indicator calculator and the signal classifier over
// an observation series, either as one batch or one observation at a time.
package engine

import (
	"time"

	"github.com/rxtech-lab/argo-signal/internal/classifier"
	"github.com/rxtech-lab/argo-signal/internal/config"
	"github.com/rxtech-lab/argo-signal/internal/indicator"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"go.uber.org/zap"
)

// Result is the output of one batch run.
type Result struct {
	// Rows holds one SignalRow per input observation.
	Rows []types.SignalRow
	// Warning is set when the series is shorter than the configured minimum
	// history. Rows are still complete; callers should not act on them.
	Warning *errors.InsufficientHistoryWarning
}

// Sufficient reports whether the series met the minimum history.
func (r Result) Sufficient() bool {
	return r.Warning == nil
}

// Latest returns the last row, or false when there are none.
func (r Result) Latest() (types.SignalRow, bool) {
	if len(r.Rows) == 0 {
		return types.SignalRow{}, false
	}

	return r.Rows[len(r.Rows)-1], true
}

// Tail returns the last n rows, or all rows when there are fewer.
func (r Result) Tail(n int) []types.SignalRow {
	if n >= len(r.Rows) {
		return r.Rows
	}

	return r.Rows[len(r.Rows)-n:]
}

// Engine composes the calculator and the classifier.
type Engine struct {
	calculator *indicator.Calculator
	classifier *classifier.Classifier
	minHistory int
	log        *logger.Logger
}

// New creates an engine from cfg.
func New(cfg config.Config, log *logger.Logger) (*Engine, error) {
	calculator, err := indicator.NewCalculator(cfg.Indicators)
	if err != nil {
		return nil, err
	}

	if cfg.MinHistory <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "min_history must be positive, got %d", cfg.MinHistory)
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Engine{
		calculator: calculator,
		classifier: classifier.New(cfg.Classifier),
		minHistory: cfg.MinHistory,
		log:        log,
	}, nil
}

// MinHistory returns the rows required before a signal is trusted.
func (e *Engine) MinHistory() int {
	return e.minHistory
}

// Run computes indicators and signals for series. It returns an error only for
// an invalid series; a short series yields a full Result with Warning set.
func (e *Engine) Run(series []types.Observation) (Result, error) {
	start := time.Now()

	rows, err := e.calculator.Compute(series)
	if err != nil {
		return Result{}, err
	}

	signals, err := e.classifier.Classify(rows)
	if err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeClassificationFailed, "failed to classify indicator rows", err)
	}

	result := Result{Rows: signals}
	symbol := series[0].Symbol

	if len(series) < e.minHistory {
		result.Warning = errors.NewInsufficientHistoryWarningf(e.minHistory, len(series), symbol,
			"series has %d rows, at least %d are required", len(series), e.minHistory)

		e.log.Warn("Insufficient history",
			zap.String("symbol", symbol),
			zap.Int("required", e.minHistory),
			zap.Int("actual", len(series)),
		)
	}

	e.log.Debug("Signals computed",
		zap.String("symbol", symbol),
		zap.Int("rows", len(signals)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return result, nil
}
