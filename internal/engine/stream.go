package engine

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// Stream produces signals one observation at a time. It keeps only the
// trailing rows the indicators and conditions read, and every row it returns
// equals the row Run would return at the same index.
//
// A Stream is not safe for concurrent use.
type Stream struct {
	engine   *Engine
	window   int
	rows     []types.IndicatorRow
	count    int
	lastTime time.Time
	previous optional.Option[types.SignalType]
}

// NewStream creates an empty stream sharing the engine's configuration.
func (e *Engine) NewStream() *Stream {
	window := max(e.calculator.Lookback(), e.classifier.Lookback())

	return &Stream{
		engine:   e,
		window:   window,
		rows:     make([]types.IndicatorRow, 0, window+1),
		previous: optional.None[types.SignalType](),
	}
}

// Window returns the number of trailing rows the stream retains.
func (s *Stream) Window() int {
	return s.window
}

// Count returns the number of observations pushed so far.
func (s *Stream) Count() int {
	return s.count
}

// Warm reports whether enough observations were pushed to trust a signal.
func (s *Stream) Warm() bool {
	return s.count >= s.engine.minHistory
}

// Push appends obs and returns its SignalRow. obs must be later than every
// observation pushed before it.
func (s *Stream) Push(obs types.Observation) (types.SignalRow, error) {
	if s.count > 0 && !obs.Time.After(s.lastTime) {
		return types.SignalRow{}, errors.Newf(errors.ErrCodeStreamOutOfOrder,
			"observation at %s is not after %s", obs.Time.Format("2006-01-02"), s.lastTime.Format("2006-01-02"))
	}

	s.rows = append(s.rows, types.NewIndicatorRow(obs))
	i := len(s.rows) - 1

	if err := s.engine.calculator.Update(s.rows, i); err != nil {
		s.rows = s.rows[:i]

		return types.SignalRow{}, err
	}

	row := s.engine.classifier.Evaluate(s.rows, i)
	row.Position = s.previous

	if len(s.rows) > s.window {
		copy(s.rows, s.rows[1:])
		s.rows = s.rows[:s.window]
	}

	s.previous = optional.Some(row.Signal)
	s.lastTime = obs.Time
	s.count++

	return row, nil
}
