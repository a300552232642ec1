// Package service answers "is today a buy day" for stored instruments.
package service

import (
	"context"
	"time"

	"github.com/rxtech-lab/argo-signal/internal/engine"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/metrics"
	"github.com/rxtech-lab/argo-signal/internal/store"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"go.uber.org/zap"
)

// DefaultTailSize is the number of trailing rows kept on a Decision.
const DefaultTailSize = 5

// Reasons a Decision is not a buy.
const (
	ReasonBuy                 = "buy signal today"
	ReasonNoSignal            = "no buy signal today"
	ReasonNoDataToday         = "no observation for today"
	ReasonInsufficientHistory = "insufficient history"
)

// Decision is the verdict for one instrument on one day.
type Decision struct {
	Key    store.InstrumentKey
	Symbol string
	Name   string
	Today  time.Time
	// Buy is true when today's row exists, history is sufficient and the row is BUY.
	Buy bool
	// Suppressed is true when the series was too short to act on.
	Suppressed bool
	Reason     string
	// Today's row, when one exists.
	Row  *types.SignalRow
	Tail []types.SignalRow
	// Err is set by Scan for an instrument that failed; Check returns it instead.
	Err error
}

// Service composes the store and the engine.
type Service struct {
	store    store.ObservationStore
	engine   *engine.Engine
	metrics  *metrics.Metrics
	log      *logger.Logger
	tailSize int
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics records every run in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTailSize sets the number of trailing rows kept on a Decision.
func WithTailSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.tailSize = n
		}
	}
}

// New creates a service.
func New(observations store.ObservationStore, eng *engine.Engine, log *logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.NewNopLogger()
	}

	s := &Service{
		store:    observations,
		engine:   eng,
		log:      log,
		tailSize: DefaultTailSize,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Check loads key's series and decides whether today is a buy day.
func (s *Service) Check(ctx context.Context, key store.InstrumentKey, today time.Time) (Decision, error) {
	series, err := s.store.Load(ctx, key)
	if err != nil {
		s.observeFailure()

		return Decision{}, err
	}

	return s.decide(key, series, today)
}

// Evaluate decides on a series the caller already holds.
func (s *Service) Evaluate(series []types.Observation, today time.Time) (Decision, error) {
	if len(series) == 0 {
		return Decision{}, errors.NewInvalidInputError("series is empty")
	}

	return s.decide(store.InstrumentKey{ID: series[0].Symbol}, series, today)
}

func (s *Service) decide(key store.InstrumentKey, series []types.Observation, today time.Time) (Decision, error) {
	start := time.Now()

	result, err := s.engine.Run(series)
	if err != nil {
		s.observeFailure()

		return Decision{}, err
	}

	symbol := series[0].Symbol
	if s.metrics != nil {
		s.metrics.ObserveRun(symbol, result, time.Since(start))
	}

	decision := Decision{
		Key:    key,
		Symbol: symbol,
		Name:   series[0].Name,
		Today:  today,
		Tail:   result.Tail(s.tailSize),
	}

	if row, ok := rowOn(result.Rows, today); ok {
		decision.Row = &row
	}

	switch {
	case !result.Sufficient():
		decision.Suppressed = true
		decision.Reason = ReasonInsufficientHistory
	case decision.Row == nil:
		decision.Reason = ReasonNoDataToday
	case decision.Row.IsBuy():
		decision.Buy = true
		decision.Reason = ReasonBuy
	default:
		decision.Reason = ReasonNoSignal
	}

	s.log.Debug("Decision made",
		zap.String("symbol", symbol),
		zap.String("today", today.Format("2006-01-02")),
		zap.Bool("buy", decision.Buy),
		zap.String("reason", decision.Reason),
	)

	return decision, nil
}

// rowOn returns the row dated on the same calendar day as day. Rows are ordered
// so the search runs from the end.
func rowOn(rows []types.SignalRow, day time.Time) (types.SignalRow, bool) {
	y, m, d := day.Date()

	for i := len(rows) - 1; i >= 0; i-- {
		ry, rm, rd := rows[i].Time.Date()
		if ry == y && rm == m && rd == d {
			return rows[i], true
		}
	}

	return types.SignalRow{}, false
}

// ScanProgress is called after each instrument of a scan.
type ScanProgress func(done, total int, decision Decision)

// Scan checks every stored instrument. A failing instrument is recorded on its
// Decision and does not stop the scan; a cancelled context does.
func (s *Service) Scan(ctx context.Context, today time.Time, progress ScanProgress) ([]Decision, error) {
	instruments, err := s.store.ListInstruments(ctx)
	if err != nil {
		return nil, err
	}

	decisions := make([]Decision, 0, len(instruments))

	for i, instrument := range instruments {
		if err := ctx.Err(); err != nil {
			return decisions, errors.Wrap(errors.ErrCodeUnknown, "scan cancelled", err)
		}

		key := store.InstrumentKey{ID: instrument.ID}

		decision, err := s.Check(ctx, key, today)
		if err != nil {
			s.log.Warn("Instrument check failed", zap.String("symbol", instrument.ID), zap.Error(err))

			decision = Decision{Key: key, Symbol: instrument.ID, Name: instrument.Name, Today: today, Err: err}
		}

		decisions = append(decisions, decision)

		if progress != nil {
			progress(i+1, len(instruments), decision)
		}
	}

	return decisions, nil
}

// Buys returns the decisions that are buys.
func Buys(decisions []Decision) []Decision {
	var buys []Decision

	for _, d := range decisions {
		if d.Buy {
			buys = append(buys, d)
		}
	}

	return buys
}

func (s *Service) observeFailure() {
	if s.metrics != nil {
		s.metrics.ObserveFailure()
	}
}
