// Package metrics records pipeline activity in a Prometheus registry that the
// CLI writes out as a node-exporter textfile.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rxtech-lab/argo-signal/internal/engine"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

const namespace = "argo_signal"

// Run outcomes used as the "result" label.
const (
	ResultOK           = "ok"
	ResultInsufficient = "insufficient_history"
	ResultError        = "error"
)

// Metrics holds the collectors of one process.
type Metrics struct {
	registry *prometheus.Registry

	runsTotal         *prometheus.CounterVec
	rowsTotal         prometheus.Counter
	buySignalsTotal   *prometheus.CounterVec
	conditionsTotal   *prometheus.CounterVec
	lastConditionCount *prometheus.GaugeVec
	runDuration       prometheus.Histogram
}

// New creates the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total number of pipeline runs by outcome",
			},
			[]string{"result"},
		),
		rowsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rows_total",
				Help:      "Total number of signal rows computed",
			},
		),
		buySignalsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "buy_signals_total",
				Help:      "Total number of BUY rows by instrument",
			},
			[]string{"instrument"},
		),
		conditionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "conditions_satisfied_total",
				Help:      "Total number of rows on which each condition held",
			},
			[]string{"condition"},
		),
		lastConditionCount: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "latest_condition_count",
				Help:      "Condition count of the latest row by instrument",
			},
			[]string{"instrument"},
		),
		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Distribution of pipeline run durations",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
		),
	}

	m.registry.MustRegister(
		m.runsTotal,
		m.rowsTotal,
		m.buySignalsTotal,
		m.conditionsTotal,
		m.lastConditionCount,
		m.runDuration,
	)

	return m
}

// Registry returns the registry holding every collector.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRun records a completed run for instrument.
func (m *Metrics) ObserveRun(instrument string, result engine.Result, elapsed time.Duration) {
	outcome := ResultOK
	if !result.Sufficient() {
		outcome = ResultInsufficient
	}

	m.runsTotal.WithLabelValues(outcome).Inc()
	m.rowsTotal.Add(float64(len(result.Rows)))
	m.runDuration.Observe(elapsed.Seconds())

	buys := m.buySignalsTotal.WithLabelValues(instrument)

	for _, row := range result.Rows {
		if row.IsBuy() {
			buys.Inc()
		}

		for _, c := range row.Conditions {
			if c.Satisfied {
				m.conditionsTotal.WithLabelValues(string(c.Name)).Inc()
			}
		}
	}

	if latest, ok := result.Latest(); ok {
		m.lastConditionCount.WithLabelValues(instrument).Set(float64(latest.ConditionCount))
	}
}

// ObserveFailure records a run that returned an error.
func (m *Metrics) ObserveFailure() {
	m.runsTotal.WithLabelValues(ResultError).Inc()
}

// WriteTextfile writes every metric to path in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to write metrics to %s", path)
	}

	return nil
}
