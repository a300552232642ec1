package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rxtech-lab/argo-signal/internal/engine"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type MetricsTestSuite struct {
	suite.Suite
	metrics *Metrics
}

func TestMetricsSuite(t *testing.T) {
	suite.Run(t, new(MetricsTestSuite))
}

func (suite *MetricsTestSuite) SetupTest() {
	suite.metrics = New()
}

func result(signals ...types.SignalType) engine.Result {
	rows := make([]types.SignalRow, len(signals))
	for i, s := range signals {
		rows[i] = types.SignalRow{
			Signal:         s,
			ConditionCount: i,
			Conditions: []types.ConditionResult{
				{Name: types.ConditionPriceBelowMA, Satisfied: s == types.SignalTypeBuy},
				{Name: types.ConditionTurnoverInRange, Satisfied: true},
			},
		}
	}

	return engine.Result{Rows: rows}
}

func (suite *MetricsTestSuite) TestObserveRun() {
	suite.metrics.ObserveRun("000001", result(types.SignalTypeAvoid, types.SignalTypeBuy, types.SignalTypeBuy), time.Millisecond)

	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.runsTotal.WithLabelValues(ResultOK)))
	suite.Equal(3.0, testutil.ToFloat64(suite.metrics.rowsTotal))
	suite.Equal(2.0, testutil.ToFloat64(suite.metrics.buySignalsTotal.WithLabelValues("000001")))
	suite.Equal(2.0, testutil.ToFloat64(suite.metrics.conditionsTotal.WithLabelValues(string(types.ConditionPriceBelowMA))))
	suite.Equal(3.0, testutil.ToFloat64(suite.metrics.conditionsTotal.WithLabelValues(string(types.ConditionTurnoverInRange))))
	suite.Equal(2.0, testutil.ToFloat64(suite.metrics.lastConditionCount.WithLabelValues("000001")))
}

func (suite *MetricsTestSuite) TestObserveInsufficientHistory() {
	r := result(types.SignalTypeAvoid)
	r.Warning = errors.NewInsufficientHistoryWarning(30, 1, "000001", "short")

	suite.metrics.ObserveRun("000001", r, time.Millisecond)
	suite.metrics.ObserveFailure()

	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.runsTotal.WithLabelValues(ResultInsufficient)))
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.runsTotal.WithLabelValues(ResultError)))
	suite.Equal(0.0, testutil.ToFloat64(suite.metrics.runsTotal.WithLabelValues(ResultOK)))
}

func (suite *MetricsTestSuite) TestWriteTextfile() {
	suite.metrics.ObserveRun("000001", result(types.SignalTypeBuy), time.Millisecond)

	path := filepath.Join(suite.T().TempDir(), "argo_signal.prom")
	suite.Require().NoError(suite.metrics.WriteTextfile(path))

	content, err := os.ReadFile(path)
	suite.Require().NoError(err)
	suite.Contains(string(content), `argo_signal_buy_signals_total{instrument="000001"} 1`)
	suite.Contains(string(content), "argo_signal_run_duration_seconds_bucket")
}

func (suite *MetricsTestSuite) TestWriteTextfileFailure() {
	err := suite.metrics.WriteTextfile(filepath.Join(suite.T().TempDir(), "missing", "dir", "metrics.prom"))
	suite.True(errors.HasCode(err, errors.ErrCodeReportWriteFailed))
}
