package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/argo-signal/internal/version"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) TestDefaultIsValid() {
	cfg := Default()
	suite.NoError(cfg.Validate())
	suite.Equal(10, cfg.Indicators.MAPeriod)
	suite.Equal(20, cfg.Indicators.VolatilityPeriod)
	suite.Equal(26, cfg.Indicators.SlowSpan)
	suite.Equal(1e-6, cfg.Indicators.RSIEpsilon)
	suite.Equal(0.3, cfg.Classifier.BandContractionThreshold)
	suite.Equal(0.5, cfg.Classifier.TurnoverRateMin)
	suite.Equal(5.0, cfg.Classifier.TurnoverRateMax)
	suite.Equal(30, cfg.MinHistory)
}

func (suite *ConfigTestSuite) TestParseOverlaysDefaults() {
	cfg, err := Parse([]byte(`
version: ` + version.GetVersion() + `
classifier:
  band_contraction_threshold: 0.5
indicators:
  ma_period: 5
`))
	suite.Require().NoError(err)
	suite.Equal(0.5, cfg.Classifier.BandContractionThreshold)
	suite.Equal(5, cfg.Indicators.MAPeriod)
	// untouched fields keep their defaults
	suite.Equal(30.0, cfg.Classifier.RSIOversold)
	suite.Equal(12, cfg.Indicators.FastSpan)
}

func (suite *ConfigTestSuite) TestParseRejectsInvalidValues() {
	testCases := []struct {
		name string
		yaml string
	}{
		{name: "zero ma period", yaml: "indicators:\n  ma_period: 0\n"},
		{name: "slow not above fast", yaml: "indicators:\n  fast_span: 26\n  slow_span: 12\n"},
		{name: "inverted turnover range", yaml: "classifier:\n  turnover_rate_min: 5\n  turnover_rate_max: 1\n"},
		{name: "bad log level", yaml: "log_level: loud\n"},
		{name: "rsi oversold out of range", yaml: "classifier:\n  rsi_oversold: 120\n"},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			_, err := Parse([]byte(tc.yaml))
			suite.Error(err)
			suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
		})
	}
}

func (suite *ConfigTestSuite) TestParseRejectsIncompatibleVersion() {
	_, err := Parse([]byte("version: 99.0.0\n"))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeVersionMismatch))
}

func (suite *ConfigTestSuite) TestParseMalformedYAML() {
	_, err := Parse([]byte("indicators: [unclosed"))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestLoad() {
	path := filepath.Join(suite.T().TempDir(), "config.yaml")
	suite.Require().NoError(os.WriteFile(path, []byte("min_history: 60\n"), 0o644))

	cfg, err := Load(path)
	suite.Require().NoError(err)
	suite.Equal(60, cfg.MinHistory)

	cfg, err = Load("")
	suite.NoError(err)
	suite.Equal(Default(), cfg)

	_, err = Load(filepath.Join(suite.T().TempDir(), "missing.yaml"))
	suite.True(errors.HasCode(err, errors.ErrCodeConfigReadFailed))
}
