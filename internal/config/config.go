// Package config holds the tunable parameters of the indicator and signal engine.
//
// Every window length and threshold has a default equal to the values the engine
// was calibrated with; a YAML file only needs to name the fields it changes.
package config

import (
	"os"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-signal/internal/version"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"gopkg.in/yaml.v3"
)

// IndicatorConfig configures the indicator calculator.
type IndicatorConfig struct {
	MAPeriod         int     `yaml:"ma_period" json:"ma_period" default:"10" jsonschema:"title=MA Period,description=Trailing rows of the close-price moving average,default=10" validate:"gt=0"`
	VolatilityPeriod int     `yaml:"volatility_period" json:"volatility_period" default:"20" jsonschema:"title=Volatility Period,description=Trailing rows of the close-price sample standard deviation,default=20" validate:"gt=1"`
	BandMultiplier   float64 `yaml:"band_multiplier" json:"band_multiplier" default:"2" jsonschema:"title=Band Multiplier,description=Standard deviations between the moving average and each band,default=2" validate:"gt=0"`
	FastSpan         int     `yaml:"fast_span" json:"fast_span" default:"12" jsonschema:"title=Fast EMA Span,default=12" validate:"gt=0"`
	SlowSpan         int     `yaml:"slow_span" json:"slow_span" default:"26" jsonschema:"title=Slow EMA Span,default=26" validate:"gt=0,gtfield=FastSpan"`
	SignalSpan       int     `yaml:"signal_span" json:"signal_span" default:"9" jsonschema:"title=MACD Signal Span,default=9" validate:"gt=0"`
	RSIPeriod        int     `yaml:"rsi_period" json:"rsi_period" default:"14" jsonschema:"title=RSI Period,description=Trailing price changes averaged for gains and losses,default=14" validate:"gt=0"`
	RSIEpsilon       float64 `yaml:"rsi_epsilon" json:"rsi_epsilon" default:"0.000001" jsonschema:"title=RSI Epsilon,description=Added to the average loss before dividing,default=0.000001" validate:"gt=0"`
	TurnoverPeriod   int     `yaml:"turnover_period" json:"turnover_period" default:"5" jsonschema:"title=Turnover Period,description=Trailing rows of the turnover average,default=5" validate:"gt=0"`
}

// ClassifierConfig configures the buy-condition thresholds. These are tunable
// parameters, not derived constants.
type ClassifierConfig struct {
	BandContractionPeriod    int     `yaml:"band_contraction_period" json:"band_contraction_period" default:"5" jsonschema:"title=Band Contraction Period,description=Trailing rows of the upper-band standard deviation,default=5" validate:"gt=1"`
	BandContractionThreshold float64 `yaml:"band_contraction_threshold" json:"band_contraction_threshold" default:"0.3" jsonschema:"title=Band Contraction Threshold,default=0.3" validate:"gt=0"`
	RSIOversold              float64 `yaml:"rsi_oversold" json:"rsi_oversold" default:"30" jsonschema:"title=RSI Oversold Level,default=30" validate:"gt=0,lt=100"`
	TurnoverRateMin          float64 `yaml:"turnover_rate_min" json:"turnover_rate_min" default:"0.5" jsonschema:"title=Minimum Turnover Rate,description=Exclusive lower bound in percent,default=0.5" validate:"gte=0"`
	TurnoverRateMax          float64 `yaml:"turnover_rate_max" json:"turnover_rate_max" default:"5" jsonschema:"title=Maximum Turnover Rate,description=Exclusive upper bound in percent,default=5" validate:"gtfield=TurnoverRateMin"`
}

// Config is the root configuration document.
type Config struct {
	// Version is the engine version the file was written for.
	Version    string           `yaml:"version" json:"version" jsonschema:"title=Version,description=Engine version this config targets" validate:"required"`
	MinHistory int              `yaml:"min_history" json:"min_history" default:"30" jsonschema:"title=Minimum History,description=Rows required before a signal is trusted,default=30" validate:"gt=0"`
	LogLevel   string           `yaml:"log_level" json:"log_level" default:"info" jsonschema:"title=Log Level,enum=debug,enum=info,enum=warn,enum=error,default=info" validate:"oneof=debug info warn error"`
	Indicators IndicatorConfig  `yaml:"indicators" json:"indicators"`
	Classifier ClassifierConfig `yaml:"classifier" json:"classifier"`
}

// Default returns the configuration every component falls back to. Values
// come from the default struct tags.
func Default() Config {
	cfg := Config{Version: version.GetVersion()}

	// The tags are constant, so Set only fails on a programming error.
	if err := defaults.Set(&cfg); err != nil {
		panic(err)
	}

	return cfg
}

// Validate validates the Config struct and its version.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	return version.CheckConfigCompatibility(version.GetVersion(), c.Version)
}

// Parse overlays the YAML document on Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Load reads and parses the config file at path. An empty path yields Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeConfigReadFailed, err, "failed to read config %s", path)
	}

	return Parse(data)
}
