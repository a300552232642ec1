package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-signal/internal/types"
)

// DataGenerator generates realistic daily observations for testing and benchmarking.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how observations are generated.
type GeneratorConfig struct {
	// Symbol is the instrument code (e.g., "000001")
	Symbol string
	// Name is the instrument display name
	Name string
	// StartTime is the first trading day
	StartTime time.Time
	// Count is the number of trading days to generate
	Count int
	// InitialPrice is the starting close price
	InitialPrice float64
	// Volatility controls price movement (0.02 = 2% typical daily move)
	Volatility float64
	// Trend is the total drift over the series (-0.5 to 0.5 for bearish to bullish)
	Trend float64
	// TurnoverBase is the average traded turnover per day
	TurnoverBase float64
	// TurnoverRateBase is the average turnover rate in percent
	TurnoverRateBase float64
	// TurnoverVariance is the relative variance of both turnover fields (0.0 to 1.0)
	TurnoverVariance float64
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Symbol:           "000001",
		Name:             "Test Instrument",
		StartTime:        time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Count:            250,
		InitialPrice:     10.0,
		Volatility:       0.02,
		Trend:            0.0,
		TurnoverBase:     5e7,
		TurnoverRateBase: 1.5,
		TurnoverVariance: 0.5,
	}
}

// GenerateSeries creates a strictly increasing daily series of observations.
// Close prices follow a geometric Brownian motion; weekends are skipped.
func (g *DataGenerator) GenerateSeries(config GeneratorConfig) []types.Observation {
	data := make([]types.Observation, config.Count)
	currentPrice := config.InitialPrice
	currentTime := config.StartTime

	for i := 0; i < config.Count; i++ {
		// Box-Muller transform for a normal sample
		u1 := 1 - g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		drift := config.Trend / float64(config.Count)

		closePrice := currentPrice * (1 + config.Volatility*z + drift)
		if closePrice <= 0 {
			closePrice = currentPrice * 0.99 // Prevent negative prices
		}

		data[i] = types.Observation{
			Time:         currentTime,
			Symbol:       config.Symbol,
			Name:         config.Name,
			ClosePrice:   roundToDecimals(closePrice, 2),
			Turnover:     roundToDecimals(g.vary(config.TurnoverBase, config.TurnoverVariance), 2),
			TurnoverRate: roundToDecimals(g.vary(config.TurnoverRateBase, config.TurnoverVariance), 4),
		}

		currentPrice = closePrice
		currentTime = nextTradingDay(currentTime)
	}

	return data
}

// GenerateInstruments generates one series per symbol.
func (g *DataGenerator) GenerateInstruments(symbols []string, baseConfig GeneratorConfig) map[string][]types.Observation {
	all := make(map[string][]types.Observation, len(symbols))

	for _, symbol := range symbols {
		config := baseConfig
		config.Symbol = symbol
		config.Name = "Instrument " + symbol
		// Vary initial price and volatility slightly per symbol
		config.InitialPrice = baseConfig.InitialPrice * (0.8 + g.rng.Float64()*0.4)
		config.Volatility = baseConfig.Volatility * (0.8 + g.rng.Float64()*0.4)

		all[symbol] = g.GenerateSeries(config)
	}

	return all
}

// GenerateYear is a convenience function to generate one year of trading days
// with default settings.
func GenerateYear(symbol string) []types.Observation {
	gen := NewDataGenerator(42) // Fixed seed for reproducibility
	config := DefaultConfig()
	config.Symbol = symbol

	return gen.GenerateSeries(config)
}

func (g *DataGenerator) vary(base, variance float64) float64 {
	v := base * (1.0 + (g.rng.Float64()*2-1)*variance)
	if v < 0 {
		v = base * 0.1
	}

	return v
}

func nextTradingDay(t time.Time) time.Time {
	next := t.AddDate(0, 0, 1)
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}

	return next
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))

	return math.Round(val*pow) / pow
}
