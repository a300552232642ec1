// Package classifier scores indicator rows against a fixed list of buy
// conditions and turns the score into a BUY or AVOID signal.
package classifier

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/config"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// BuyThreshold is the number of satisfied conditions at which a row becomes BUY.
const BuyThreshold = 4

// Classifier evaluates an ordered list of conditions.
type Classifier struct {
	conditions []Condition
	lookback   int
}

// New creates a classifier with the default conditions configured by cfg.
func New(cfg config.ClassifierConfig) *Classifier {
	return NewWithConditions(DefaultConditions(cfg))
}

// NewWithConditions creates a classifier over a custom condition list.
func NewWithConditions(conditions []Condition) *Classifier {
	lookback := 1
	for _, c := range conditions {
		lookback = max(lookback, c.Lookback)
	}

	return &Classifier{
		conditions: conditions,
		lookback:   lookback,
	}
}

// Conditions returns the condition list in evaluation order.
func (c *Classifier) Conditions() []Condition {
	return c.conditions
}

// Lookback returns the trailing rows, current row included, any condition reads.
func (c *Classifier) Lookback() int {
	return c.lookback
}

// Evaluate scores rows[i]. The returned row's Position is None; it depends on
// the previous verdict, which the caller owns.
func (c *Classifier) Evaluate(rows []types.IndicatorRow, i int) types.SignalRow {
	results := make([]types.ConditionResult, len(c.conditions))
	count := 0

	for k, cond := range c.conditions {
		satisfied := cond.Eval(rows, i)
		if satisfied {
			count++
		}

		results[k] = types.ConditionResult{Name: cond.Name, Satisfied: satisfied}
	}

	signal := types.SignalTypeAvoid
	if count >= BuyThreshold {
		signal = types.SignalTypeBuy
	}

	return types.SignalRow{
		IndicatorRow:   rows[i],
		Conditions:     results,
		ConditionCount: count,
		Signal:         signal,
		Position:       optional.None[types.SignalType](),
	}
}

// Classify scores every row and sets Position to the previous row's signal.
func (c *Classifier) Classify(rows []types.IndicatorRow) ([]types.SignalRow, error) {
	if len(rows) == 0 {
		return nil, errors.NewInvalidInputError("no indicator rows to classify")
	}

	signals := make([]types.SignalRow, len(rows))
	for i := range rows {
		signals[i] = c.Evaluate(rows, i)
		if i > 0 {
			signals[i].Position = optional.Some(signals[i-1].Signal)
		}
	}

	return signals, nil
}
