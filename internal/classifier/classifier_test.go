package classifier

import (
	"testing"

	"github.com/rxtech-lab/argo-signal/internal/config"
	"github.com/rxtech-lab/argo-signal/internal/indicator"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/mocks"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ClassifierTestSuite struct {
	suite.Suite
	classifier *Classifier
}

func TestClassifierSuite(t *testing.T) {
	suite.Run(t, new(ClassifierTestSuite))
}

func (suite *ClassifierTestSuite) SetupTest() {
	suite.classifier = New(config.Default().Classifier)
}

func (suite *ClassifierTestSuite) TestLookback() {
	suite.Equal(5, suite.classifier.Lookback())
	suite.Len(suite.classifier.Conditions(), 7)
}

func (suite *ClassifierTestSuite) TestEmptyInput() {
	signals, err := suite.classifier.Classify(nil)
	suite.Nil(signals)
	suite.True(errors.IsInvalidInputError(err))
}

func (suite *ClassifierTestSuite) TestBuyAtThreshold() {
	rows := buyRows()

	signals, err := suite.classifier.Classify(rows)
	suite.Require().NoError(err)

	row := signals[1]
	suite.Equal(4, row.ConditionCount)
	suite.Equal(types.SignalTypeBuy, row.Signal)
	suite.True(row.IsBuy())
	suite.True(row.Satisfied(types.ConditionPriceBelowMA))
	suite.True(row.Satisfied(types.ConditionPriceBelowLowerBand))
	suite.True(row.Satisfied(types.ConditionMACDHistRising))
	suite.True(row.Satisfied(types.ConditionTurnoverInRange))
	suite.False(row.Satisfied(types.ConditionRSIRebound))
}

func (suite *ClassifierTestSuite) TestAvoidBelowThreshold() {
	rows := buyRows()
	rows[1].TurnoverRate = 10

	signals, err := suite.classifier.Classify(rows)
	suite.Require().NoError(err)

	suite.Equal(3, signals[1].ConditionCount)
	suite.Equal(types.SignalTypeAvoid, signals[1].Signal)
}

func (suite *ClassifierTestSuite) TestPositionLagsSignal() {
	rows := append(buyRows(), blankRows(1)...)
	rows[2].Time = baseDate.AddDate(0, 0, 2)

	signals, err := suite.classifier.Classify(rows)
	suite.Require().NoError(err)

	suite.True(signals[0].Position.IsNone())
	suite.Equal(types.SignalTypeAvoid, signals[1].Position.Unwrap())
	suite.Equal(types.SignalTypeBuy, signals[2].Position.Unwrap())
	suite.Equal(types.SignalTypeAvoid, signals[2].Signal)
}

func (suite *ClassifierTestSuite) TestEvaluateLeavesPositionUndefined() {
	row := suite.classifier.Evaluate(buyRows(), 1)
	suite.True(row.Position.IsNone())
	suite.Equal(types.SignalTypeBuy, row.Signal)
}

func (suite *ClassifierTestSuite) TestCustomConditions() {
	always := Condition{
		Name:     "always",
		Lookback: 3,
		Eval:     func(rows []types.IndicatorRow, i int) bool { return true },
	}

	c := NewWithConditions([]Condition{always, always, always})
	suite.Equal(3, c.Lookback())

	signals, err := c.Classify(blankRows(2))
	suite.Require().NoError(err)
	suite.Equal(3, signals[0].ConditionCount)
	suite.Equal(types.SignalTypeAvoid, signals[0].Signal)
}

// Properties over a generated random walk.
func (suite *ClassifierTestSuite) TestGeneratedSeriesProperties() {
	cfg := mocks.DefaultConfig()
	cfg.Count = 300
	cfg.Volatility = 0.04

	calculator, err := indicator.NewCalculator(config.Default().Indicators)
	suite.Require().NoError(err)

	rows, err := calculator.Compute(mocks.NewDataGenerator(99).GenerateSeries(cfg))
	suite.Require().NoError(err)

	signals, err := suite.classifier.Classify(rows)
	suite.Require().NoError(err)
	suite.Require().Len(signals, len(rows))

	for i, row := range signals {
		suite.GreaterOrEqual(row.ConditionCount, 0)
		suite.LessOrEqual(row.ConditionCount, 7)
		suite.Len(row.Conditions, 7)

		satisfied := 0
		for _, c := range row.Conditions {
			if c.Satisfied {
				satisfied++
			}
		}

		suite.Equal(satisfied, row.ConditionCount, "row %d", i)
		suite.Equal(row.ConditionCount >= BuyThreshold, row.Signal == types.SignalTypeBuy, "row %d", i)

		if i == 0 {
			suite.True(row.Position.IsNone())
		} else {
			suite.Equal(signals[i-1].Signal, row.Position.Unwrap(), "row %d", i)
		}
	}
}
