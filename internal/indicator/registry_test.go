package indicator

import (
	"sync"
	"testing"

	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/stretchr/testify/suite"
)

// mockIndicator is a simple mock indicator for testing the registry
type mockIndicator struct {
	name     types.IndicatorType
	lookback int
	fail     error
}

func newMockIndicator(name types.IndicatorType) *mockIndicator {
	return &mockIndicator{name: name, lookback: 1}
}

func (m *mockIndicator) Name() types.IndicatorType {
	return m.name
}

func (m *mockIndicator) Config(params ...any) error {
	return nil
}

func (m *mockIndicator) Lookback() int {
	return m.lookback
}

func (m *mockIndicator) Update(rows []types.IndicatorRow, i int) error {
	return m.fail
}

type RegistryTestSuite struct {
	suite.Suite
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (suite *RegistryTestSuite) TestNewIndicatorRegistry() {
	registry := NewIndicatorRegistry()
	suite.NotNil(registry)
	suite.Empty(registry.ListIndicators())
}

func (suite *RegistryTestSuite) TestRegisterIndicator() {
	registry := NewIndicatorRegistry()

	indicator := newMockIndicator(types.IndicatorTypeRSI)
	err := registry.RegisterIndicator(indicator)
	suite.NoError(err)

	// Verify the indicator is registered
	retrieved, err := registry.GetIndicator(types.IndicatorTypeRSI)
	suite.NoError(err)
	suite.Equal(indicator, retrieved)
}

func (suite *RegistryTestSuite) TestRegisterIndicatorDuplicate() {
	registry := NewIndicatorRegistry()

	err := registry.RegisterIndicator(newMockIndicator(types.IndicatorTypeRSI))
	suite.NoError(err)

	// Trying to register another indicator with the same name should fail
	err = registry.RegisterIndicator(newMockIndicator(types.IndicatorTypeRSI))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorAlreadyExists))
	suite.Contains(err.Error(), "already registered")
}

func (suite *RegistryTestSuite) TestGetIndicatorNotFound() {
	registry := NewIndicatorRegistry()

	_, err := registry.GetIndicator(types.IndicatorTypeRSI)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))
}

func (suite *RegistryTestSuite) TestListIndicators() {
	registry := NewIndicatorRegistry()

	suite.NoError(registry.RegisterIndicator(newMockIndicator(types.IndicatorTypeRSI)))
	suite.NoError(registry.RegisterIndicator(newMockIndicator(types.IndicatorTypeMA)))
	suite.NoError(registry.RegisterIndicator(newMockIndicator(types.IndicatorTypeMACD)))

	suite.Equal([]types.IndicatorType{
		types.IndicatorTypeMA,
		types.IndicatorTypeMACD,
		types.IndicatorTypeRSI,
	}, registry.ListIndicators())
}

func (suite *RegistryTestSuite) TestConcurrentAccess() {
	registry := NewIndicatorRegistry()
	suite.NoError(registry.RegisterIndicator(newMockIndicator(types.IndicatorTypeMA)))

	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := registry.GetIndicator(types.IndicatorTypeMA)
			suite.NoError(err)
			_ = registry.ListIndicators()
		}()
	}

	wg.Wait()
}
