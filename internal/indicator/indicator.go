package indicator

import (
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// Indicator interface defines methods that any technical indicator must implement.
//
// Indicators are evaluated row by row, left to right. Update may read any column
// of rows before i and the columns of rows[i] filled by indicators that run
// earlier in the pipeline; it must only write its own columns of rows[i].
type Indicator interface {
	// Name returns the name of the indicator
	Name() types.IndicatorType
	// Config configures the indicator parameters
	Config(params ...any) error
	// Lookback returns the number of trailing rows, current row included, Update reads
	Lookback() int
	// Update fills the indicator columns of rows[i]
	Update(rows []types.IndicatorRow, i int) error
}
