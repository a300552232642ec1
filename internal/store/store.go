// Package store persists daily observations in a single flat DuckDB table
// keyed by instrument and date.
package store

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// InstrumentKey selects one instrument, by code or by display name.
type InstrumentKey struct {
	ID   string
	Name string
}

// ParseInstrumentKey treats an all-digit key as an instrument code and anything
// else as a display name.
func ParseInstrumentKey(raw string) (InstrumentKey, error) {
	key := strings.TrimSpace(raw)
	if key == "" {
		return InstrumentKey{}, errors.New(errors.ErrCodeInvalidInstrumentKey, "instrument key is empty")
	}

	if isDigits(key) {
		return InstrumentKey{ID: key}, nil
	}

	return InstrumentKey{Name: key}, nil
}

// ByCode reports whether the key selects by instrument code.
func (k InstrumentKey) ByCode() bool {
	return k.ID != ""
}

// String implements fmt.Stringer.
func (k InstrumentKey) String() string {
	if k.ByCode() {
		return k.ID
	}

	return k.Name
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}

// Instrument summarises the stored observations of one instrument.
type Instrument struct {
	ID    string    `json:"instrument_id"`
	Name  string    `json:"instrument_name"`
	Count int       `json:"count"`
	First time.Time `json:"first"`
	Last  time.Time `json:"last"`
}

// WriteResult counts the rows of an import or write.
type WriteResult struct {
	// Inserted is the number of new rows.
	Inserted int
	// Skipped is the number of rows already stored, or repeated in the input.
	Skipped int
}

// ObservationStore persists observations. Rows are unique on (instrument, date);
// writing an existing key leaves the stored row unchanged.
type ObservationStore interface {
	// Import loads a CSV or Parquet file, chosen by extension.
	Import(ctx context.Context, path string) (WriteResult, error)
	// Write stores observations.
	Write(ctx context.Context, observations []types.Observation) (WriteResult, error)
	// Load returns one instrument's series ordered by date.
	Load(ctx context.Context, key InstrumentKey) ([]types.Observation, error)
	// ListInstruments returns every stored instrument ordered by code.
	ListInstruments(ctx context.Context) ([]Instrument, error)
	// Count returns the number of stored rows.
	Count(ctx context.Context) (int, error)
	// Truncate deletes every row and returns how many were deleted.
	Truncate(ctx context.Context) (int, error)
	// Close releases the database.
	Close() error
}
