package report

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// DuckDBSignalWriter buffers rows in an in-memory DuckDB table and exports
// them as one Parquet file.
type DuckDBSignalWriter struct {
	db         *sql.DB
	tx         *sql.Tx
	stmt       *sql.Stmt
	conditions []types.ConditionName
	outputPath string
}

// NewDuckDBSignalWriter creates a writer exporting to outputPath.
func NewDuckDBSignalWriter(outputPath string) SignalWriter {
	return &DuckDBSignalWriter{
		outputPath: outputPath,
	}
}

func signalColumns(conditions []types.ConditionName) []string {
	cols := []string{"id", "time", "instrument_id", "instrument_name", "close_price", "turnover", "turnover_rate"}
	cols = append(cols, indicatorColumns...)

	for _, name := range conditions {
		cols = append(cols, string(name))
	}

	return append(cols, "condition_count", "signal", "position")
}

// Initialize opens the in-memory database. The signals table is created on
// the first Write, once the condition columns are known.
func (w *DuckDBSignalWriter) Initialize() (err error) {
	w.db, err = sql.Open("duckdb", "")
	if err != nil {
		return errors.Wrap(errors.ErrCodeReportInitFailed, "failed to open DuckDB connection", err)
	}

	return nil
}

// prepare creates the signals table with one BOOLEAN column per condition and
// prepares the insert statement.
func (w *DuckDBSignalWriter) prepare(conditions []types.ConditionName) (err error) {
	definitions := []string{
		"id TEXT",
		"time DATE",
		"instrument_id TEXT",
		"instrument_name TEXT",
		"close_price DOUBLE",
		"turnover DOUBLE",
		"turnover_rate DOUBLE",
	}
	for _, col := range indicatorColumns {
		definitions = append(definitions, col+" DOUBLE")
	}

	for _, name := range conditions {
		definitions = append(definitions, fmt.Sprintf("%q BOOLEAN", string(name)))
	}

	definitions = append(definitions, "condition_count INTEGER", "signal INTEGER", "position INTEGER")

	_, err = w.db.Exec(fmt.Sprintf("CREATE TABLE signals (%s)", strings.Join(definitions, ", ")))
	if err != nil {
		return errors.Wrap(errors.ErrCodeReportInitFailed, "failed to create table", err)
	}

	w.tx, err = w.db.Begin()
	if err != nil {
		return errors.Wrap(errors.ErrCodeReportInitFailed, "failed to begin transaction", err)
	}

	cols := signalColumns(conditions)
	for i, col := range cols {
		cols[i] = fmt.Sprintf("%q", col)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")

	w.stmt, err = w.tx.Prepare(fmt.Sprintf("INSERT INTO signals (%s) VALUES (%s)", strings.Join(cols, ", "), placeholders))
	if err != nil {
		w.tx.Rollback()
		w.tx = nil

		return errors.Wrap(errors.ErrCodeReportInitFailed, "failed to prepare statement", err)
	}

	w.conditions = conditions

	return nil
}

// Write implements SignalWriter.
func (w *DuckDBSignalWriter) Write(row types.SignalRow) error {
	if w.db == nil {
		return errors.New(errors.ErrCodeReportNotReady, "writer not initialized")
	}

	if w.stmt == nil {
		if err := w.prepare(conditionNames(row)); err != nil {
			return err
		}
	}

	args := []any{
		uuid.New().String(),
		row.Time,
		row.Symbol,
		row.Name,
		row.ClosePrice,
		row.Turnover,
		row.TurnoverRate,
	}

	for _, v := range indicatorValues(row) {
		args = append(args, nullable(v))
	}

	for _, name := range w.conditions {
		args = append(args, row.Satisfied(name))
	}

	var position any
	if row.Position.IsSome() {
		position = int(row.Position.Unwrap())
	}

	args = append(args, row.ConditionCount, int(row.Signal), position)

	if _, err := w.stmt.Exec(args...); err != nil {
		return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to insert signal row", err)
	}

	return nil
}

// Finalize commits the transaction and exports the rows to a Parquet file.
func (w *DuckDBSignalWriter) Finalize() (string, error) {
	if w.db == nil {
		return "", errors.New(errors.ErrCodeReportNotReady, "writer not initialized")
	}

	// No rows were written; export an empty table without condition columns
	if w.tx == nil {
		if err := w.prepare(nil); err != nil {
			return "", err
		}
	}

	if err := w.tx.Commit(); err != nil {
		w.tx.Rollback()

		return "", errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to commit transaction", err)
	}

	w.tx = nil

	path := strings.ReplaceAll(w.outputPath, "'", "''")
	if _, err := w.db.Exec(fmt.Sprintf(`COPY (SELECT * FROM signals ORDER BY instrument_id, time) TO '%s' (FORMAT PARQUET)`, path)); err != nil {
		return "", errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to export to Parquet", err)
	}

	return w.outputPath, nil
}

// Close releases the statement, any open transaction and the database.
func (w *DuckDBSignalWriter) Close() error {
	var closeErr error

	if w.stmt != nil {
		if err := w.stmt.Close(); err != nil {
			closeErr = errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to close statement", err)
		}

		w.stmt = nil
	}

	if w.tx != nil {
		w.tx.Rollback()
		w.tx = nil
	}

	if w.db != nil {
		if err := w.db.Close(); err != nil && closeErr == nil {
			closeErr = errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to close db connection", err)
		}

		w.db = nil
	}

	return closeErr
}

// GetOutputPath implements SignalWriter.
func (w *DuckDBSignalWriter) GetOutputPath() string {
	return w.outputPath
}
