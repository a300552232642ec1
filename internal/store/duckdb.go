package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"go.uber.org/zap"
)

const (
	tableName = "observations"
	// writeBatchSize bounds the placeholders of a single INSERT.
	writeBatchSize = 500
)

var columns = []string{"id", "time", "instrument_id", "instrument_name", "close_price", "turnover", "turnover_rate"}

// fileColumns are the columns an import file must carry, in order.
var fileColumns = []string{"time", "instrument_id", "instrument_name", "close_price", "turnover", "turnover_rate"}

// DuckDBStore is an ObservationStore backed by DuckDB.
type DuckDBStore struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDuckDBStore opens the database at path, creating the table if needed.
// Use ":memory:" for a private in-memory database.
func NewDuckDBStore(path string, log *logger.Logger) (*DuckDBStore, error) {
	if path == ":memory:" {
		path = ""
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open DuckDB", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS observations (
			id VARCHAR NOT NULL,
			time DATE NOT NULL,
			instrument_id VARCHAR NOT NULL,
			instrument_name VARCHAR,
			close_price DOUBLE NOT NULL,
			turnover DOUBLE,
			turnover_rate DOUBLE,
			PRIMARY KEY (instrument_id, time)
		)
	`)
	if err != nil {
		db.Close()

		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to create observations table", err)
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &DuckDBStore{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// DB returns the underlying database handle.
func (s *DuckDBStore) DB() *sql.DB {
	return s.db
}

// Import implements ObservationStore.
func (s *DuckDBStore) Import(ctx context.Context, path string) (WriteResult, error) {
	source, err := fileSource(path)
	if err != nil {
		return WriteResult{}, err
	}

	s.logger.Debug("Importing observations", zap.String("path", path))

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+source).Scan(&total); err != nil {
		return WriteResult{}, errors.Wrapf(errors.ErrCodeImportFailed, err, "failed to read %s", path)
	}

	selectSource := s.sq.
		Select(
			"CAST(gen_random_uuid() AS VARCHAR)",
			"CAST(time AS DATE)",
			"CAST(instrument_id AS VARCHAR)",
			"CAST(instrument_name AS VARCHAR)",
			"CAST(close_price AS DOUBLE)",
			"CAST(turnover AS DOUBLE)",
			"CAST(turnover_rate AS DOUBLE)",
		).
		Options("DISTINCT ON (instrument_id, time)").
		From(source)

	query, args, err := s.sq.
		Insert(tableName).
		Options("OR IGNORE").
		Columns(columns...).
		Select(selectSource).
		ToSql()
	if err != nil {
		return WriteResult{}, errors.Wrap(errors.ErrCodeImportFailed, "failed to build import query", err)
	}

	inserted, err := s.countInserted(ctx, func() error {
		_, err := s.db.ExecContext(ctx, query, args...)

		return err
	})
	if err != nil {
		return WriteResult{}, errors.Wrapf(errors.ErrCodeImportFailed, err, "failed to import %s", path)
	}

	result := WriteResult{Inserted: inserted, Skipped: total - inserted}

	s.logger.Debug("Imported observations",
		zap.String("path", path),
		zap.Int("inserted", result.Inserted),
		zap.Int("skipped", result.Skipped),
	)

	return result, nil
}

// fileSource returns the table function reading path.
func fileSource(path string) (string, error) {
	quoted := strings.ReplaceAll(path, "'", "''")

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		// explicit types keep leading zeros of instrument codes
		return fmt.Sprintf(`read_csv('%s', header = true, columns = {
			'time': 'DATE',
			'instrument_id': 'VARCHAR',
			'instrument_name': 'VARCHAR',
			'close_price': 'DOUBLE',
			'turnover': 'DOUBLE',
			'turnover_rate': 'DOUBLE'
		})`, quoted), nil
	case ".parquet":
		return fmt.Sprintf("read_parquet('%s')", quoted), nil
	default:
		return "", errors.Newf(errors.ErrCodeUnsupportedFormat, "unsupported file format %q, expected .csv or .parquet", filepath.Ext(path))
	}
}

// Write implements ObservationStore.
func (s *DuckDBStore) Write(ctx context.Context, observations []types.Observation) (WriteResult, error) {
	if len(observations) == 0 {
		return WriteResult{}, nil
	}

	unique := dedupe(observations)

	inserted, err := s.countInserted(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}

		for start := 0; start < len(unique); start += writeBatchSize {
			end := min(start+writeBatchSize, len(unique))

			insert := s.sq.Insert(tableName).Options("OR IGNORE").Columns(columns...)
			for _, obs := range unique[start:end] {
				insert = insert.Values(
					uuid.New().String(),
					obs.Time,
					obs.Symbol,
					obs.Name,
					obs.ClosePrice,
					obs.Turnover,
					obs.TurnoverRate,
				)
			}

			query, args, err := insert.ToSql()
			if err != nil {
				tx.Rollback()

				return err
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				tx.Rollback()

				return err
			}
		}

		return tx.Commit()
	})
	if err != nil {
		return WriteResult{}, errors.Wrap(errors.ErrCodeWriteFailed, "failed to write observations", err)
	}

	return WriteResult{Inserted: inserted, Skipped: len(observations) - inserted}, nil
}

// dedupe keeps the first observation of each (instrument, date).
func dedupe(observations []types.Observation) []types.Observation {
	type key struct {
		id   string
		date string
	}

	seen := make(map[key]struct{}, len(observations))
	unique := make([]types.Observation, 0, len(observations))

	for _, obs := range observations {
		k := key{id: obs.Symbol, date: obs.Time.Format("2006-01-02")}
		if _, ok := seen[k]; ok {
			continue
		}

		seen[k] = struct{}{}
		unique = append(unique, obs)
	}

	return unique
}

// countInserted runs fn and returns how many rows it added to the table.
func (s *DuckDBStore) countInserted(ctx context.Context, fn func() error) (int, error) {
	before, err := s.Count(ctx)
	if err != nil {
		return 0, err
	}

	if err := fn(); err != nil {
		return 0, err
	}

	after, err := s.Count(ctx)
	if err != nil {
		return 0, err
	}

	return after - before, nil
}

// Load implements ObservationStore.
func (s *DuckDBStore) Load(ctx context.Context, key InstrumentKey) ([]types.Observation, error) {
	query := s.sq.
		Select(fileColumns...).
		From(tableName).
		OrderBy("instrument_id ASC", "time ASC")

	if key.ByCode() {
		query = query.Where(squirrel.Eq{"instrument_id": key.ID})
	} else {
		query = query.Where(squirrel.Eq{"instrument_name": key.Name})
	}

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	s.logger.Debug("Loading observations", zap.String("key", key.String()), zap.String("query", sqlQuery))

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query observations", err)
	}
	defer rows.Close()

	var series []types.Observation

	for rows.Next() {
		var (
			obs  types.Observation
			name sql.NullString
			turn sql.NullFloat64
			rate sql.NullFloat64
		)

		if err := rows.Scan(&obs.Time, &obs.Symbol, &name, &obs.ClosePrice, &turn, &rate); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan observation", err)
		}

		obs.Time = obs.Time.UTC()
		obs.Name = name.String
		obs.Turnover = turn.Float64
		obs.TurnoverRate = rate.Float64
		series = append(series, obs)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to read observations", err)
	}

	if len(series) == 0 {
		return nil, errors.Newf(errors.ErrCodeInstrumentNotFound, "no observations for %s", key)
	}

	if series[0].Symbol != series[len(series)-1].Symbol {
		return nil, errors.Newf(errors.ErrCodeInvalidInstrumentKey, "name %q matches more than one instrument, use the instrument code", key.Name)
	}

	return series, nil
}

// ListInstruments implements ObservationStore.
func (s *DuckDBStore) ListInstruments(ctx context.Context) ([]Instrument, error) {
	query, args, err := s.sq.
		Select("instrument_id", "MAX(instrument_name)", "COUNT(*)", "MIN(time)", "MAX(time)").
		From(tableName).
		GroupBy("instrument_id").
		OrderBy("instrument_id ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to list instruments", err)
	}
	defer rows.Close()

	instruments := []Instrument{}

	for rows.Next() {
		var (
			instrument  Instrument
			name        sql.NullString
			first, last time.Time
		)

		if err := rows.Scan(&instrument.ID, &name, &instrument.Count, &first, &last); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan instrument", err)
		}

		instrument.Name = name.String
		instrument.First = first.UTC()
		instrument.Last = last.UTC()
		instruments = append(instruments, instrument)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to read instruments", err)
	}

	return instruments, nil
}

// Count implements ObservationStore.
func (s *DuckDBStore) Count(ctx context.Context) (int, error) {
	query, args, err := s.sq.Select("COUNT(*)").From(tableName).ToSql()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count observations", err)
	}

	return count, nil
}

// Truncate implements ObservationStore.
func (s *DuckDBStore) Truncate(ctx context.Context) (int, error) {
	count, err := s.Count(ctx)
	if err != nil {
		return 0, err
	}

	query, args, err := s.sq.Delete(tableName).ToSql()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return 0, errors.Wrap(errors.ErrCodeWriteFailed, "failed to truncate observations", err)
	}

	s.logger.Debug("Truncated observations", zap.Int("deleted", count))

	return count, nil
}

// Close implements ObservationStore.
func (s *DuckDBStore) Close() error {
	return s.db.Close()
}
