package report

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type DuckDBSignalWriterTestSuite struct {
	suite.Suite
	dir string
}

func TestDuckDBSignalWriterSuite(t *testing.T) {
	suite.Run(t, new(DuckDBSignalWriterTestSuite))
}

func (suite *DuckDBSignalWriterTestSuite) SetupTest() {
	suite.dir = suite.T().TempDir()
}

func (suite *DuckDBSignalWriterTestSuite) TestWriteAndReadBack() {
	path := filepath.Join(suite.dir, "signals.parquet")

	out, err := WriteAll(NewDuckDBSignalWriter(path), sampleRows())
	suite.Require().NoError(err)
	suite.Equal(path, out)

	db, err := sql.Open("duckdb", "")
	suite.Require().NoError(err)
	defer db.Close()

	var (
		count      int
		buys       int
		nullMA     int
		firstPos   sql.NullInt64
		belowMA    bool
		instrument string
	)

	source := fmt.Sprintf("read_parquet('%s')", path)

	suite.Require().NoError(db.QueryRow("SELECT COUNT(*) FROM " + source).Scan(&count))
	suite.Equal(2, count)

	suite.Require().NoError(db.QueryRow("SELECT COUNT(*) FROM " + source + " WHERE signal = 1").Scan(&buys))
	suite.Equal(1, buys)

	suite.Require().NoError(db.QueryRow("SELECT COUNT(*) FROM " + source + " WHERE moving_average IS NULL").Scan(&nullMA))
	suite.Equal(1, nullMA)

	suite.Require().NoError(db.QueryRow("SELECT position, price_below_ma, instrument_id FROM " + source + " ORDER BY time LIMIT 1").
		Scan(&firstPos, &belowMA, &instrument))
	suite.False(firstPos.Valid)
	suite.False(belowMA)
	suite.Equal("000001", instrument)
}

func (suite *DuckDBSignalWriterTestSuite) TestConditionColumnsFollowRows() {
	path := filepath.Join(suite.dir, "custom.parquet")

	_, err := WriteAll(NewDuckDBSignalWriter(path), customRows())
	suite.Require().NoError(err)

	db, err := sql.Open("duckdb", "")
	suite.Require().NoError(err)
	defer db.Close()

	var defaultColumns, customColumns int

	schema := fmt.Sprintf("parquet_schema('%s')", path)
	suite.Require().NoError(db.QueryRow("SELECT COUNT(*) FROM " + schema + " WHERE name = 'price_below_ma'").Scan(&defaultColumns))
	suite.Equal(0, defaultColumns)
	suite.Require().NoError(db.QueryRow("SELECT COUNT(*) FROM " + schema + " WHERE name = 'close_above_ten'").Scan(&customColumns))
	suite.Equal(1, customColumns)

	var above int

	suite.Require().NoError(db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM read_parquet('%s') WHERE close_above_ten", path)).Scan(&above))
	suite.Equal(1, above)
}

func (suite *DuckDBSignalWriterTestSuite) TestEmptyExport() {
	path := filepath.Join(suite.dir, "empty.parquet")

	_, err := WriteAll(NewDuckDBSignalWriter(path), nil)
	suite.Require().NoError(err)

	db, err := sql.Open("duckdb", "")
	suite.Require().NoError(err)
	defer db.Close()

	var count int

	suite.Require().NoError(db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM read_parquet('%s')", path)).Scan(&count))
	suite.Equal(0, count)
}

func (suite *DuckDBSignalWriterTestSuite) TestWriteBeforeInitialize() {
	w := NewDuckDBSignalWriter(filepath.Join(suite.dir, "signals.parquet"))

	err := w.Write(sampleRows()[0])
	suite.True(errors.HasCode(err, errors.ErrCodeReportNotReady))

	_, err = w.Finalize()
	suite.True(errors.HasCode(err, errors.ErrCodeReportNotReady))

	suite.NoError(w.Close())
}

func (suite *DuckDBSignalWriterTestSuite) TestGetOutputPath() {
	path := filepath.Join(suite.dir, "signals.parquet")
	suite.Equal(path, NewDuckDBSignalWriter(path).GetOutputPath())
}

func (suite *DuckDBSignalWriterTestSuite) TestNewSignalWriter() {
	w, err := NewSignalWriter("out/signals.parquet")
	suite.Require().NoError(err)
	suite.IsType(&DuckDBSignalWriter{}, w)

	w, err = NewSignalWriter("out/signals.XLSX")
	suite.Require().NoError(err)
	suite.IsType(&ExcelSignalWriter{}, w)

	_, err = NewSignalWriter("out/signals.csv")
	suite.True(errors.HasCode(err, errors.ErrCodeUnsupportedFormat))
}
