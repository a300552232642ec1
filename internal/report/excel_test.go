package report

import (
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
)

type ExcelSignalWriterTestSuite struct {
	suite.Suite
	dir string
}

func TestExcelSignalWriterSuite(t *testing.T) {
	suite.Run(t, new(ExcelSignalWriterTestSuite))
}

func (suite *ExcelSignalWriterTestSuite) SetupTest() {
	suite.dir = suite.T().TempDir()
}

func (suite *ExcelSignalWriterTestSuite) TestWriteWorkbook() {
	path := filepath.Join(suite.dir, "nested", "signals.xlsx")

	out, err := WriteAll(NewExcelSignalWriter(path), sampleRows())
	suite.Require().NoError(err)
	suite.Equal(path, out)

	fx, err := excelize.OpenFile(path)
	suite.Require().NoError(err)
	defer fx.Close()

	rows, err := fx.GetRows(signalsSheet)
	suite.Require().NoError(err)
	suite.Require().Len(rows, 3)

	headers := excelHeaders(defaultConditions)
	suite.Equal(headers, rows[0])

	signalCol := len(headers) - 2
	suite.Equal("2024-03-04", rows[1][0])
	suite.Equal("000001", rows[1][1])
	suite.Equal("AVOID", rows[1][signalCol])
	suite.Equal("BUY", rows[2][signalCol])
	suite.Equal("AVOID", rows[2][signalCol+1])

	// BUY rows carry their own style
	avoidStyle, err := fx.GetCellStyle(signalsSheet, "A2")
	suite.Require().NoError(err)
	buyStyle, err := fx.GetCellStyle(signalsSheet, "A3")
	suite.Require().NoError(err)
	suite.NotEqual(avoidStyle, buyStyle)
}

func (suite *ExcelSignalWriterTestSuite) TestConditionColumnsFollowRows() {
	path := filepath.Join(suite.dir, "custom.xlsx")

	_, err := WriteAll(NewExcelSignalWriter(path), customRows())
	suite.Require().NoError(err)

	fx, err := excelize.OpenFile(path)
	suite.Require().NoError(err)
	defer fx.Close()

	rows, err := fx.GetRows(signalsSheet)
	suite.Require().NoError(err)
	suite.Require().Len(rows, 3)

	headers := excelHeaders([]types.ConditionName{"close_above_ten", types.ConditionTurnoverInRange})
	suite.Equal(headers, rows[0])
	suite.NotContains(rows[0], string(types.ConditionPriceBelowMA))

	col := len(headers) - 5
	suite.Equal("TRUE", rows[1][col])
	suite.Equal("FALSE", rows[2][col])
}

func (suite *ExcelSignalWriterTestSuite) TestEmptyExportHasHeader() {
	path := filepath.Join(suite.dir, "empty.xlsx")

	_, err := WriteAll(NewExcelSignalWriter(path), nil)
	suite.Require().NoError(err)

	fx, err := excelize.OpenFile(path)
	suite.Require().NoError(err)
	defer fx.Close()

	rows, err := fx.GetRows(signalsSheet)
	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.Equal(excelHeaders(nil), rows[0])
}

func (suite *ExcelSignalWriterTestSuite) TestWriteBeforeInitialize() {
	w := NewExcelSignalWriter(filepath.Join(suite.dir, "signals.xlsx"))

	err := w.Write(sampleRows()[0])
	suite.True(errors.HasCode(err, errors.ErrCodeReportNotReady))

	_, err = w.Finalize()
	suite.True(errors.HasCode(err, errors.ErrCodeReportNotReady))

	suite.NoError(w.Close())
}
