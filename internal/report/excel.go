package report

import (
	"os"
	"path/filepath"

	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const signalsSheet = "Signals"

type excelStyles struct {
	header int
	number int
	buy    int
}

// ExcelSignalWriter writes one worksheet row per signal row and highlights BUY rows.
type ExcelSignalWriter struct {
	fx         *excelize.File
	styles     excelStyles
	conditions []types.ConditionName
	next       int
	outputPath string
}

// NewExcelSignalWriter creates a writer saving to outputPath.
func NewExcelSignalWriter(outputPath string) SignalWriter {
	return &ExcelSignalWriter{
		outputPath: outputPath,
	}
}

func excelHeaders(conditions []types.ConditionName) []string {
	headers := []string{"Time", "Instrument", "Name", "Close", "Turnover", "Turnover Rate"}
	headers = append(headers, indicatorColumns...)

	for _, name := range conditions {
		headers = append(headers, string(name))
	}

	return append(headers, "Conditions", "Signal", "Position")
}

// Initialize creates the workbook and its styles. The header row is written
// with the first row, once the condition columns are known.
func (w *ExcelSignalWriter) Initialize() error {
	w.fx = excelize.NewFile()

	if err := w.fx.SetSheetName(w.fx.GetSheetName(0), signalsSheet); err != nil {
		return errors.Wrap(errors.ErrCodeReportInitFailed, "failed to rename sheet", err)
	}

	styles, err := createExcelStyles(w.fx)
	if err != nil {
		return errors.Wrap(errors.ErrCodeReportInitFailed, "failed to create styles", err)
	}

	w.styles = styles
	w.next = 1

	return nil
}

func (w *ExcelSignalWriter) writeHeader(conditions []types.ConditionName) {
	headers := excelHeaders(conditions)
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		w.fx.SetCellValue(signalsSheet, cell, h)
		w.fx.SetCellStyle(signalsSheet, cell, cell, w.styles.header)
	}

	last, _ := excelize.ColumnNumberToName(len(headers))
	w.fx.SetColWidth(signalsSheet, "A", "A", 12)
	w.fx.SetColWidth(signalsSheet, "B", last, 14)

	_ = w.fx.SetPanes(signalsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	w.conditions = conditions
	w.next = 2
}

func createExcelStyles(fx *excelize.File) (excelStyles, error) {
	var styles excelStyles

	var err error

	// Header style - Dark slate background with white text
	styles.header, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   11,
			Color:  "FFFFFF",
			Family: "Calibri",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"2F4F4F"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return styles, err
	}

	styles.number, err = fx.NewStyle(&excelize.Style{
		NumFmt: 2, // 0.00
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	if err != nil {
		return styles, err
	}

	// BUY rows - light green fill
	styles.buy, err = fx.NewStyle(&excelize.Style{
		NumFmt: 2,
		Font: &excelize.Font{
			Bold:  true,
			Color: "006100",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"C6EFCE"},
			Pattern: 1,
		},
	})
	if err != nil {
		return styles, err
	}

	return styles, nil
}

// Write implements SignalWriter.
func (w *ExcelSignalWriter) Write(row types.SignalRow) error {
	if w.fx == nil {
		return errors.New(errors.ErrCodeReportNotReady, "writer not initialized")
	}

	if w.next == 1 {
		w.writeHeader(conditionNames(row))
	}

	values := []any{
		row.Time.Format("2006-01-02"),
		row.Symbol,
		row.Name,
		row.ClosePrice,
		row.Turnover,
		row.TurnoverRate,
	}

	for _, v := range indicatorValues(row) {
		values = append(values, nullable(v))
	}

	for _, name := range w.conditions {
		values = append(values, row.Satisfied(name))
	}

	position := ""
	if row.Position.IsSome() {
		position = row.Position.Unwrap().String()
	}

	values = append(values, row.ConditionCount, row.Signal.String(), position)

	start, _ := excelize.CoordinatesToCellName(1, w.next)
	if err := w.fx.SetSheetRow(signalsSheet, start, &values); err != nil {
		return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to write row", err)
	}

	style := w.styles.number
	if row.IsBuy() {
		style = w.styles.buy
	}

	end, _ := excelize.CoordinatesToCellName(len(values), w.next)
	if err := w.fx.SetCellStyle(signalsSheet, start, end, style); err != nil {
		return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to style row", err)
	}

	w.next++

	return nil
}

// Finalize saves the workbook.
func (w *ExcelSignalWriter) Finalize() (string, error) {
	if w.fx == nil {
		return "", errors.New(errors.ErrCodeReportNotReady, "writer not initialized")
	}

	if w.next == 1 {
		w.writeHeader(nil)
	}

	// Ensure directory exists before creating file
	if dir := filepath.Dir(w.outputPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to create directory %s", dir)
		}
	}

	if err := w.fx.SaveAs(w.outputPath); err != nil {
		return "", errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to save workbook", err)
	}

	return w.outputPath, nil
}

// Close implements SignalWriter.
func (w *ExcelSignalWriter) Close() error {
	if w.fx == nil {
		return nil
	}

	err := w.fx.Close()
	w.fx = nil

	return err
}

// GetOutputPath implements SignalWriter.
func (w *ExcelSignalWriter) GetOutputPath() string {
	return w.outputPath
}
