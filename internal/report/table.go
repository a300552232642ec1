package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rxtech-lab/argo-signal/internal/types"
)

const undefinedCell = "-"

// WriteTable renders time, close price, moving average, RSI and signal of rows.
func WriteTable(w io.Writer, title string, rows []types.SignalRow) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)

	if title != "" {
		t.SetTitle(title)
	}

	t.AppendHeader(table.Row{"Time", "Close", "MA", "RSI", "Conditions", "Signal"})

	for _, row := range rows {
		t.AppendRow(table.Row{
			row.Time.Format("2006-01-02"),
			fmt.Sprintf("%.2f", row.ClosePrice),
			formatValue(row.MovingAverage),
			formatValue(row.RSI),
			fmt.Sprintf("%d/%d", row.ConditionCount, len(row.Conditions)),
			row.Signal.String(),
		})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignCenter},
		{Number: 6, Align: text.AlignCenter},
	})

	t.Render()
}

func formatValue(v types.Value) string {
	if v.IsNone() {
		return undefinedCell
	}

	return fmt.Sprintf("%.2f", v.Unwrap())
}
