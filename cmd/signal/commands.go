package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rxtech-lab/argo-signal/internal/config"
	"github.com/rxtech-lab/argo-signal/internal/report"
	"github.com/rxtech-lab/argo-signal/internal/service"
	"github.com/rxtech-lab/argo-signal/internal/store"
	"github.com/rxtech-lab/argo-signal/internal/version"
	"github.com/rxtech-lab/argo-signal/pkg/utils"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// importAction loads every file argument into the store.
func importAction(ctx context.Context, cmd *cli.Command, a *app) error {
	if cmd.Args().Len() == 0 {
		return fmt.Errorf("import expects at least one .csv or .parquet file")
	}

	if cmd.Bool("truncate") {
		deleted, err := a.store.Truncate(ctx)
		if err != nil {
			return err
		}

		fmt.Println(HelpStyle.Render(fmt.Sprintf("Deleted %d stored observations", deleted)))
	}

	for _, path := range cmd.Args().Slice() {
		result, err := a.store.Import(ctx, path)
		if err != nil {
			return fmt.Errorf("import %s: %w", path, err)
		}

		a.log.Info("Imported file", zap.String("path", path), zap.Int("inserted", result.Inserted), zap.Int("skipped", result.Skipped))
		fmt.Printf("%s: %d inserted, %d already stored\n", path, result.Inserted, result.Skipped)
	}

	return nil
}

// checkAction prints the trailing rows of one instrument and today's verdict.
func checkAction(ctx context.Context, cmd *cli.Command, a *app) error {
	key, err := store.ParseInstrumentKey(cmd.Args().First())
	if err != nil {
		return err
	}

	decision, err := a.service(int(cmd.Int("rows"))).Check(ctx, key, tradingDay(cmd.Timestamp("date")))
	if err != nil {
		return err
	}

	report.WriteTable(os.Stdout, fmt.Sprintf("%s %s", decision.Symbol, decision.Name), decision.Tail)
	fmt.Println(FormatDecision(decision))

	return nil
}

// scanAction checks every stored instrument and lists the buys.
func scanAction(ctx context.Context, cmd *cli.Command, a *app) error {
	today := tradingDay(cmd.Timestamp("date"))

	var bar *progressbar.ProgressBar

	decisions, err := a.service(service.DefaultTailSize).Scan(ctx, today, func(done, total int, _ service.Decision) {
		if bar == nil {
			bar = progressbar.Default(int64(total), "scanning")
		}

		_ = bar.Add(1)
	})
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(TitleStyle.Render(fmt.Sprintf("Scan for %s: %d instruments", today.Format("2006-01-02"), len(decisions))))

	for _, d := range decisions {
		if d.Buy || d.Err != nil || cmd.Bool("verbose") {
			fmt.Println(FormatDecision(d))
		}
	}

	if len(service.Buys(decisions)) == 0 {
		fmt.Println(HelpStyle.Render(service.ReasonNoSignal))
	}

	return nil
}

// exportAction writes every signal row of one instrument to a report file.
func exportAction(ctx context.Context, cmd *cli.Command, a *app) error {
	key, err := store.ParseInstrumentKey(cmd.Args().First())
	if err != nil {
		return err
	}

	series, err := a.store.Load(ctx, key)
	if err != nil {
		return err
	}

	result, err := a.engine.Run(series)
	if err != nil {
		return err
	}

	if !result.Sufficient() {
		fmt.Println(WarnStyle.Render(result.Warning.Error()))
	}

	writer, err := report.NewSignalWriter(cmd.String("output"))
	if err != nil {
		return err
	}

	out, err := report.WriteAll(writer, result.Rows)
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d rows to %s\n", len(result.Rows), out)

	return nil
}

// listAction prints the stored instruments.
func listAction(ctx context.Context, _ *cli.Command, a *app) error {
	instruments, err := a.store.ListInstruments(ctx)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Code", "Name", "Rows", "First", "Last"})

	for _, instrument := range instruments {
		t.AppendRow(table.Row{
			instrument.ID,
			instrument.Name,
			instrument.Count,
			instrument.First.Format("2006-01-02"),
			instrument.Last.Format("2006-01-02"),
		})
	}

	t.Render()

	return nil
}

// truncateAction deletes every stored observation.
func truncateAction(ctx context.Context, cmd *cli.Command, a *app) error {
	if !cmd.Bool("yes") {
		return fmt.Errorf("truncate deletes every stored observation, pass --yes to confirm")
	}

	deleted, err := a.store.Truncate(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Deleted %d observations\n", deleted)

	return nil
}

// schemaAction prints the JSON schema of the config file.
func schemaAction(_ context.Context, _ *cli.Command) error {
	schema, err := utils.GetSchemaFromConfig(&config.Config{})
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	fmt.Println(schema)

	return nil
}

func versionAction(_ context.Context, _ *cli.Command) error {
	fmt.Println(version.GetVersion())

	return nil
}
