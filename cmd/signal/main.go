package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func dateFlag() *cli.TimestampFlag {
	return &cli.TimestampFlag{
		Name:    "date",
		Aliases: []string{"d"},
		Usage:   "Trading day to decide on in `YYYY-MM-DD` format. Defaults to today.",
		Value:   time.Now(),
		Config: cli.TimestampConfig{
			Layouts: []string{"2006-01-02"},
		},
	}
}

func main() {
	// A missing .env file is not an error
	_ = godotenv.Load()

	cmd := &cli.Command{
		Name:  "signal",
		Usage: "Compute daily BUY / AVOID signals from stored observations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db",
				Usage:   "Path to the DuckDB observation database",
				Value:   "signal.duckdb",
				Sources: cli.EnvVars("ARGO_SIGNAL_DB"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file. Defaults are used when empty.",
				Sources: cli.EnvVars("ARGO_SIGNAL_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override the config log level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:    "metrics",
				Usage:   "Write Prometheus metrics to this textfile on exit",
				Sources: cli.EnvVars("ARGO_SIGNAL_METRICS"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Import observations from CSV or Parquet files, skipping rows already stored",
				ArgsUsage: "<file>...",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "truncate",
						Usage: "Delete every stored observation before importing",
					},
				},
				Action: withApp(importAction),
			},
			{
				Name:      "check",
				Usage:     "Show the latest rows of one instrument and whether the day is a buy day",
				ArgsUsage: "<code|name>",
				Flags: []cli.Flag{
					dateFlag(),
					&cli.IntFlag{
						Name:    "rows",
						Aliases: []string{"n"},
						Usage:   "Number of trailing rows to print",
						Value:   5,
					},
				},
				Action: withApp(checkAction),
			},
			{
				Name:  "scan",
				Usage: "Check every stored instrument",
				Flags: []cli.Flag{
					dateFlag(),
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "Print the verdict of every instrument, not only buys",
					},
				},
				Action: withApp(scanAction),
			},
			{
				Name:      "export",
				Usage:     "Export every signal row of one instrument to Parquet or Excel",
				ArgsUsage: "<code|name>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "output",
						Aliases:  []string{"o"},
						Usage:    "Output file, .parquet or .xlsx",
						Required: true,
					},
				},
				Action: withApp(exportAction),
			},
			{
				Name:   "list",
				Usage:  "List stored instruments",
				Action: withApp(listAction),
			},
			{
				Name:  "truncate",
				Usage: "Delete every stored observation",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "yes",
						Usage: "Confirm the deletion",
					},
				},
				Action: withApp(truncateAction),
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the config file",
				Action: schemaAction,
			},
			{
				Name:   "version",
				Usage:  "Print the engine version",
				Action: versionAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render(err.Error()))
		os.Exit(1)
	}
}
