package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rxtech-lab/trade-journal/internal/journal"
	"github.com/rxtech-lab/trade-journal/internal/store"
	"github.com/rxtech-lab/trade-journal/internal/types"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

func reportCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Print the analytics report of a backtest under its saved filter",
		Flags: []cli.Flag{
			backtestFlag(),
			&cli.StringFlag{
				Name:  "yaml",
				Usage: "Also write the report as YAML to this path",
			},
		},
		Action: a.action(func(ctx context.Context, cmd *cli.Command) error {
			id, err := a.backtestID(ctx, cmd)
			if err != nil {
				return err
			}

			report, err := a.service.Report(ctx, id)
			if err != nil {
				return err
			}

			if path := cmd.String("yaml"); path != "" {
				if err := types.WriteReport(path, report); err != nil {
					return err
				}
			}

			return renderReport(cmd.Root().Writer, report)
		}),
	}
}

func importCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Import trades from a CSV file",
		ArgsUsage: "FILE",
		Flags:     []cli.Flag{backtestFlag()},
		Action: a.action(func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one CSV file")
			}

			id, err := a.backtestID(ctx, cmd)
			if err != nil {
				return err
			}

			path := cmd.Args().First()

			var bar *progressbar.ProgressBar

			imported, err := a.service.ImportTrades(ctx, id, path, journal.ImportProgress(func(done, total int) {
				if bar == nil {
					bar = progressbar.Default(int64(total))
					bar.Describe(fmt.Sprintf("Importing %s", filepath.Base(path)))
				}

				_ = bar.Set(done)
			}))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.Root().Writer, "imported %d trades\n", len(imported))

			return nil
		}),
	}
}

func exportCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the trades of a backtest",
		Flags: []cli.Flag{
			backtestFlag(),
			&cli.StringFlag{
				Name:  "format",
				Usage: fmt.Sprintf("Export format (%s or %s)", store.ExportFormatCSV, store.ExportFormatParquet),
				Value: string(store.ExportFormatCSV),
			},
		},
		Action: a.action(func(ctx context.Context, cmd *cli.Command) error {
			id, err := a.backtestID(ctx, cmd)
			if err != nil {
				return err
			}

			path, err := a.service.ExportTrades(ctx, id, store.ExportFormat(cmd.String("format")))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.Root().Writer, "exported to %s\n", path)

			return nil
		}),
	}
}

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:      "schema",
		Usage:     "Print the JSON schema of the config file or of a filter",
		ArgsUsage: "config|filter",
		Action: func(_ context.Context, cmd *cli.Command) error {
			var (
				schema string
				err    error
			)

			switch cmd.Args().First() {
			case "", "config":
				config := journal.DefaultConfig()
				schema, err = config.GenerateSchemaJSON()
			case "filter":
				schema, err = journal.FilterStateSchemaJSON()
			default:
				return fmt.Errorf("unknown schema %q", cmd.Args().First())
			}

			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.Root().Writer, schema)

			return nil
		},
	}
}
