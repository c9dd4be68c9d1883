package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rxtech-lab/trade-journal/internal/journal"
	"github.com/rxtech-lab/trade-journal/internal/logger"
	"github.com/rxtech-lab/trade-journal/internal/store"
	"github.com/rxtech-lab/trade-journal/internal/tracing"
	"github.com/rxtech-lab/trade-journal/internal/version"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app holds the journal opened by the root command. The shell command reuses
// it across lines so undo history survives between commands.
type app struct {
	config  journal.Config
	logger  *logger.Logger
	store   *store.DuckDBStore
	service *journal.Service
	tracing *tracing.Provider
}

// open loads configuration and opens the journal once.
func (a *app) open(cmd *cli.Command) error {
	if a.service != nil {
		return nil
	}

	if err := journal.LoadEnvFiles(cmd.StringSlice("env")...); err != nil {
		return err
	}

	config, err := journal.LoadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	if path := cmd.String("database"); path != "" {
		config.DatabasePath = path
	}

	level := zapcore.WarnLevel
	if cmd.Bool("verbose") {
		level = zapcore.InfoLevel
	}

	log, err := logger.NewLoggerWithLevel(level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	if cmd.Bool("trace") {
		provider, err := tracing.Init(cmd.Root().ErrWriter)
		if err != nil {
			return fmt.Errorf("failed to start tracing: %w", err)
		}

		a.tracing = provider
	}

	journalStore, err := store.NewDuckDBStore(config.DatabasePath, log)
	if err != nil {
		return err
	}

	a.config = config
	a.logger = log
	a.store = journalStore
	a.service = journal.NewService(journalStore, log, config)

	return nil
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("Failed to close journal", zap.Error(err))
		}
	}

	if err := a.tracing.Shutdown(context.Background()); err != nil && a.logger != nil {
		a.logger.Warn("Failed to flush traces", zap.Error(err))
	}

	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// action opens the journal before running fn.
func (a *app) action(fn cli.ActionFunc) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if err := a.open(cmd); err != nil {
			return err
		}

		return fn(ctx, cmd)
	}
}

// backtestID returns the --backtest flag, or the first backtest when unset.
func (a *app) backtestID(ctx context.Context, cmd *cli.Command) (string, error) {
	if id := cmd.String("backtest"); id != "" {
		return id, nil
	}

	backtest, err := a.service.EnsureBacktest(ctx)
	if err != nil {
		return "", err
	}

	return backtest.ID, nil
}

func backtestFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "backtest",
		Aliases: []string{"b"},
		Usage:   "Backtest id. Defaults to the first backtest",
	}
}

func newRootCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:    "journal",
		Usage:   "Trading journal analytics",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML config file",
				Sources: cli.EnvVars("JOURNAL_CONFIG"),
			},
			&cli.StringSliceFlag{
				Name:  "env",
				Usage: "Env files to load before reading the config",
				Value: []string{".env"},
			},
			&cli.StringFlag{
				Name:  "database",
				Usage: "Path to the journal database, overrides the config",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log info messages",
			},
			&cli.BoolFlag{
				Name:    "trace",
				Usage:   "Print OpenTelemetry spans to stderr",
				Sources: cli.EnvVars("JOURNAL_TRACING_ENABLED"),
			},
		},
		Commands: []*cli.Command{
			backtestCommand(a),
			tradeCommand(a),
			filterCommand(a),
			reportCommand(a),
			importCommand(a),
			exportCommand(a),
			schemaCommand(),
			shellCommand(a),
		},
	}
}

func main() {
	a := &app{}
	defer a.close()

	if err := newRootCommand(a).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render(err.Error()))
		a.close()
		os.Exit(1)
	}
}
