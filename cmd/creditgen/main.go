package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/creditgen/internal/adapters/repository"
	app "github.com/okian/creditgen/internal/app"
	"github.com/okian/creditgen/internal/config"
	"github.com/okian/creditgen/internal/domain/model"
	"github.com/okian/creditgen/internal/domain/scoring"
	"github.com/okian/creditgen/pkg/logger"
	"github.com/urfave/cli/v3"
)

var version = "v0.0.1-default"

// Flag names.
const (
	flagConfig     = "config"
	flagCustomers  = "customers"
	flagOutput     = "output"
	flagInsights   = "insights"
	flagHistorical = "historical"
	flagMonthsBack = "months-back"
	flagSeed       = "seed"
	flagWorkers    = "workers"
	flagSQLite     = "sqlite"
	flagMetrics    = "metrics"
	flagLogLevel   = "log-level"
	flagLogFormat  = "log-format"
)

// Exit codes.
const (
	exitFailure      = 1
	exitMissingInput = 2
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		os.Stderr.WriteString("creditgen: " + err.Error() + "\n")
		stop()
		if errors.Is(err, model.ErrMissingInput) {
			os.Exit(exitMissingInput)
		}
		os.Exit(exitFailure)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "creditgen",
		Usage:   "Generate synthetic credit bureau scores, histories and credit events for a customer base",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagConfig, Usage: "YAML config file (overrides " + config.EnvConfigFile + ")"},
			&cli.StringFlag{Name: flagCustomers, Usage: "Customer CSV to derive scores from"},
			&cli.StringFlag{Name: flagOutput, Usage: "Directory receiving the score and event CSV files"},
			&cli.StringFlag{Name: flagInsights, Usage: "Path of the YAML run summary"},
			&cli.BoolFlag{Name: flagHistorical, Usage: "Include the monthly historical series", Value: true},
			&cli.IntFlag{Name: flagMonthsBack, Usage: "Length of each historical series in months"},
			&cli.Uint64Flag{Name: flagSeed, Usage: "Random seed; 0 derives one from the clock"},
			&cli.IntFlag{Name: flagWorkers, Usage: "Number of generation workers"},
			&cli.StringFlag{Name: flagSQLite, Usage: "Also write the run into this sqlite database"},
			&cli.StringFlag{Name: flagMetrics, Usage: "Write prometheus metrics in textfile format to this path"},
			&cli.StringFlag{Name: flagLogLevel, Usage: "Log level [debug, info, warn, error]"},
			&cli.StringFlag{Name: flagLogFormat, Usage: "Log format [text, json]"},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	// Initialize logging
	if err := logger.Init(); err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	if path := cmd.String(flagConfig); path != "" {
		if err := os.Setenv(config.EnvConfigFile, path); err != nil {
			return err
		}
	}

	// Load configuration (defaults -> optional file -> env -> flags), then
	// validate the merged result once.
	cfg, err := config.Read(ctx)
	if err != nil {
		return err
	}
	applyFlags(cfg, cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.Init(logger.WithJSON(cfg.LogFormat == "json")); err != nil {
		return err
	}
	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	sinks, err := openSinks(ctx, cfg)
	if err != nil {
		return err
	}

	svc := app.New(
		app.WithLogger(loggerInstance.Named("service")),
		app.WithSeed(cfg.Seed),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.QueueSize),
		app.WithEngineOptions(
			scoring.WithMaxEvents(cfg.MaxEvents),
			scoring.WithEventRatio(cfg.EventRatio),
		),
		app.WithCustomersPath(cfg.CustomersPath),
		app.WithInsightsPath(cfg.InsightsPath),
		app.WithMetricsPath(cfg.MetricsPath),
		app.WithSinks(sinks...),
	)
	defer func() {
		if err := svc.Close(); err != nil {
			loggerInstance.Error(ctx, "failed to close sinks", logger.Error(err))
		}
	}()

	_, err = svc.Run(ctx, app.RunOptions{
		IncludeHistorical: cfg.IncludeHistorical,
		MonthsBack:        cfg.MonthsBack,
	})
	return err
}

// applyFlags overrides config values with flags the user actually set.
func applyFlags(cfg *config.Config, cmd *cli.Command) {
	if cmd.IsSet(flagCustomers) {
		cfg.CustomersPath = cmd.String(flagCustomers)
	}
	if cmd.IsSet(flagOutput) {
		cfg.OutputDir = cmd.String(flagOutput)
	}
	if cmd.IsSet(flagInsights) {
		cfg.InsightsPath = cmd.String(flagInsights)
	}
	if cmd.IsSet(flagHistorical) {
		cfg.IncludeHistorical = cmd.Bool(flagHistorical)
	}
	if cmd.IsSet(flagMonthsBack) {
		cfg.MonthsBack = cmd.Int(flagMonthsBack)
	}
	if cmd.IsSet(flagSeed) {
		cfg.Seed = cmd.Uint64(flagSeed)
	}
	if cmd.IsSet(flagWorkers) {
		cfg.WorkerCount = cmd.Int(flagWorkers)
	}
	if cmd.IsSet(flagSQLite) {
		cfg.SQLitePath = cmd.String(flagSQLite)
	}
	if cmd.IsSet(flagMetrics) {
		cfg.MetricsPath = cmd.String(flagMetrics)
	}
	if cmd.IsSet(flagLogLevel) {
		cfg.LogLevel = cmd.String(flagLogLevel)
	}
	if cmd.IsSet(flagLogFormat) {
		cfg.LogFormat = cmd.String(flagLogFormat)
	}
}

func openSinks(ctx context.Context, cfg *config.Config) ([]repository.Sink, error) {
	csvSink, err := repository.NewCSVSink(cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	sinks := []repository.Sink{csvSink}

	if cfg.SQLitePath != "" {
		sqliteSink, err := repository.NewSQLiteSink(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, sqliteSink)
	}
	return sinks, nil
}
