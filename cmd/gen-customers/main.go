package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/creditgen/internal/fakedata"
	"github.com/okian/creditgen/pkg/logger"
	"github.com/urfave/cli/v3"
)

// Default configuration constants.
const (
	defaultNumCustomers    = 10000
	defaultNumTransactions = 100000
	defaultRunTimeout      = 10 * time.Minute
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		os.Stderr.WriteString("gen-customers: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "gen-customers",
		Usage: "Generate fixture customers and transactions for the credit generator",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "customers", Usage: "Number of customers to generate", Value: defaultNumCustomers},
			&cli.IntFlag{Name: "transactions", Usage: "Number of transactions to generate (0 skips the file)", Value: defaultNumTransactions},
			&cli.IntFlag{Name: "workers", Usage: "Number of concurrent workers", Value: runtime.NumCPU()},
			&cli.Uint64Flag{Name: "seed", Usage: "Random seed; 0 derives one from the clock"},
			&cli.StringFlag{Name: "customers-out", Usage: "Customer CSV path", Value: "data/sample/customers_sample.csv"},
			&cli.StringFlag{Name: "transactions-out", Usage: "Transaction CSV path (empty skips the file)", Value: "data/sample/transactions_sample.csv"},
			&cli.DurationFlag{Name: "timeout", Usage: "Abort the run after this long", Value: defaultRunTimeout},
			&cli.StringFlag{Name: "log", Usage: "Also write logs to this file"},
			&cli.BoolFlag{Name: "verbose", Usage: "Enable verbose logging"},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	closer, err := fakedata.SetupLogging(cmd.String("log"), cmd.Bool("verbose"))
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
	defer cancel()

	stats, err := fakedata.Run(ctx, &fakedata.Config{
		NumCustomers:     cmd.Int("customers"),
		NumTransactions:  cmd.Int("transactions"),
		Workers:          cmd.Int("workers"),
		Seed:             cmd.Uint64("seed"),
		CustomersPath:    cmd.String("customers-out"),
		TransactionsPath: cmd.String("transactions-out"),
	})
	if err != nil {
		return err
	}

	logger.Get().Info(ctx, "fixtures written",
		logger.Int("customers", stats.CustomersGenerated),
		logger.Int("transactions", stats.TransactionsGenerated),
		logger.Duration("duration", stats.Duration))
	return nil
}
