package fakedata

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/creditgen/internal/adapters/repository"
	"github.com/okian/creditgen/pkg/logger"
)

// Run generates the fixtures described by config and writes them to disk.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{
		StartTime: time.Now(),
	}

	if config.CustomersPath == "" {
		return nil, fmt.Errorf("%w: customers path is required", repository.ErrInvalidInput)
	}

	logger.Get().Info(ctx, "starting fixture generation",
		logger.Int("customers", config.NumCustomers),
		logger.Int("transactions", config.NumTransactions),
		logger.Int("workers", config.Workers),
		logger.String("customersPath", config.CustomersPath),
		logger.String("transactionsPath", config.TransactionsPath))

	gen := NewGenerator(*config)

	customers, err := gen.Customers(ctx, config.NumCustomers)
	if err != nil {
		return nil, err
	}
	if err := repository.WriteCustomers(ctx, config.CustomersPath, customers); err != nil {
		return nil, fmt.Errorf("save customers: %w", err)
	}
	stats.CustomersGenerated = len(customers)

	if config.TransactionsPath != "" && config.NumTransactions > 0 {
		txns, err := gen.Transactions(ctx, customers, config.NumTransactions)
		if err != nil {
			return nil, err
		}
		if err := repository.WriteTransactions(ctx, config.TransactionsPath, txns); err != nil {
			return nil, fmt.Errorf("save transactions: %w", err)
		}
		stats.TransactionsGenerated = len(txns)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	logger.Get().Info(ctx, "fixture generation complete",
		logger.Int("customers", stats.CustomersGenerated),
		logger.Int("transactions", stats.TransactionsGenerated),
		logger.Duration("duration", stats.Duration))

	return stats, nil
}
