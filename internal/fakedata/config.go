package fakedata

import "time"

// Config holds configuration for a fixture run.
type Config struct {
	NumCustomers     int       // Number of customers to generate
	NumTransactions  int       // Number of transactions to generate
	Workers          int       // Number of concurrent workers
	Seed             uint64    // Random seed; zero derives one from Now
	Now              time.Time // Reference time; zero means time.Now()
	CustomersPath    string    // Output CSV for customers
	TransactionsPath string    // Output CSV for transactions; empty skips them
}

// Stats holds fixture run statistics.
type Stats struct {
	CustomersGenerated    int
	TransactionsGenerated int
	StartTime             time.Time
	EndTime               time.Time
	Duration              time.Duration
}
