// Package config defines generator configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and CREDITGEN_* env vars.
// - Validation errors wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log lines.
	LogFormat string `koanf:"log_format"`

	// CustomersPath is the customer CSV the scores are derived from.
	CustomersPath string `koanf:"customers_path"`

	// OutputDir receives the score and event CSV files.
	OutputDir string `koanf:"output_dir"`

	// InsightsPath receives the YAML run summary. Empty disables it.
	InsightsPath string `koanf:"insights_path"`

	// IncludeHistorical toggles the 24-month historical series.
	IncludeHistorical bool `koanf:"include_historical"`

	// MonthsBack is the length of each historical series.
	MonthsBack int `koanf:"months_back"`

	// Seed fixes the random streams; 0 derives one from the clock.
	Seed uint64 `koanf:"seed"`

	// WorkerCount sets the number of generation workers.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the in-memory job queue.
	QueueSize int `koanf:"queue_size"`

	// MaxEvents caps the number of customers receiving a credit event.
	MaxEvents int `koanf:"max_events"`

	// EventRatio is the customer-to-event divisor (10 = one in ten).
	EventRatio int `koanf:"event_ratio"`

	// SQLitePath mirrors output into a sqlite database. Empty disables it.
	SQLitePath string `koanf:"sqlite_path"`

	// MetricsPath writes a prometheus textfile after the run. Empty disables it.
	MetricsPath string `koanf:"metrics_path"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		CustomersPath:     "data/sample/customers_sample.csv",
		OutputDir:         "data/sample",
		InsightsPath:      "data/schemas/credit_score_insights.yaml",
		IncludeHistorical: true,
		MonthsBack:        24,
		WorkerCount:       runtime.NumCPU(),
		QueueSize:         1024,
		MaxEvents:         500,
		EventRatio:        10,
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case c.CustomersPath == "":
		return fmt.Errorf("%w: customers_path must not be empty", ErrInvalidConfig)
	case c.OutputDir == "":
		return fmt.Errorf("%w: output_dir must not be empty", ErrInvalidConfig)
	case c.MonthsBack < 1:
		return fmt.Errorf("%w: months_back must be at least 1, got %d", ErrInvalidConfig, c.MonthsBack)
	case c.WorkerCount < 1:
		return fmt.Errorf("%w: worker_count must be at least 1, got %d", ErrInvalidConfig, c.WorkerCount)
	case c.QueueSize < 1:
		return fmt.Errorf("%w: queue_size must be at least 1, got %d", ErrInvalidConfig, c.QueueSize)
	case c.MaxEvents < 0:
		return fmt.Errorf("%w: max_events must not be negative, got %d", ErrInvalidConfig, c.MaxEvents)
	case c.EventRatio < 1:
		return fmt.Errorf("%w: event_ratio must be at least 1, got %d", ErrInvalidConfig, c.EventRatio)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
