package scoring

import (
	"time"

	"github.com/okian/creditgen/internal/domain/model"
)

// DefaultMonthsBack is the length of the historical series.
const DefaultMonthsBack = 24

// Default engine configuration constants.
const (
	defaultMaxEvents  = 500
	defaultEventRatio = 10
	daysPerMonth      = 30
	eventWindowYears  = 2
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithClock sets the source of "now". Dates are taken from its UTC calendar day.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithMaxEvents caps the number of customers receiving a credit event.
func WithMaxEvents(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.maxEvents = n
		}
	}
}

// WithEventRatio sets the divisor applied to the unique customer count when
// sizing the event sample (10 means one customer in ten).
func WithEventRatio(ratio int) Option {
	return func(e *Engine) {
		if ratio > 0 {
			e.eventRatio = ratio
		}
	}
}

// Engine bundles the scoring operations with their run-level settings. It holds
// no mutable state and is safe for concurrent use with distinct Rand values.
type Engine struct {
	now        func() time.Time
	maxEvents  int
	eventRatio int
}

// NewEngine creates an engine with configuration options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		now:        time.Now,
		maxEvents:  defaultMaxEvents,
		eventRatio: defaultEventRatio,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Today returns the engine's current UTC calendar day.
func (e *Engine) Today() time.Time {
	y, m, d := e.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CustomerScores is the per-customer engine output.
type CustomerScores struct {
	CustomerID string
	Current    int
	Records    []model.ScoreRecord
}

// Customer runs the per-customer pipeline: one synthesized score, one current
// record per bureau, then the historical series oldest-first when requested.
func (e *Engine) Customer(r Rand, p model.CustomerProfile, includeHistorical bool, monthsBack int) CustomerScores {
	current := Synthesize(r, p.Segment, p.Age, p.TenureYears)

	records := e.CurrentScores(r, p.CustomerID, current)
	if includeHistorical {
		records = append(records, e.History(r, p.CustomerID, current, monthsBack)...)
	}

	return CustomerScores{
		CustomerID: p.CustomerID,
		Current:    current,
		Records:    records,
	}
}
