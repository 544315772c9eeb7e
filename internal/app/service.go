// Package service orchestrates a credit-data generation run: it loads the
// customer base, fans per-customer synthesis out to the worker pool, samples
// credit events, summarizes the run, and hands the records to the sinks.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"slices"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/okian/creditgen/internal/adapters/mq/queue"
	"github.com/okian/creditgen/internal/adapters/mq/worker"
	"github.com/okian/creditgen/internal/adapters/repository"
	"github.com/okian/creditgen/internal/domain/dedupe"
	"github.com/okian/creditgen/internal/domain/insights"
	"github.com/okian/creditgen/internal/domain/model"
	"github.com/okian/creditgen/internal/domain/scoring"
	"github.com/okian/creditgen/pkg/logger"
	"github.com/okian/creditgen/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Default service configuration constants.
const (
	defaultQueueSize     = 1024
	defaultProgressEvery = 1000
)

// eventStream is the stream index reserved for run-level event sampling.
// Customer streams use the customer's input position.
const eventStream = math.MaxUint64

// RunOptions selects what a run generates.
type RunOptions struct {
	IncludeHistorical bool
	// MonthsBack is the historical series length. Zero means 24.
	MonthsBack int
}

// Result is everything one run produced.
type Result struct {
	RunID    string
	Seed     uint64
	Scores   []model.ScoreRecord
	Events   []model.CreditEvent
	Insights insights.Insights
}

// Service runs generation with a fixed configuration. It is safe to call Run
// and Generate repeatedly.
type Service struct {
	logger logger.Logger
	clock  func() time.Time

	seed          uint64
	workerCount   int
	queueSize     int
	progressEvery int
	engineOpts    []scoring.Option

	customersPath string
	insightsPath  string
	metricsPath   string
	sinks         []repository.Sink
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the source of "now" for score dates and run timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.clock = now
		}
	}
}

// WithSeed fixes the run seed. Zero derives a seed from the clock.
func WithSeed(seed uint64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithProgressInterval sets how many customers pass between progress logs.
func WithProgressInterval(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.progressEvery = n
		}
	}
}

// WithEngineOptions forwards options to the scoring engine.
func WithEngineOptions(opts ...scoring.Option) Option {
	return func(s *Service) {
		s.engineOpts = append(s.engineOpts, opts...)
	}
}

// WithCustomersPath sets the customer CSV read by Run.
func WithCustomersPath(path string) Option {
	return func(s *Service) {
		s.customersPath = path
	}
}

// WithInsightsPath sets where Run writes the insights YAML. Empty disables it.
func WithInsightsPath(path string) Option {
	return func(s *Service) {
		s.insightsPath = path
	}
}

// WithMetricsPath sets where Run exports metrics in textfile format. Empty
// disables it.
func WithMetricsPath(path string) Option {
	return func(s *Service) {
		s.metricsPath = path
	}
}

// WithSinks adds output sinks. The service closes them in Close.
func WithSinks(sinks ...repository.Sink) Option {
	return func(s *Service) {
		for _, sink := range sinks {
			if sink != nil {
				s.sinks = append(s.sinks, sink)
			}
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		clock:         time.Now,
		workerCount:   runtime.NumCPU(),
		queueSize:     defaultQueueSize,
		progressEvery: defaultProgressEvery,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	return s
}

// Run loads the customer file, generates, and writes every configured output.
// A missing customer file aborts the run with a *model.MissingInputError.
func (s *Service) Run(ctx context.Context, opts RunOptions) (Result, error) {
	start := time.Now()

	profiles, err := repository.ReadCustomers(ctx, s.customersPath)
	if err != nil {
		metrics.RecordErrorByComponent("service", "load_customers")
		s.logger.Error(ctx, "failed to load customers",
			logger.String("path", s.customersPath),
			logger.Error(err),
		)
		return Result{}, err
	}
	s.logger.Info(ctx, "loaded customers",
		logger.String("path", s.customersPath),
		logger.Int("count", len(profiles)),
	)

	res, err := s.Generate(ctx, profiles, opts)
	if err != nil {
		return Result{}, err
	}

	if err := s.persist(ctx, res); err != nil {
		metrics.RecordErrorByComponent("service", "persist")
		return Result{}, err
	}

	metrics.RecordRun(time.Since(start).Seconds(), s.clock().Unix())
	if s.metricsPath != "" {
		if err := metrics.WriteTextfile(s.metricsPath); err != nil {
			return Result{}, fmt.Errorf("export metrics: %w", err)
		}
	}

	s.logger.Info(ctx, "run complete",
		logger.String("runID", res.RunID),
		logger.Int("scores", len(res.Scores)),
		logger.Int("events", len(res.Events)),
		logger.Duration("elapsed", time.Since(start)),
	)

	return res, nil
}

func (s *Service) persist(ctx context.Context, res Result) error {
	for _, sink := range s.sinks {
		if err := sink.WriteScores(ctx, res.RunID, res.Scores); err != nil {
			return fmt.Errorf("write scores: %w", err)
		}
		if err := sink.WriteEvents(ctx, res.RunID, res.Events); err != nil {
			return fmt.Errorf("write events: %w", err)
		}
	}

	if s.insightsPath != "" {
		if err := repository.WriteInsights(s.insightsPath, res.Insights); err != nil {
			return fmt.Errorf("write insights: %w", err)
		}
		s.logger.Info(ctx, "wrote insights", logger.String("path", s.insightsPath))
	}

	return nil
}

// Generate produces scores, events and insights for profiles without touching
// any output. Records are grouped per customer in input order regardless of
// worker scheduling, and a fixed seed reproduces the same result.
func (s *Service) Generate(ctx context.Context, profiles []model.CustomerProfile, opts RunOptions) (Result, error) {
	now := s.clock()
	seed := s.seed
	if seed == 0 {
		seed = uint64(now.UnixNano())
	}
	monthsBack := opts.MonthsBack
	if monthsBack <= 0 {
		monthsBack = scoring.DefaultMonthsBack
	}

	engineOpts := append(slices.Clone(s.engineOpts), scoring.WithClock(func() time.Time { return now }))
	engine := scoring.NewEngine(engineOpts...)

	s.logger.Info(ctx, "generating credit scores",
		logger.Int("customers", len(profiles)),
		logger.Bool("includeHistorical", opts.IncludeHistorical),
		logger.Int("monthsBack", monthsBack),
		logger.Any("seed", seed),
	)

	perCustomer := make([][]model.ScoreRecord, len(profiles))
	var processed atomic.Int64

	handler := func(ctx context.Context, job queue.Job) error {
		r := scoring.NewStream(seed, uint64(job.Index))
		cs := engine.Customer(r, job.Profile, opts.IncludeHistorical, monthsBack)
		for _, rec := range cs.Records {
			metrics.RecordScore(string(rec.Kind), string(rec.Bureau), string(rec.RiskCategory), rec.Score)
		}
		perCustomer[job.Index] = cs.Records

		if n := processed.Add(1); n%int64(s.progressEvery) == 0 {
			s.logger.Info(ctx, "generated credit scores", logger.Int("customers", int(n)))
		}
		return nil
	}

	q := queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	pool := worker.NewPool(s.workerCount, q, handler)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer q.Close()
		for i, p := range profiles {
			if err := q.Enqueue(gctx, queue.Job{Index: i, Profile: p}); err != nil {
				return err
			}
		}
		return nil
	})
	g.Go(func() error {
		return pool.Run(gctx)
	})
	if err := g.Wait(); err != nil {
		metrics.RecordErrorByComponent("service", "generate")
		return Result{}, fmt.Errorf("generate scores: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	total := 0
	for _, recs := range perCustomer {
		total += len(recs)
	}
	scores := make([]model.ScoreRecord, 0, total)
	seen := dedupe.NewInMemoryDeduper(dedupe.WithCapacityHint(len(profiles)))
	for _, recs := range perCustomer {
		for _, rec := range recs {
			seen.SeenAndRecord(ctx, rec.CustomerID)
		}
		scores = append(scores, recs...)
	}

	events := engine.SampleEvents(scoring.NewStream(seed, eventStream), seen.IDs())
	for _, e := range events {
		metrics.RecordCreditEvent(string(e.EventType), e.ImpactScore)
	}

	summary := insights.Summarize(scores, events)
	summary.RunID = uuid.NewString()
	summary.GeneratedAt = now.UTC()

	s.logger.Info(ctx, "credit score generation complete",
		logger.String("runID", summary.RunID),
		logger.Int("records", len(scores)),
		logger.Int("uniqueCustomers", int(seen.Size())),
		logger.Int("events", len(events)),
	)

	return Result{
		RunID:    summary.RunID,
		Seed:     seed,
		Scores:   scores,
		Events:   events,
		Insights: summary,
	}, nil
}

// Close closes every sink.
func (s *Service) Close() error {
	var errs []error
	for _, sink := range s.sinks {
		if err := sink.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
