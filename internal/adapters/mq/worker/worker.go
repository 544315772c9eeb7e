// Package worker runs generation jobs from the queue on a bounded pool.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/okian/creditgen/internal/adapters/mq/queue"
	"github.com/okian/creditgen/pkg/logger"
	"github.com/okian/creditgen/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Job is what workers read off the queue.
type Job = queue.Job

// Handler processes one job. Handlers for different jobs run concurrently and
// must not share mutable state.
type Handler func(ctx context.Context, job Job) error

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker drains jobs from a queue through a handler.
type Worker struct {
	queue   Queue
	handler Handler
	name    string
	logger  logger.Logger
}

// NewWorker creates a new worker with configuration options.
func NewWorker(q Queue, h Handler, opts ...Option) *Worker {
	w := &Worker{
		queue:   q,
		handler: h,
		name:    "worker",
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}

	return w
}

// Run processes jobs until the queue is drained, the handler fails, or ctx
// is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case job, ok := <-jobs:
			if !ok {
				return ctx.Err()
			}
			if err := w.process(ctx, job); err != nil {
				return err
			}
		}
	}
}

func (w *Worker) process(ctx context.Context, job Job) error {
	start := time.Now()
	if err := w.handler(ctx, job); err != nil {
		metrics.RecordErrorByComponent("worker", "handler_error")
		w.logger.Error(ctx, "job failed",
			logger.Int("index", job.Index),
			logger.String("customerID", job.Profile.CustomerID),
			logger.Error(err),
		)
		return fmt.Errorf("job %d (%s): %w", job.Index, job.Profile.CustomerID, err)
	}
	metrics.RecordCustomer(float64(time.Since(start).Microseconds()) / 1000)
	return nil
}

// Pool runs a fixed number of workers over one queue.
type Pool struct {
	workers []*Worker
	logger  logger.Logger
}

// NewPool creates a pool of workerCount workers. A count below one uses the
// number of CPUs.
func NewPool(workerCount int, q Queue, h Handler, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	p := &Pool{
		workers: make([]*Worker, workerCount),
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := range p.workers {
		workerOpts := append([]Option{WithName("worker-" + strconv.Itoa(i))}, opts...)
		p.workers[i] = NewWorker(q, h, workerOpts...)
	}

	metrics.UpdateWorkerCount(workerCount)

	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Run starts every worker and waits. The first failure cancels the rest and
// is returned.
func (p *Pool) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, w := range p.workers {
		g.Go(func() error {
			return w.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		p.logger.Warn(ctx, "worker pool stopped early", logger.Error(err))
		return err
	}
	return nil
}
