// Package worker runs jobs from a queue on a fixed set of goroutines.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/okian/iplstat/internal/adapters/mq/queue"
	"github.com/okian/iplstat/pkg/logger"
)

// Job is one unit of work. Seq is its position in the submitted batch.
type Job[T any] struct {
	Seq     int
	Payload T
}

// Handler evaluates a single payload.
type Handler[T, R any] func(ctx context.Context, payload T) R

// Queue defines how workers receive jobs.
type Queue[T any] interface {
	Dequeue(ctx context.Context) <-chan Job[T]
}

// Worker drains a queue, writing each result into the slot of its job.
type Worker[T, R any] struct {
	name    string
	queue   Queue[T]
	handler Handler[T, R]
	results []R

	logger logger.Logger
}

// Run processes jobs until the queue is drained or ctx is canceled.
func (w *Worker[T, R]) Run(ctx context.Context) int {
	processed := 0
	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			w.logger.Debug(ctx, "worker stopped", logger.String("worker", w.name), logger.Int("processed", processed))
			return processed
		case job, ok := <-jobs:
			if !ok {
				return processed
			}
			// Each Seq is owned by exactly one job.
			w.results[job.Seq] = w.handler(ctx, job.Payload)
			processed++
		}
	}
}

// Pool evaluates a batch of payloads concurrently and keeps submission order.
type Pool[T, R any] struct {
	size    int
	handler Handler[T, R]
	name    string
	logger  logger.Logger
}

// NewPool creates a new worker pool. A size below 1 uses one worker per CPU.
func NewPool[T, R any](size int, handler Handler[T, R], opts ...Option) *Pool[T, R] {
	if size < 1 {
		size = runtime.NumCPU()
	}

	cfg := poolConfig{name: "worker-pool"}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.Named(cfg.name)
	}

	return &Pool[T, R]{
		size:    size,
		handler: handler,
		name:    cfg.name,
		logger:  cfg.logger,
	}
}

// Size returns the number of workers.
func (p *Pool[T, R]) Size() int {
	return p.size
}

// Process runs handler over every payload and returns the results in payload
// order. It returns ctx.Err() if ctx is canceled before the batch completes.
func (p *Pool[T, R]) Process(ctx context.Context, payloads []T) ([]R, error) {
	start := time.Now()
	results := make([]R, len(payloads))
	if len(payloads) == 0 {
		return results, nil
	}

	q := queue.NewInMemoryQueue[Job[T]](queue.WithCapacity(len(payloads)))
	for i, payload := range payloads {
		if err := q.Enqueue(ctx, Job[T]{Seq: i, Payload: payload}); err != nil {
			return nil, fmt.Errorf("enqueue job %d: %w", i, err)
		}
	}
	if err := q.Close(); err != nil {
		return nil, fmt.Errorf("close queue: %w", err)
	}

	workers := min(p.size, len(payloads))
	counts := make([]int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		i := i
		w := &Worker[T, R]{
			name:    p.name + "-" + strconv.Itoa(i),
			queue:   q,
			handler: p.handler,
			results: results,
			logger:  p.logger,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			counts[i] = w.Run(ctx)
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		p.logger.Warn(ctx, "batch canceled", logger.Int("jobs", len(payloads)), logger.Error(err))
		return nil, err
	}

	p.logger.Debug(ctx, "batch processed",
		logger.Int("jobs", len(payloads)),
		logger.Int("workers", workers),
		logger.Any("per_worker", counts),
		logger.Duration("took", time.Since(start)),
	)
	return results, nil
}
