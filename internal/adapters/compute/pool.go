package compute

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/jgilmore97/FantasyFootballWrapped/pkg/logger"
	"github.com/jgilmore97/FantasyFootballWrapped/pkg/metrics"
)

// PoolOption applies a configuration option to the Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithLogger sets a custom logger for the pool.
func WithLogger(log logger.Logger) PoolOption {
	return func(p *Pool) {
		if log != nil {
			p.logger = log
		}
	}
}

// Pool runs queued tasks on a fixed set of workers. Task errors are
// logged and counted but never stop the pool: per-entity failures are
// isolated by design, and each task reports its own warnings.
type Pool struct {
	queue   *Queue
	workers int
	logger  logger.Logger
	wg      sync.WaitGroup
}

// NewPool creates a pool reading from queue.
func NewPool(queue *Queue, opts ...PoolOption) *Pool {
	p := &Pool{
		queue:   queue,
		workers: runtime.NumCPU(),
		logger:  logger.Get().Named("compute"),
	}
	for _, opt := range opts {
		opt(p)
	}
	metrics.UpdateWorkerCount(p.workers)
	return p
}

// Start launches the workers. They exit when the queue is closed and
// drained, or the context is canceled.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run(ctx)
	}
}

// Wait blocks until every worker has finished. Close the queue first or
// Wait never returns.
func (p *Pool) Wait() {
	p.wg.Wait()
	metrics.UpdateWorkerCount(0)
}

func (p *Pool) run(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-p.queue.Dequeue():
			if !ok {
				return
			}
			p.process(ctx, task)
		}
	}
}

func (p *Pool) process(ctx context.Context, task Task) {
	start := time.Now()
	err := task.Run(ctx)
	metrics.ObserveTaskDuration(time.Since(start).Seconds())
	metrics.UpdateTaskQueueSize(p.queue.Len())
	if err != nil {
		metrics.RecordTaskError()
		p.logger.Error(ctx, "task failed",
			logger.String("task", task.Name),
			logger.Error(err),
		)
		return
	}
	metrics.RecordTaskProcessed()
}
