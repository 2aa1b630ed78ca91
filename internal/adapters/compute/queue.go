// Package compute provides the bounded task queue and worker pool the
// engine uses to fan per-season computations out and join them at a
// barrier before dependent stages run.
package compute

import (
	"context"
	"sync"

	"github.com/jgilmore97/FantasyFootballWrapped/pkg/metrics"
)

// Default queue configuration constants.
const defaultQueueCapacity = 256

// Task is one unit of engine work. Run writes only to slots the caller
// set aside for this task, so tasks never share mutable state.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// QueueOption applies a configuration option to the Queue.
type QueueOption func(*Queue)

// WithCapacity bounds the queue.
func WithCapacity(n int) QueueOption {
	return func(q *Queue) {
		if n > 0 {
			q.capacity = n
		}
	}
}

// Queue is an in-memory bounded task queue with non-blocking enqueue
// and channel-based dequeue.
type Queue struct {
	tasks    chan Task
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewQueue creates a queue with configuration options.
func NewQueue(opts ...QueueOption) *Queue {
	q := &Queue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.tasks = make(chan Task, q.capacity)
	metrics.UpdateTaskQueueSize(0)
	return q
}

// Enqueue adds a task. Returns false when the queue is closed or full,
// or the context is done.
func (q *Queue) Enqueue(ctx context.Context, t Task) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return false
	}
	select {
	case q.tasks <- t:
		metrics.RecordTaskEnqueued()
		metrics.UpdateTaskQueueSize(len(q.tasks))
		return true
	case <-ctx.Done():
		return false
	default:
		return false
	}
}

// Dequeue exposes the task channel. It is closed by Close once drained
// producers are done enqueuing.
func (q *Queue) Dequeue() <-chan Task {
	return q.tasks
}

// Len returns the number of queued tasks.
func (q *Queue) Len() int {
	return len(q.tasks)
}

// Close stops further enqueues and lets consumers drain to completion.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	close(q.tasks)
	q.closed = true
}
