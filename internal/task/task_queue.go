package task

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Errors returned by TaskQueue.Enqueue.
var (
	ErrQueueClosed = errors.New("task queue is closed")
	ErrQueueFull   = errors.New("task queue is full")
)

// TaskQueue buffers submitted tasks between the runner and its worker pool.
// It satisfies both TaskQueueReader and TaskQueueWriter. Enqueue never
// blocks: a full buffer is an error the submitter handles, so a burst of
// generation requests cannot stall an HTTP handler.
type TaskQueue struct {
	tasks  chan Task
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

// NewTaskQueue creates a queue buffering up to size tasks.
func NewTaskQueue(size int, logger *slog.Logger) *TaskQueue {
	return &TaskQueue{
		tasks:  make(chan Task, size),
		logger: logger,
	}
}

// Enqueue adds a task for processing. Returns ErrQueueClosed after Close,
// or ErrQueueFull when the buffer is at capacity.
func (q *TaskQueue) Enqueue(task Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.tasks <- task:
		q.logger.Debug("task enqueued",
			"task_id", task.ID(),
			"task_type", task.Type(),
			"queue_len", len(q.tasks),
			"queue_cap", cap(q.tasks))
		return nil
	default:
		return fmt.Errorf("%w: queue capacity %d reached", ErrQueueFull, cap(q.tasks))
	}
}

// Close stops accepting tasks and closes the channel so workers drain the
// remaining buffer and exit. Safe to call more than once.
func (q *TaskQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.tasks)
		q.logger.Info("task queue closed")
	}
}

// GetChannel returns the read side of the queue for workers.
func (q *TaskQueue) GetChannel() <-chan Task {
	return q.tasks
}
