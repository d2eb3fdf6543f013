package task

import (
	"context"

	"github.com/google/uuid"
)

// TaskTypeArchiveArticle stores a generated article.
const TaskTypeArchiveArticle = "archive_article"

// Task is one unit of background work. Execute receives the worker pool's
// context, which is cancelled when a shutdown deadline passes.
type Task interface {
	ID() uuid.UUID
	// Type names the task kind in logs.
	Type() string
	Execute(ctx context.Context) error
}

// TaskQueueReader is the consuming side of a queue. The channel is closed
// once the queue is closed and drained.
type TaskQueueReader interface {
	GetChannel() <-chan Task
}

// TaskQueueWriter is the producing side of a queue. Enqueue fails with
// ErrQueueFull or ErrQueueClosed instead of blocking.
type TaskQueueWriter interface {
	Enqueue(task Task) error
	Close()
}
