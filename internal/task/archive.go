package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ktgktg/blogsmith/internal/domain"
	"github.com/ktgktg/blogsmith/internal/platform/logger"
	"github.com/ktgktg/blogsmith/internal/redact"
)

// DefaultArchiveTimeout bounds a single store call.
const DefaultArchiveTimeout = 60 * time.Second

// ArticleStore persists a generated article.
type ArticleStore interface {
	Store(ctx context.Context, rec *domain.ArticleRecord) error
}

// ArchiveTask stores one article record.
type ArchiveTask struct {
	id      uuid.UUID
	record  *domain.ArticleRecord
	store   ArticleStore
	timeout time.Duration
}

// NewArchiveTask creates a task that writes rec to store.
func NewArchiveTask(rec *domain.ArticleRecord, store ArticleStore) *ArchiveTask {
	return &ArchiveTask{
		id:      uuid.New(),
		record:  rec,
		store:   store,
		timeout: DefaultArchiveTimeout,
	}
}

// ID implements Task.
func (t *ArchiveTask) ID() uuid.UUID { return t.id }

// Type implements Task.
func (t *ArchiveTask) Type() string { return TaskTypeArchiveArticle }

// Execute implements Task.
func (t *ArchiveTask) Execute(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.store.Store(ctx, t.record)
}

// ArchiveQueue hands article records to the worker pool. Archiving is best
// effort: failures are logged and never reach the caller.
type ArchiveQueue struct {
	queue  TaskQueueWriter
	store  ArticleStore
	logger *slog.Logger
}

// NewArchiveQueue creates an ArchiveQueue writing to queue.
func NewArchiveQueue(queue TaskQueueWriter, store ArticleStore, l *slog.Logger) *ArchiveQueue {
	if l == nil {
		l = slog.Default()
	}
	return &ArchiveQueue{queue: queue, store: store, logger: l}
}

// Archive enqueues rec for storage.
func (a *ArchiveQueue) Archive(ctx context.Context, rec *domain.ArticleRecord) {
	log := logger.FromContextOrDefault(ctx, a.logger)
	if err := rec.Validate(); err != nil {
		log.WarnContext(ctx, "article not archived", "reason", "invalid record", "error", err)
		return
	}

	t := NewArchiveTask(rec, a.store)
	if err := a.queue.Enqueue(t); err != nil {
		log.WarnContext(ctx, "article not archived",
			"article_id", rec.ID.String(),
			"kind", string(rec.Kind),
			"error", redact.Error(err))
		return
	}
	log.DebugContext(ctx, "article queued for archiving",
		"article_id", rec.ID.String(),
		"task_id", t.ID().String())
}
