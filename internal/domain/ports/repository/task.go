package repository

import (
	"context"
	"time"

	"newsroom-agents/internal/domain/model"
)

type TaskRepository interface {
	Save(ctx context.Context, tx Tx, t *model.Task) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Task, error)
	// ListPending returns pending tasks of one kind, oldest first.
	// Terminally failed tasks are never returned.
	ListPending(ctx context.Context, tx Tx, kind model.TaskKind, limit int) ([]*model.Task, error)
	// Requeue is the external re-enqueue trigger: it returns a terminally
	// failed task to pending and resets its attempt count.
	Requeue(ctx context.Context, tx Tx, id string) error
	// ReclaimStale returns tasks stuck in running (a crashed cycle left
	// them behind) to pending. Returns how many were reclaimed.
	ReclaimStale(ctx context.Context, tx Tx, olderThan time.Duration) (int, error)
}
