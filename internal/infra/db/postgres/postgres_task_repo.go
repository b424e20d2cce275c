package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"newsroom-agents/internal/domain"
	"newsroom-agents/internal/domain/model"
	"newsroom-agents/internal/domain/ports/repository"
)

var _ repository.TaskRepository = (*TaskRepo)(nil)

type TaskRepo struct {
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{pool: pool}
}

const taskColumns = `id, kind, payload, status, attempt_count, force_rerun, last_error, created_at, updated_at`

func (r *TaskRepo) Save(ctx context.Context, tx repository.Tx, t *model.Task) error {
	t.UpdatedAt = time.Now()
	const q = `
INSERT INTO tasks (id, kind, payload, status, attempt_count, force_rerun, last_error, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
ON CONFLICT (id) DO UPDATE SET
  status=$4, attempt_count=$5, last_error=$7, updated_at=$9;`

	ex, err := pick(r.pool, tx)
	if err != nil {
		return err
	}
	_, err = ex.Exec(ctx, q,
		t.ID, t.Kind, t.Payload, t.Status, t.AttemptCount, t.Force, t.LastError, t.CreatedAt, t.UpdatedAt)
	return err
}

func (r *TaskRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Task, error) {
	ex, err := pick(r.pool, tx)
	if err != nil {
		return nil, err
	}
	row := ex.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id=$1;`, id)
	return scanTask(row)
}

func (r *TaskRepo) ListPending(ctx context.Context, tx repository.Tx, kind model.TaskKind, limit int) ([]*model.Task, error) {
	const q = `
SELECT ` + taskColumns + `
  FROM tasks
 WHERE kind=$1 AND status='pending'
 ORDER BY created_at
 LIMIT $2;`

	ex, err := pick(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, q, kind, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Requeue returns a terminally failed task to the pending state. This is the
// only way a failed task re-enters the pipeline; cycles never do it on their
// own.
func (r *TaskRepo) Requeue(ctx context.Context, tx repository.Tx, id string) error {
	const q = `
UPDATE tasks
   SET status='pending', attempt_count=0, last_error='', updated_at=$2
 WHERE id=$1 AND status='failed';`

	ex, err := pick(r.pool, tx)
	if err != nil {
		return err
	}
	tag, err := ex.Exec(ctx, q, id, time.Now())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReclaimStale frees tasks a crashed cycle left in running. Attempt counts
// are kept so a reclaimed task does not get a fresh retry budget.
func (r *TaskRepo) ReclaimStale(ctx context.Context, tx repository.Tx, olderThan time.Duration) (int, error) {
	const q = `
UPDATE tasks
   SET status='pending', updated_at=$2
 WHERE status='running' AND updated_at < $1;`

	ex, err := pick(r.pool, tx)
	if err != nil {
		return 0, err
	}
	cutoff := time.Now().Add(-olderThan)
	tag, err := ex.Exec(ctx, q, cutoff, time.Now())
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func scanTask(row pgx.Row) (*model.Task, error) {
	var t model.Task
	var kind, status string
	err := row.Scan(&t.ID, &kind, &t.Payload, &status, &t.AttemptCount, &t.Force, &t.LastError, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	t.Kind = model.TaskKind(kind)
	t.Status = model.TaskStatus(status)
	return &t, nil
}
