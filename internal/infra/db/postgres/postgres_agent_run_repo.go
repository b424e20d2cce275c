package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"newsroom-agents/internal/domain/model"
	"newsroom-agents/internal/domain/ports/repository"
)

var _ repository.AgentRunRepository = (*AgentRunRepo)(nil)

// AgentRunRepo writes the append-only audit trail. Rows are never updated.
type AgentRunRepo struct {
	pool *pgxpool.Pool
}

func NewAgentRunRepo(pool *pgxpool.Pool) *AgentRunRepo {
	return &AgentRunRepo{pool: pool}
}

func (r *AgentRunRepo) Record(ctx context.Context, tx repository.Tx, run *model.AgentRun) error {
	const q = `
INSERT INTO agent_runs (id, agent_name, cycle_id, task_id, started_at, finished_at, outcome, error_detail)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8);`

	ex, err := pick(r.pool, tx)
	if err != nil {
		return err
	}
	_, err = ex.Exec(ctx, q,
		run.ID, run.AgentName, run.CycleID, run.TaskID, run.StartedAt, run.FinishedAt, run.Outcome, run.ErrorDetail)
	return err
}

func (r *AgentRunRepo) ListByCycle(ctx context.Context, tx repository.Tx, cycleID string) ([]*model.AgentRun, error) {
	const q = `
SELECT id, agent_name, cycle_id, task_id, started_at, finished_at, outcome, error_detail
  FROM agent_runs
 WHERE cycle_id=$1
 ORDER BY started_at;`

	ex, err := pick(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, q, cycleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.AgentRun
	for rows.Next() {
		var run model.AgentRun
		var outcome string
		if err := rows.Scan(&run.ID, &run.AgentName, &run.CycleID, &run.TaskID,
			&run.StartedAt, &run.FinishedAt, &outcome, &run.ErrorDetail); err != nil {
			return nil, err
		}
		run.Outcome = model.Outcome(outcome)
		out = append(out, &run)
	}
	return out, rows.Err()
}
