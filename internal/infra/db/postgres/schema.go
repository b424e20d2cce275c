package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Schema statements are individually idempotent so InitSchema is safe to run
// on every process start: existing tables are left alone, missing ones are
// created.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS articles (
		id              UUID PRIMARY KEY,
		source_url      TEXT NOT NULL UNIQUE,
		title           TEXT NOT NULL DEFAULT '',
		raw_content     TEXT NOT NULL,
		summary         TEXT,
		sentiment_label TEXT,
		sentiment_score DOUBLE PRECISION,
		category        TEXT,
		review_status   TEXT NOT NULL DEFAULT 'unreviewed',
		review_note     TEXT NOT NULL DEFAULT '',
		created_at      TIMESTAMPTZ NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_articles_review_status ON articles (review_status);`,
	`CREATE INDEX IF NOT EXISTS idx_articles_category ON articles (category);`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id            UUID PRIMARY KEY,
		kind          TEXT NOT NULL,
		payload       TEXT NOT NULL,
		status        TEXT NOT NULL,
		attempt_count INT NOT NULL DEFAULT 0,
		force_rerun   BOOLEAN NOT NULL DEFAULT FALSE,
		last_error    TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_kind_status ON tasks (kind, status, created_at);`,

	`CREATE TABLE IF NOT EXISTS agent_runs (
		id           UUID PRIMARY KEY,
		agent_name   TEXT NOT NULL,
		cycle_id     TEXT NOT NULL,
		task_id      UUID,
		started_at   TIMESTAMPTZ NOT NULL,
		finished_at  TIMESTAMPTZ NOT NULL,
		outcome      TEXT NOT NULL,
		error_detail TEXT NOT NULL DEFAULT ''
	);`,
	`CREATE INDEX IF NOT EXISTS idx_agent_runs_cycle ON agent_runs (cycle_id, started_at);`,
}

// InitSchema creates the orchestration tables if they do not exist yet.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
