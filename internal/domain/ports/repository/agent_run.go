package repository

import (
	"context"

	"newsroom-agents/internal/domain/model"
)

type AgentRunRepository interface {
	// Record writes one immutable audit row. There is deliberately no update
	// or delete on this port.
	Record(ctx context.Context, tx Tx, run *model.AgentRun) error
	ListByCycle(ctx context.Context, tx Tx, cycleID string) ([]*model.AgentRun, error)
}
