package agent

import (
	"context"

	"newsroom-agents/internal/domain/model"
)

// Result is what an agent hands back to the orchestrator for one task.
// Produced carries IDs the next stage should act on (article IDs from the
// news stage, approved article IDs from the review stage). Detail is a short
// human-readable note copied onto the audit row.
type Result struct {
	Outcome  model.Outcome
	Produced []string
	Detail   string
	Err      error
}

// Agent is one autonomous worker in the pipeline. Implementations are
// stateless between calls; everything they need arrives through the
// constructor or the task. Run reports failures through Result, never by
// panicking.
type Agent interface {
	Name() string
	Kind() model.TaskKind
	Run(ctx context.Context, task *model.Task) Result
}

func failure(err error) Result {
	return Result{Outcome: model.OutcomeFailure, Err: err}
}

func skipped(detail string) Result {
	return Result{Outcome: model.OutcomeSkipped, Detail: detail}
}
