package model

import "time"

// StageReport summarizes one agent's stage within a cycle.
type StageReport struct {
	Agent     string   `json:"agent"`
	Processed int      `json:"processed"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Skipped   int      `json:"skipped"`
	Retries   int      `json:"retries"`
	Errors    []string `json:"errors,omitempty"`
}

// TaskFailure identifies a task that ended a cycle in terminal failure.
type TaskFailure struct {
	TaskID string   `json:"task_id"`
	Kind   TaskKind `json:"kind"`
	Agent  string   `json:"agent"`
	Error  string   `json:"error"`
}

// CycleReport is the caller-facing result of one orchestration cycle. It is
// built from the audit rows and not persisted itself.
type CycleReport struct {
	CycleID    string                 `json:"cycle_id"`
	StartedAt  time.Time              `json:"started_at"`
	FinishedAt time.Time              `json:"finished_at"`
	PerAgent   map[string]StageReport `json:"per_agent"`
	Failures   []TaskFailure          `json:"failures,omitempty"`
	Overall    Outcome                `json:"overall_outcome"`
}

// Resolve computes the overall outcome from the per-stage counts.
// No failures means success. Failures alongside progress mean partial.
// Failures with nothing succeeding mean failure.
func (r *CycleReport) Resolve() Outcome {
	var failed, succeeded int
	for _, s := range r.PerAgent {
		failed += s.Failed
		succeeded += s.Succeeded + s.Skipped
	}
	switch {
	case failed == 0:
		return OutcomeSuccess
	case succeeded > 0:
		return OutcomePartial
	default:
		return OutcomeFailure
	}
}
