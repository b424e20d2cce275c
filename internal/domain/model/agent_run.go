package model

import (
	"time"

	"github.com/google/uuid"
)

type Outcome string

const (
	OutcomeSuccess        Outcome = "success"
	OutcomePartial        Outcome = "partial"
	OutcomeFailure        Outcome = "failure"
	OutcomeSkipped        Outcome = "skipped"
	OutcomeNotImplemented Outcome = "not_implemented"
)

// AgentRun is one audit row per agent invocation. Immutable after write;
// the rows are the platform's tamper-evident record of what each agent did.
type AgentRun struct {
	ID          string
	AgentName   string
	CycleID     string
	TaskID      string
	StartedAt   time.Time
	FinishedAt  time.Time
	Outcome     Outcome
	ErrorDetail string
}

func NewAgentRun(agentName, cycleID, taskID string, startedAt time.Time) *AgentRun {
	return &AgentRun{
		ID:        uuid.NewString(),
		AgentName: agentName,
		CycleID:   cycleID,
		TaskID:    taskID,
		StartedAt: startedAt,
	}
}
