package model

import (
	"time"

	"github.com/google/uuid"

	"newsroom-agents/internal/domain"
)

type TaskKind string

const (
	TaskKindIngest TaskKind = "ingest"
	TaskKindReview TaskKind = "review"
	TaskKindEnrich TaskKind = "enrich"
)

type TaskStatus string

const (
	TaskStatusPending TaskStatus = "pending"
	TaskStatusRunning TaskStatus = "running"
	TaskStatusDone    TaskStatus = "done"
	TaskStatusFailed  TaskStatus = "failed"
)

// Task is a unit of work routed to exactly one agent kind. Payload is a
// source URL for ingest tasks and an article ID for review/enrich tasks.
// AttemptCount lives on the row, not in process memory, so restarts and
// concurrent orchestrator instances see the same retry history.
type Task struct {
	ID           string
	Kind         TaskKind
	Payload      string
	Status       TaskStatus
	AttemptCount int
	Force        bool
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewTask(kind TaskKind, payload string) (*Task, error) {
	switch kind {
	case TaskKindIngest, TaskKindReview, TaskKindEnrich:
	default:
		return nil, domain.ErrInvalidArgument
	}
	if payload == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Task{
		ID:        uuid.NewString(),
		Kind:      kind,
		Payload:   payload,
		Status:    TaskStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Terminal reports whether the task can no longer be picked up in a cycle.
func (t *Task) Terminal() bool {
	return t.Status == TaskStatusDone || t.Status == TaskStatusFailed
}
