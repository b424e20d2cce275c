package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"newsroom-agents/internal/domain/ports/repository"
	"newsroom-agents/internal/infra/metrics"
)

// ReclaimWorker periodically returns tasks stuck in running to the pending
// pool. A task only stays in running when a cycle died mid-flight, so the
// threshold should comfortably exceed the cycle interval.
type ReclaimWorker struct {
	interval   time.Duration
	staleAfter time.Duration
	tasks      repository.TaskRepository
	log        *zerolog.Logger
}

func NewReclaimWorker(interval, staleAfter time.Duration, tasks repository.TaskRepository, logger *zerolog.Logger) *ReclaimWorker {
	l := logger.With().Str("component", "ReclaimWorker").Logger()
	return &ReclaimWorker{
		interval:   interval,
		staleAfter: staleAfter,
		tasks:      tasks,
		log:        &l,
	}
}

func (w *ReclaimWorker) Run(ctx context.Context) error {
	w.log.Info().Msg("starting reclaim worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("stopping reclaim worker")
			return ctx.Err()
		case <-ticker.C:
			n, err := w.tasks.ReclaimStale(ctx, nil, w.staleAfter)
			if err != nil {
				w.log.Error().Err(err).Msg("reclaim error")
				continue
			}
			if n > 0 {
				metrics.IncTasksReclaimed(n)
				w.log.Info().Int("count", n).Msg("stale tasks reclaimed")
			}
		}
	}
}
