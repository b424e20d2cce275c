package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"newsroom-agents/internal/agent"
	"newsroom-agents/internal/config"
	"newsroom-agents/internal/domain"
	"newsroom-agents/internal/domain/model"
	"newsroom-agents/internal/domain/ports/repository"
	"newsroom-agents/internal/infra/logging"
	"newsroom-agents/internal/infra/metrics"
	"newsroom-agents/internal/infra/worker"
)

// State is where the orchestrator currently is in its cycle.
type State string

const (
	StateIdle            State = "idle"
	StateCollectingTasks State = "collecting_tasks"
	StateRunningNews     State = "running_news"
	StateRunningReview   State = "running_review"
	StateRunningContent  State = "running_content"
	StateReporting       State = "reporting"
)

// Status is the snapshot served to the ops surface.
type Status struct {
	State      State              `json:"state"`
	Running    bool               `json:"running"`
	LastReport *model.CycleReport `json:"last_report,omitempty"`
}

// ReportSink receives finished cycle reports for dashboard consumption.
// Publishing is best effort; a sink error never fails the cycle.
type ReportSink interface {
	Store(ctx context.Context, report *model.CycleReport) error
}

// Orchestrator drives the agent pipeline: collect pending tasks per stage,
// run each stage to completion on the worker pool, retry failures up to the
// ceiling, write an audit row per invocation, and aggregate a CycleReport.
// Stages run strictly in order; tasks within a stage run concurrently but
// isolated, so one bad task cannot take its siblings down.
type Orchestrator struct {
	tasks  repository.TaskRepository
	runs   repository.AgentRunRepository
	txm    repository.TransactionManager
	agents []agent.Agent
	byKind map[model.TaskKind]agent.Agent
	pool   *worker.Pool
	sink   ReportSink
	cfg    config.OrchestratorConfig
	log    *zerolog.Logger

	mu         sync.Mutex
	state      State
	running    bool
	lastReport *model.CycleReport
}

// New wires an orchestrator over an ordered agent pipeline. Agent order is
// stage order. sink may be nil when no report cache is configured.
func New(
	tasks repository.TaskRepository,
	runs repository.AgentRunRepository,
	txm repository.TransactionManager,
	agents []agent.Agent,
	pool *worker.Pool,
	sink ReportSink,
	cfg config.OrchestratorConfig,
	logger *zerolog.Logger,
) *Orchestrator {
	l := logger.With().Str("component", "Orchestrator").Logger()
	byKind := make(map[model.TaskKind]agent.Agent, len(agents))
	for _, a := range agents {
		byKind[a.Kind()] = a
	}
	return &Orchestrator{
		tasks:  tasks,
		runs:   runs,
		txm:    txm,
		agents: agents,
		byKind: byKind,
		pool:   pool,
		sink:   sink,
		cfg:    cfg,
		log:    &l,
		state:  StateIdle,
	}
}

func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return Status{State: o.state, Running: o.running, LastReport: o.lastReport}
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

// RunOnce executes one full cycle. A persistence outage during task
// collection produces a failure report, not an error: the process stays up
// and the next cycle retries naturally.
func (o *Orchestrator) RunOnce(ctx context.Context) (*model.CycleReport, error) {
	cycleID := ulid.Make().String()
	ctx = logging.WithCycleID(ctx, cycleID)
	log := logging.With(ctx, o.log)
	defer logging.TraceDuration(log, "Orchestrator.RunOnce")()

	report := &model.CycleReport{
		CycleID:   cycleID,
		StartedAt: time.Now(),
		PerAgent:  map[string]model.StageReport{},
	}
	log.Info().Msg("cycle started")

	for _, ag := range o.agents {
		batch, err := o.collect(ctx, ag.Kind())
		if err != nil {
			log.Error().Err(err).Str("agent", ag.Name()).Msg("task collection failed; aborting cycle")
			report.Overall = model.OutcomeFailure
			o.finish(ctx, report, log)
			return report, nil
		}
		o.setState(stageState(ag.Name()))
		if len(batch) == 0 {
			continue
		}

		stage, produced := o.runStage(ctx, ag, batch, report)
		report.PerAgent[ag.Name()] = stage

		if next, ok := followOn(ag.Kind()); ok {
			o.enqueueFollowOn(ctx, next, produced, log)
		}
	}

	report.Overall = report.Resolve()
	o.finish(ctx, report, log)
	return report, nil
}

// RunForever loops RunOnce on the configured interval. Cancellation is
// honored between cycles only; an in-flight cycle always completes.
func (o *Orchestrator) RunForever(ctx context.Context) error {
	o.mu.Lock()
	o.running = true
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		o.running = false
		o.mu.Unlock()
	}()

	ticker := time.NewTicker(o.cfg.Interval)
	defer ticker.Stop()

	for {
		if _, err := o.RunOnce(ctx); err != nil {
			o.log.Error().Err(err).Msg("cycle error")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (o *Orchestrator) collect(ctx context.Context, kind model.TaskKind) ([]*model.Task, error) {
	o.setState(StateCollectingTasks)
	ctx, cancel := context.WithTimeout(ctx, o.cfg.DBTimeout)
	defer cancel()
	return o.tasks.ListPending(ctx, nil, kind, o.cfg.TaskBatch)
}

type taskOutcome struct {
	task     *model.Task
	outcome  model.Outcome
	produced []string
	retries  int
	err      error
}

func (o *Orchestrator) runStage(ctx context.Context, ag agent.Agent, batch []*model.Task, report *model.CycleReport) (model.StageReport, []string) {
	results := make([]taskOutcome, 0, len(batch))
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for _, task := range batch {
		task := task
		wg.Add(1)
		// The pool runs the closure with the submitted cycle context, so
		// cycle-scoped values (the cycle ID above all) reach the audit rows.
		err := o.pool.Submit(ctx, func(taskCtx context.Context) {
			defer wg.Done()
			out := o.runTask(taskCtx, ag, task)
			mu.Lock()
			results = append(results, out)
			mu.Unlock()
		})
		if err != nil {
			// Cycle cancelled while queueing; the task stays pending.
			wg.Done()
			break
		}
	}
	wg.Wait()

	stage := model.StageReport{Agent: ag.Name()}
	var produced []string
	for _, r := range results {
		stage.Processed++
		stage.Retries += r.retries
		switch r.outcome {
		case model.OutcomeSuccess:
			stage.Succeeded++
			produced = append(produced, r.produced...)
		case model.OutcomeSkipped:
			stage.Skipped++
		default:
			stage.Failed++
			if r.err != nil {
				stage.Errors = append(stage.Errors, r.err.Error())
			}
			report.Failures = append(report.Failures, model.TaskFailure{
				TaskID: r.task.ID,
				Kind:   r.task.Kind,
				Agent:  ag.Name(),
				Error:  errString(r.err),
			})
		}
	}
	return stage, produced
}

// runTask drives one task through the retry loop. Every agent invocation,
// including retries, leaves its own audit row.
func (o *Orchestrator) runTask(ctx context.Context, ag agent.Agent, task *model.Task) taskOutcome {
	ctx = logging.WithTaskID(ctx, task.ID)
	log := logging.With(ctx, o.log)

	if task.Kind != ag.Kind() {
		// No agent owns this kind: report it honestly instead of dropping it.
		res := agent.Result{
			Outcome: model.OutcomeNotImplemented,
			Err:     fmt.Errorf("%w: no agent for task kind %q", domain.ErrNotImplemented, task.Kind),
		}
		task.Status = model.TaskStatusFailed
		task.LastError = res.Err.Error()
		o.persistAttempt(ctx, task, o.buildRun(ctx, ag, task, time.Now(), res), log)
		return taskOutcome{task: task, outcome: res.Outcome, err: res.Err}
	}

	out := taskOutcome{task: task}
	for task.AttemptCount < o.cfg.RetryCeiling {
		task.AttemptCount++
		task.Status = model.TaskStatusRunning
		o.saveTask(ctx, task, log)

		started := time.Now()
		res := ag.Run(ctx, task)
		metrics.IncAgentRun(ag.Name(), string(res.Outcome))

		if res.Outcome != model.OutcomeFailure {
			task.Status = model.TaskStatusDone
			task.LastError = ""
			o.persistAttempt(ctx, task, o.buildRun(ctx, ag, task, started, res), log)
			out.outcome = res.Outcome
			out.produced = res.Produced
			return out
		}

		out.err = res.Err
		task.LastError = errString(res.Err)
		o.persistAttempt(ctx, task, o.buildRun(ctx, ag, task, started, res), log)
		if task.AttemptCount < o.cfg.RetryCeiling {
			out.retries++
			metrics.IncTaskRetry(ag.Name())
			log.Warn().Err(res.Err).Int("attempt", task.AttemptCount).Msg("task failed; retrying")
			continue
		}
	}

	// Retry ceiling reached: the task is terminal and will not be picked up
	// again without an explicit requeue.
	task.Status = model.TaskStatusFailed
	out.outcome = model.OutcomeFailure
	out.err = fmt.Errorf("%w: %s after %d attempts: %s",
		domain.ErrRetryCeilingExceeded, task.ID, task.AttemptCount, task.LastError)
	task.LastError = out.err.Error()
	o.saveTask(ctx, task, log)
	log.Error().Err(out.err).Msg("task terminally failed")
	return out
}

func (o *Orchestrator) buildRun(ctx context.Context, ag agent.Agent, task *model.Task, started time.Time, res agent.Result) *model.AgentRun {
	run := model.NewAgentRun(ag.Name(), logging.CycleID(ctx), task.ID, started)
	run.FinishedAt = time.Now()
	run.Outcome = res.Outcome
	if res.Err != nil {
		run.ErrorDetail = res.Err.Error()
	} else {
		run.ErrorDetail = res.Detail
	}
	return run
}

// persistAttempt commits the task's new state and the attempt's audit row in
// one transaction, so the audit trail never shows an attempt whose task
// update was lost, or vice versa.
func (o *Orchestrator) persistAttempt(ctx context.Context, task *model.Task, run *model.AgentRun, log *zerolog.Logger) {
	task.UpdatedAt = time.Now()
	dbCtx, cancel := context.WithTimeout(ctx, o.cfg.DBTimeout)
	defer cancel()

	err := o.txm.WithTx(dbCtx, pgx.TxOptions{}, func(txCtx context.Context, tx repository.Tx) error {
		if err := o.tasks.Save(txCtx, tx, task); err != nil {
			return err
		}
		return o.runs.Record(txCtx, tx, run)
	})
	if err != nil {
		log.Error().Err(err).Str("task_id", task.ID).Msg("attempt state write failed")
	}
}

func (o *Orchestrator) saveTask(ctx context.Context, task *model.Task, log *zerolog.Logger) {
	task.UpdatedAt = time.Now()
	dbCtx, cancel := context.WithTimeout(ctx, o.cfg.DBTimeout)
	defer cancel()
	if err := o.tasks.Save(dbCtx, nil, task); err != nil {
		log.Error().Err(err).Str("task_id", task.ID).Msg("task state write failed")
	}
}

func (o *Orchestrator) enqueueFollowOn(ctx context.Context, kind model.TaskKind, produced []string, log *zerolog.Logger) {
	for _, id := range produced {
		next, err := model.NewTask(kind, id)
		if err != nil {
			log.Error().Err(err).Str("payload", id).Msg("follow-on task invalid")
			continue
		}
		o.saveTask(ctx, next, log)
	}
}

func (o *Orchestrator) finish(ctx context.Context, report *model.CycleReport, log *zerolog.Logger) {
	o.setState(StateReporting)
	report.FinishedAt = time.Now()

	metrics.IncCycle(string(report.Overall))
	metrics.ObserveCycleDuration(report.FinishedAt.Sub(report.StartedAt).Seconds())

	if o.sink != nil {
		if err := o.sink.Store(ctx, report); err != nil {
			log.Warn().Err(err).Msg("report cache write failed")
		}
	}

	o.mu.Lock()
	o.lastReport = report
	o.state = StateIdle
	o.mu.Unlock()

	log.Info().
		Str("outcome", string(report.Overall)).
		Int("failures", len(report.Failures)).
		Dur("took", report.FinishedAt.Sub(report.StartedAt)).
		Msg("cycle finished")
}

func followOn(kind model.TaskKind) (model.TaskKind, bool) {
	switch kind {
	case model.TaskKindIngest:
		return model.TaskKindReview, true
	case model.TaskKindReview:
		return model.TaskKindEnrich, true
	default:
		return "", false
	}
}

func stageState(name string) State {
	switch name {
	case "news", string(model.TaskKindIngest):
		return StateRunningNews
	case string(model.TaskKindReview):
		return StateRunningReview
	case "content", string(model.TaskKindEnrich):
		return StateRunningContent
	default:
		return StateCollectingTasks
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
