//go:build !integration

package orchestrator_test

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"newsroom-agents/internal/agent"
	"newsroom-agents/internal/config"
	"newsroom-agents/internal/domain"
	"newsroom-agents/internal/domain/model"
	"newsroom-agents/internal/domain/ports/adapter"
	"newsroom-agents/internal/domain/ports/repository"
)

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func testCfg() config.OrchestratorConfig {
	return config.OrchestratorConfig{
		RetryCeiling: 3,
		StageWorkers: 4,
		TaskBatch:    50,
		DBTimeout:    2 * time.Second,
		Interval:     time.Second,
	}
}

// =============================
// Repositories
// =============================

type MockTaskRepo struct {
	mu    sync.Mutex
	Tasks map[string]*model.Task

	ListPendingFunc func(ctx context.Context, tx repository.Tx, kind model.TaskKind, limit int) ([]*model.Task, error)
	SaveFunc        func(ctx context.Context, tx repository.Tx, t *model.Task) error
}

var _ repository.TaskRepository = (*MockTaskRepo)(nil)

func NewMockTaskRepo(seed ...*model.Task) *MockTaskRepo {
	m := &MockTaskRepo{Tasks: map[string]*model.Task{}}
	for _, t := range seed {
		cp := *t
		m.Tasks[t.ID] = &cp
	}
	return m
}

func (m *MockTaskRepo) Save(ctx context.Context, tx repository.Tx, t *model.Task) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, t)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.Tasks[t.ID] = &cp
	return nil
}

func (m *MockTaskRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.Tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *MockTaskRepo) ListPending(ctx context.Context, tx repository.Tx, kind model.TaskKind, limit int) ([]*model.Task, error) {
	if m.ListPendingFunc != nil {
		return m.ListPendingFunc(ctx, tx, kind, limit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Task
	for _, t := range m.Tasks {
		if t.Kind == kind && t.Status == model.TaskStatusPending && len(out) < limit {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockTaskRepo) Requeue(ctx context.Context, tx repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.Tasks[id]
	if !ok || t.Status != model.TaskStatusFailed {
		return domain.ErrNotFound
	}
	t.Status = model.TaskStatusPending
	t.AttemptCount = 0
	return nil
}

func (m *MockTaskRepo) ReclaimStale(ctx context.Context, tx repository.Tx, olderThan time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := time.Now().Add(-olderThan)
	n := 0
	for _, t := range m.Tasks {
		if t.Status == model.TaskStatusRunning && t.UpdatedAt.Before(cutoff) {
			t.Status = model.TaskStatusPending
			n++
		}
	}
	return n, nil
}

func (m *MockTaskRepo) get(id string) *model.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Tasks[id]
}

func (m *MockTaskRepo) byKind(kind model.TaskKind) []*model.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Task
	for _, t := range m.Tasks {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

type MockRunRepo struct {
	mu   sync.Mutex
	Runs []*model.AgentRun

	RecordFunc func(ctx context.Context, tx repository.Tx, run *model.AgentRun) error
}

var _ repository.AgentRunRepository = (*MockRunRepo)(nil)

func (m *MockRunRepo) Record(ctx context.Context, tx repository.Tx, run *model.AgentRun) error {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, tx, run)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *run
	m.Runs = append(m.Runs, &cp)
	return nil
}

func (m *MockRunRepo) ListByCycle(ctx context.Context, tx repository.Tx, cycleID string) ([]*model.AgentRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.AgentRun
	for _, r := range m.Runs {
		if r.CycleID == cycleID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MockRunRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Runs)
}

type MockArticleRepo struct {
	mu       sync.Mutex
	Articles map[string]*model.Article
}

var _ repository.ArticleRepository = (*MockArticleRepo)(nil)

func NewMockArticleRepo(seed ...*model.Article) *MockArticleRepo {
	m := &MockArticleRepo{Articles: map[string]*model.Article{}}
	for _, a := range seed {
		cp := *a
		m.Articles[a.ID] = &cp
	}
	return m
}

func (m *MockArticleRepo) Save(ctx context.Context, tx repository.Tx, a *model.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	m.Articles[a.ID] = &cp
	return nil
}

func (m *MockArticleRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.Articles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *MockArticleRepo) FindBySourceURL(ctx context.Context, tx repository.Tx, sourceURL string) (*model.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.Articles {
		if a.SourceURL == sourceURL {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockArticleRepo) List(ctx context.Context, tx repository.Tx, filter repository.ArticleFilter) ([]*model.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Article
	for _, a := range m.Articles {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MockArticleRepo) get(id string) *model.Article {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Articles[id]
}

// recordingAI answers every call and remembers which texts it was given.
type recordingAI struct {
	mu    sync.Mutex
	Texts []string
}

var _ adapter.AIProvider = (*recordingAI)(nil)

func (r *recordingAI) record(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Texts = append(r.Texts, text)
}

func (r *recordingAI) Summarize(ctx context.Context, text string) (string, error) {
	r.record(text)
	return "a short summary", nil
}

func (r *recordingAI) ClassifySentiment(ctx context.Context, text string) (adapter.Sentiment, error) {
	r.record(text)
	return adapter.Sentiment{Label: "neutral"}, nil
}

func (r *recordingAI) Categorize(ctx context.Context, text string) (string, error) {
	r.record(text)
	return "world", nil
}

func (r *recordingAI) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.Texts...)
}

// MockTxManager runs the callback without a real transaction. Assign
// WithTxFunc to observe or fail transactional writes.
type MockTxManager struct {
	WithTxFunc func(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error
}

var _ repository.TransactionManager = (*MockTxManager)(nil)

func (m *MockTxManager) WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, txOpt, fn)
	}
	return fn(ctx, repository.NoTX)
}

// =============================
// Agents and sink
// =============================

// StubAgent answers from a per-payload script; unscripted payloads succeed.
type StubAgent struct {
	name string
	kind model.TaskKind

	mu     sync.Mutex
	Script map[string]agent.Result // by task payload
	Seen   []string
}

var _ agent.Agent = (*StubAgent)(nil)

func NewStubAgent(name string, kind model.TaskKind) *StubAgent {
	return &StubAgent{name: name, kind: kind, Script: map[string]agent.Result{}}
}

func (s *StubAgent) Name() string         { return s.name }
func (s *StubAgent) Kind() model.TaskKind { return s.kind }

func (s *StubAgent) Run(ctx context.Context, task *model.Task) agent.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Seen = append(s.Seen, task.Payload)
	if res, ok := s.Script[task.Payload]; ok {
		return res
	}
	return agent.Result{Outcome: model.OutcomeSuccess}
}

func (s *StubAgent) runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Seen)
}

type MockSink struct {
	mu      sync.Mutex
	Reports []*model.CycleReport
	Err     error
}

func (m *MockSink) Store(ctx context.Context, report *model.CycleReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Reports = append(m.Reports, report)
	return nil
}
