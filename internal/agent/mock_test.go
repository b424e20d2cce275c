//go:build !integration

package agent_test

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"newsroom-agents/internal/domain"
	"newsroom-agents/internal/domain/model"
	"newsroom-agents/internal/domain/ports/adapter"
	"newsroom-agents/internal/domain/ports/repository"
)

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// =============================
// Repositories
// =============================

// MockArticleRepo keeps articles in a map; Func fields override behavior.
type MockArticleRepo struct {
	mu       sync.Mutex
	Articles map[string]*model.Article // by ID

	SaveFunc            func(ctx context.Context, tx repository.Tx, a *model.Article) error
	FindByIDFunc        func(ctx context.Context, tx repository.Tx, id string) (*model.Article, error)
	FindBySourceURLFunc func(ctx context.Context, tx repository.Tx, sourceURL string) (*model.Article, error)
	ListFunc            func(ctx context.Context, tx repository.Tx, filter repository.ArticleFilter) ([]*model.Article, error)
}

var _ repository.ArticleRepository = (*MockArticleRepo)(nil)

func NewMockArticleRepo() *MockArticleRepo {
	return &MockArticleRepo{Articles: map[string]*model.Article{}}
}

func (m *MockArticleRepo) Save(ctx context.Context, tx repository.Tx, a *model.Article) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, a)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	m.Articles[a.ID] = &cp
	return nil
}

func (m *MockArticleRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Article, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, tx, id)
	}
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
	if m.FindBySourceURLFunc != nil {
		return m.FindBySourceURLFunc(ctx, tx, sourceURL)
	}
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
	if m.ListFunc != nil {
		return m.ListFunc(ctx, tx, filter)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Article, 0, len(m.Articles))
	for _, a := range m.Articles {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

// =============================
// Adapters
// =============================

// MockFetcher returns canned content per URL.
type MockFetcher struct {
	FetchFunc func(ctx context.Context, rawURL string) (*adapter.SourceContent, error)
}

var _ adapter.SourceFetcher = (*MockFetcher)(nil)

func (m *MockFetcher) Fetch(ctx context.Context, rawURL string) (*adapter.SourceContent, error) {
	return m.FetchFunc(ctx, rawURL)
}

// MockAI answers with fixed enrichment values unless overridden.
type MockAI struct {
	SummarizeFunc func(ctx context.Context, text string) (string, error)
	SentimentFunc func(ctx context.Context, text string) (adapter.Sentiment, error)
	CategoryFunc  func(ctx context.Context, text string) (string, error)

	mu    sync.Mutex
	Calls int
}

var _ adapter.AIProvider = (*MockAI)(nil)

func (m *MockAI) bump() {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
}

func (m *MockAI) Summarize(ctx context.Context, text string) (string, error) {
	m.bump()
	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, text)
	}
	return "a short summary", nil
}

func (m *MockAI) ClassifySentiment(ctx context.Context, text string) (adapter.Sentiment, error) {
	m.bump()
	if m.SentimentFunc != nil {
		return m.SentimentFunc(ctx, text)
	}
	return adapter.Sentiment{Label: "neutral", Score: 0}, nil
}

func (m *MockAI) Categorize(ctx context.Context, text string) (string, error) {
	m.bump()
	if m.CategoryFunc != nil {
		return m.CategoryFunc(ctx, text)
	}
	return "world", nil
}
