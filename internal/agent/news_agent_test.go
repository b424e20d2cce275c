//go:build !integration

package agent_test

import (
	"context"
	"errors"
	"testing"

	"newsroom-agents/internal/agent"
	"newsroom-agents/internal/domain/model"
	"newsroom-agents/internal/domain/ports/adapter"
)

func ingestTask(t *testing.T, url string) *model.Task {
	t.Helper()
	task, err := model.NewTask(model.TaskKindIngest, url)
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	return task
}

func TestNewsAgent_IngestsArticle(t *testing.T) {
	t.Parallel()
	repo := NewMockArticleRepo()
	fetcher := &MockFetcher{FetchFunc: func(_ context.Context, rawURL string) (*adapter.SourceContent, error) {
		return &adapter.SourceContent{URL: rawURL, Title: "Headline", Text: "Body of the story."}, nil
	}}
	a := agent.NewNewsAgent(repo, fetcher, nopLogger())

	res := a.Run(context.Background(), ingestTask(t, "https://example.com/story"))
	if res.Outcome != model.OutcomeSuccess {
		t.Fatalf("want success, got %s (err %v)", res.Outcome, res.Err)
	}
	if len(res.Produced) != 1 {
		t.Fatalf("want one produced article id, got %v", res.Produced)
	}
	stored, err := repo.FindByID(context.Background(), nil, res.Produced[0])
	if err != nil {
		t.Fatalf("article not persisted: %v", err)
	}
	if stored.ReviewStatus != model.ReviewStatusUnreviewed {
		t.Fatalf("new article must be unreviewed, got %s", stored.ReviewStatus)
	}
	if stored.Title != "Headline" || stored.RawContent != "Body of the story." {
		t.Fatalf("stored fields wrong: %+v", stored)
	}
}

func TestNewsAgent_DuplicateURLSkipped(t *testing.T) {
	t.Parallel()
	repo := NewMockArticleRepo()
	existing, _ := model.NewArticle("https://example.com/story", "Old", "Old body.")
	_ = repo.Save(context.Background(), nil, existing)

	fetched := false
	fetcher := &MockFetcher{FetchFunc: func(_ context.Context, rawURL string) (*adapter.SourceContent, error) {
		fetched = true
		return &adapter.SourceContent{URL: rawURL, Title: "New", Text: "New body."}, nil
	}}
	a := agent.NewNewsAgent(repo, fetcher, nopLogger())

	res := a.Run(context.Background(), ingestTask(t, "https://example.com/story"))
	if res.Outcome != model.OutcomeSkipped {
		t.Fatalf("want skipped, got %s", res.Outcome)
	}
	if fetched {
		t.Fatal("duplicate must be detected before fetching")
	}
	if len(repo.Articles) != 1 {
		t.Fatalf("no second article may be written, have %d", len(repo.Articles))
	}
}

func TestNewsAgent_FetchErrorIsFailure(t *testing.T) {
	t.Parallel()
	repo := NewMockArticleRepo()
	fetcher := &MockFetcher{FetchFunc: func(context.Context, string) (*adapter.SourceContent, error) {
		return nil, errors.New("connection refused")
	}}
	a := agent.NewNewsAgent(repo, fetcher, nopLogger())

	res := a.Run(context.Background(), ingestTask(t, "https://example.com/down"))
	if res.Outcome != model.OutcomeFailure {
		t.Fatalf("want failure, got %s", res.Outcome)
	}
	if res.Err == nil {
		t.Fatal("failure result must carry the error")
	}
	if len(repo.Articles) != 0 {
		t.Fatal("failed ingest must not persist an article")
	}
}

func TestNewsAgent_EmptyContentIsFailure(t *testing.T) {
	t.Parallel()
	repo := NewMockArticleRepo()
	fetcher := &MockFetcher{FetchFunc: func(_ context.Context, rawURL string) (*adapter.SourceContent, error) {
		return &adapter.SourceContent{URL: rawURL, Title: "Empty", Text: "   "}, nil
	}}
	a := agent.NewNewsAgent(repo, fetcher, nopLogger())

	res := a.Run(context.Background(), ingestTask(t, "https://example.com/empty"))
	if res.Outcome != model.OutcomeFailure {
		t.Fatalf("want failure for empty content, got %s", res.Outcome)
	}
}
