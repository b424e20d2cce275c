//go:build !integration

package agent_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"newsroom-agents/internal/agent"
	"newsroom-agents/internal/domain/model"
	ai "newsroom-agents/internal/infra/adapters/ai"
)

func enrichTask(t *testing.T, articleID string) *model.Task {
	t.Helper()
	task, err := model.NewTask(model.TaskKindEnrich, articleID)
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	return task
}

func approvedArticle(t *testing.T, repo *MockArticleRepo) *model.Article {
	t.Helper()
	a := seedArticle(t, repo, "approved", "A long enough body about the election and parliament votes.")
	a.ReviewStatus = model.ReviewStatusApproved
	if err := repo.Save(context.Background(), nil, a); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return a
}

func TestContentAgent_Enriches(t *testing.T) {
	t.Parallel()
	repo := NewMockArticleRepo()
	art := approvedArticle(t, repo)
	mockAI := &MockAI{
		CategoryFunc: func(context.Context, string) (string, error) { return "politics", nil },
	}
	a := agent.NewContentAgent(repo, mockAI, 5*time.Second, nopLogger())

	res := a.Run(context.Background(), enrichTask(t, art.ID))
	if res.Outcome != model.OutcomeSuccess {
		t.Fatalf("want success, got %s (err %v)", res.Outcome, res.Err)
	}
	stored, _ := repo.FindByID(context.Background(), nil, art.ID)
	if !stored.Enriched() {
		t.Fatalf("article not enriched: %+v", stored)
	}
	if *stored.Category != "politics" || *stored.Summary != "a short summary" {
		t.Fatalf("wrong enrichment: category=%v summary=%v", *stored.Category, *stored.Summary)
	}
}

func TestContentAgent_RefusesUnapproved(t *testing.T) {
	t.Parallel()
	repo := NewMockArticleRepo()
	unreviewed := seedArticle(t, repo, "pending", "body text")
	rejected := seedArticle(t, repo, "bad", "body text")
	rejected.ReviewStatus = model.ReviewStatusRejected
	_ = repo.Save(context.Background(), nil, rejected)

	mockAI := &MockAI{}
	a := agent.NewContentAgent(repo, mockAI, 5*time.Second, nopLogger())

	for _, art := range []*model.Article{unreviewed, rejected} {
		res := a.Run(context.Background(), enrichTask(t, art.ID))
		if res.Outcome != model.OutcomeSkipped {
			t.Fatalf("article %s: want skipped, got %s", art.ReviewStatus, res.Outcome)
		}
	}
	if mockAI.Calls != 0 {
		t.Fatalf("no AI call may happen for unapproved articles, got %d", mockAI.Calls)
	}
}

func TestContentAgent_AlreadyEnrichedSkippedUnlessForced(t *testing.T) {
	t.Parallel()
	repo := NewMockArticleRepo()
	art := approvedArticle(t, repo)
	summary, label, score, cat := "old summary", "neutral", 0.0, "world"
	art.Summary, art.SentimentLabel, art.SentimentScore, art.Category = &summary, &label, &score, &cat
	_ = repo.Save(context.Background(), nil, art)

	mockAI := &MockAI{
		SummarizeFunc: func(context.Context, string) (string, error) { return "new summary", nil },
	}
	a := agent.NewContentAgent(repo, mockAI, 5*time.Second, nopLogger())

	res := a.Run(context.Background(), enrichTask(t, art.ID))
	if res.Outcome != model.OutcomeSkipped {
		t.Fatalf("want skipped, got %s", res.Outcome)
	}
	if mockAI.Calls != 0 {
		t.Fatal("skip must not call the AI provider")
	}

	forced := enrichTask(t, art.ID)
	forced.Force = true
	res = a.Run(context.Background(), forced)
	if res.Outcome != model.OutcomeSuccess {
		t.Fatalf("forced re-enrichment: want success, got %s (err %v)", res.Outcome, res.Err)
	}
	stored, _ := repo.FindByID(context.Background(), nil, art.ID)
	if *stored.Summary != "new summary" {
		t.Fatalf("forced run must overwrite, got %q", *stored.Summary)
	}
}

func TestContentAgent_AIErrorIsFailure(t *testing.T) {
	t.Parallel()
	repo := NewMockArticleRepo()
	art := approvedArticle(t, repo)
	mockAI := &MockAI{
		SummarizeFunc: func(context.Context, string) (string, error) {
			return "", errors.New("provider exploded")
		},
	}
	a := agent.NewContentAgent(repo, mockAI, 5*time.Second, nopLogger())

	res := a.Run(context.Background(), enrichTask(t, art.ID))
	if res.Outcome != model.OutcomeFailure {
		t.Fatalf("want failure, got %s", res.Outcome)
	}
	stored, _ := repo.FindByID(context.Background(), nil, art.ID)
	if stored.Enriched() {
		t.Fatal("failed enrichment must not write partial fields")
	}
}

func TestContentAgent_FallbackProviderStillEnriches(t *testing.T) {
	t.Parallel()
	repo := NewMockArticleRepo()
	art := approvedArticle(t, repo)
	a := agent.NewContentAgent(repo, ai.NewFallbackProvider(), 5*time.Second, nopLogger())

	res := a.Run(context.Background(), enrichTask(t, art.ID))
	if res.Outcome != model.OutcomeSuccess {
		t.Fatalf("fallback enrichment must succeed, got %s (err %v)", res.Outcome, res.Err)
	}
	stored, _ := repo.FindByID(context.Background(), nil, art.ID)
	if stored.Summary == nil || stored.SentimentLabel == nil || stored.SentimentScore == nil || stored.Category == nil {
		t.Fatalf("all enrichment fields must be non-null, got %+v", stored)
	}
	if *stored.Category != "politics" {
		t.Fatalf("keyword category should detect politics, got %s", *stored.Category)
	}
}
