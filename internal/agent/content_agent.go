package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"newsroom-agents/internal/domain/model"
	"newsroom-agents/internal/domain/ports/adapter"
	"newsroom-agents/internal/domain/ports/repository"
)

// Compile-time check
var _ Agent = (*ContentAgent)(nil)

// ContentAgent enriches an approved article with a summary, a sentiment and
// a category. It refuses to enrich anything not approved, and it will not
// redo work that is already there unless the task carries the force flag.
type ContentAgent struct {
	articles  repository.ArticleRepository
	ai        adapter.AIProvider
	aiTimeout time.Duration
	log       *zerolog.Logger
}

func NewContentAgent(articles repository.ArticleRepository, ai adapter.AIProvider, aiTimeout time.Duration, logger *zerolog.Logger) *ContentAgent {
	l := logger.With().Str("component", "ContentAgent").Logger()
	return &ContentAgent{articles: articles, ai: ai, aiTimeout: aiTimeout, log: &l}
}

func (a *ContentAgent) Name() string { return "content" }

func (a *ContentAgent) Kind() model.TaskKind { return model.TaskKindEnrich }

func (a *ContentAgent) Run(ctx context.Context, task *model.Task) Result {
	article, err := a.articles.FindByID(ctx, nil, task.Payload)
	if err != nil {
		return failure(fmt.Errorf("load article %s: %w", task.Payload, err))
	}

	if article.ReviewStatus != model.ReviewStatusApproved {
		return skipped(fmt.Sprintf("article is %s, not approved", article.ReviewStatus))
	}
	if article.Enriched() && !task.Force {
		return skipped("already enriched")
	}

	summary, err := a.callSummarize(ctx, article.RawContent)
	if err != nil {
		return failure(fmt.Errorf("summarize: %w", err))
	}
	sentiment, err := a.callSentiment(ctx, article.RawContent)
	if err != nil {
		return failure(fmt.Errorf("classify sentiment: %w", err))
	}
	category, err := a.callCategorize(ctx, article.RawContent)
	if err != nil {
		return failure(fmt.Errorf("categorize: %w", err))
	}

	article.Summary = &summary
	article.SentimentLabel = &sentiment.Label
	article.SentimentScore = &sentiment.Score
	article.Category = &category
	if err := a.articles.Save(ctx, nil, article); err != nil {
		return failure(fmt.Errorf("save enrichment: %w", err))
	}

	a.log.Info().
		Str("article_id", article.ID).
		Str("category", category).
		Str("sentiment", sentiment.Label).
		Msg("article enriched")
	return Result{
		Outcome:  model.OutcomeSuccess,
		Produced: []string{article.ID},
		Detail:   fmt.Sprintf("enriched as %s/%s", category, sentiment.Label),
	}
}

func (a *ContentAgent) callSummarize(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.aiTimeout)
	defer cancel()
	return a.ai.Summarize(ctx, text)
}

func (a *ContentAgent) callSentiment(ctx context.Context, text string) (adapter.Sentiment, error) {
	ctx, cancel := context.WithTimeout(ctx, a.aiTimeout)
	defer cancel()
	return a.ai.ClassifySentiment(ctx, text)
}

func (a *ContentAgent) callCategorize(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.aiTimeout)
	defer cancel()
	return a.ai.Categorize(ctx, text)
}
