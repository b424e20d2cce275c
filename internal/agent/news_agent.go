package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"newsroom-agents/internal/domain"
	"newsroom-agents/internal/domain/model"
	"newsroom-agents/internal/domain/ports/adapter"
	"newsroom-agents/internal/domain/ports/repository"
	"newsroom-agents/internal/infra/metrics"
)

// Compile-time check
var _ Agent = (*NewsAgent)(nil)

// NewsAgent ingests one source URL per task: fetch, extract, persist as an
// unreviewed article. A URL that already has an article is skipped so
// re-submitted sources stay idempotent.
type NewsAgent struct {
	articles repository.ArticleRepository
	fetcher  adapter.SourceFetcher
	log      *zerolog.Logger
}

func NewNewsAgent(articles repository.ArticleRepository, fetcher adapter.SourceFetcher, logger *zerolog.Logger) *NewsAgent {
	l := logger.With().Str("component", "NewsAgent").Logger()
	return &NewsAgent{articles: articles, fetcher: fetcher, log: &l}
}

func (a *NewsAgent) Name() string { return "news" }

func (a *NewsAgent) Kind() model.TaskKind { return model.TaskKindIngest }

func (a *NewsAgent) Run(ctx context.Context, task *model.Task) Result {
	sourceURL := strings.TrimSpace(task.Payload)
	if sourceURL == "" {
		return failure(fmt.Errorf("%w: empty source url", domain.ErrInvalidInput))
	}

	existing, err := a.articles.FindBySourceURL(ctx, nil, sourceURL)
	switch {
	case err == nil && existing != nil:
		a.log.Debug().Str("url", sourceURL).Str("article_id", existing.ID).Msg("source already ingested")
		return skipped("source url already ingested")
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return failure(fmt.Errorf("duplicate check: %w", err))
	}

	content, err := a.fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return failure(fmt.Errorf("fetch source: %w", err))
	}
	if strings.TrimSpace(content.Text) == "" {
		return failure(fmt.Errorf("%w: source yielded no content", domain.ErrInvalidInput))
	}

	article, err := model.NewArticle(content.URL, content.Title, content.Text)
	if err != nil {
		return failure(err)
	}
	if err := a.articles.Save(ctx, nil, article); err != nil {
		return failure(fmt.Errorf("save article: %w", err))
	}

	metrics.IncArticleIngested()
	a.log.Info().Str("article_id", article.ID).Str("url", sourceURL).Msg("article ingested")
	return Result{
		Outcome:  model.OutcomeSuccess,
		Produced: []string{article.ID},
		Detail:   fmt.Sprintf("ingested %s", sourceURL),
	}
}
