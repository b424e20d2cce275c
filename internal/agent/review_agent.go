package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"newsroom-agents/internal/domain/model"
	"newsroom-agents/internal/domain/ports/repository"
)

// Compile-time check
var _ Agent = (*ReviewAgent)(nil)

// Policy is the deployment-tunable quality gate the review agent applies.
type Policy struct {
	MinContentLength int
	BannedTerms      []string
}

// ReviewAgent moves an article from unreviewed to approved or rejected.
// The decision is mechanical: content long enough and free of banned terms
// passes. An article that has already been reviewed is left exactly as is.
type ReviewAgent struct {
	articles repository.ArticleRepository
	policy   Policy
	log      *zerolog.Logger
}

func NewReviewAgent(articles repository.ArticleRepository, policy Policy, logger *zerolog.Logger) *ReviewAgent {
	l := logger.With().Str("component", "ReviewAgent").Logger()
	return &ReviewAgent{articles: articles, policy: policy, log: &l}
}

func (a *ReviewAgent) Name() string { return "review" }

func (a *ReviewAgent) Kind() model.TaskKind { return model.TaskKindReview }

func (a *ReviewAgent) Run(ctx context.Context, task *model.Task) Result {
	article, err := a.articles.FindByID(ctx, nil, task.Payload)
	if err != nil {
		return failure(fmt.Errorf("load article %s: %w", task.Payload, err))
	}

	if article.Reviewed() {
		return Result{
			Outcome: model.OutcomeSuccess,
			Detail:  fmt.Sprintf("already %s", article.ReviewStatus),
		}
	}

	status, note := a.evaluate(article)
	article.ReviewStatus = status
	article.ReviewNote = note
	if err := a.articles.Save(ctx, nil, article); err != nil {
		return failure(fmt.Errorf("save review decision: %w", err))
	}

	a.log.Info().Str("article_id", article.ID).Str("decision", string(status)).Str("note", note).Msg("article reviewed")
	res := Result{Outcome: model.OutcomeSuccess, Detail: note}
	if status == model.ReviewStatusApproved {
		res.Produced = []string{article.ID}
	}
	return res
}

func (a *ReviewAgent) evaluate(article *model.Article) (model.ReviewStatus, string) {
	if len(article.RawContent) < a.policy.MinContentLength {
		return model.ReviewStatusRejected,
			fmt.Sprintf("rejected: content below %d characters", a.policy.MinContentLength)
	}
	haystack := strings.ToLower(article.Title + " " + article.RawContent)
	for _, term := range a.policy.BannedTerms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" && strings.Contains(haystack, term) {
			return model.ReviewStatusRejected,
				fmt.Sprintf("rejected: contains banned term %q", term)
		}
	}
	return model.ReviewStatusApproved, "approved: passed content policy"
}
