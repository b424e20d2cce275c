package model

import (
	"time"

	"github.com/google/uuid"

	"newsroom-agents/internal/domain"
)

type ReviewStatus string

const (
	ReviewStatusUnreviewed ReviewStatus = "unreviewed"
	ReviewStatusApproved   ReviewStatus = "approved"
	ReviewStatusRejected   ReviewStatus = "rejected"
)

// Article is the durable unit the agents cooperate on. Enrichment fields are
// nil until the content agent fills them; only the review agent moves
// ReviewStatus off "unreviewed". The core never deletes articles.
type Article struct {
	ID             string
	SourceURL      string
	Title          string
	RawContent     string
	Summary        *string
	SentimentLabel *string
	SentimentScore *float64
	Category       *string
	ReviewStatus   ReviewStatus
	ReviewNote     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewArticle(sourceURL, title, rawContent string) (*Article, error) {
	if sourceURL == "" || rawContent == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Article{
		ID:           uuid.NewString(),
		SourceURL:    sourceURL,
		Title:        title,
		RawContent:   rawContent,
		ReviewStatus: ReviewStatusUnreviewed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (a *Article) Reviewed() bool {
	return a.ReviewStatus != ReviewStatusUnreviewed
}

func (a *Article) Enriched() bool {
	return a.Summary != nil && a.SentimentScore != nil && a.Category != nil
}
