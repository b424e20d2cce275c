package repository

import (
	"context"

	"newsroom-agents/internal/domain/model"
)

// ArticleFilter narrows dashboard listings. Zero values mean "no filter".
type ArticleFilter struct {
	ReviewStatus model.ReviewStatus
	Category     string
	EnrichedOnly bool
	Limit        int
}

type ArticleRepository interface {
	Save(ctx context.Context, tx Tx, a *model.Article) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Article, error)
	FindBySourceURL(ctx context.Context, tx Tx, sourceURL string) (*model.Article, error)
	// List serves the read surface consumed by external dashboards.
	List(ctx context.Context, tx Tx, filter ArticleFilter) ([]*model.Article, error)
}
