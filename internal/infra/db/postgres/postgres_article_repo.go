package postgres

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"newsroom-agents/internal/domain"
	"newsroom-agents/internal/domain/model"
	"newsroom-agents/internal/domain/ports/repository"
)

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

type ArticleRepo struct {
	pool *pgxpool.Pool
}

func NewArticleRepo(pool *pgxpool.Pool) *ArticleRepo {
	return &ArticleRepo{pool: pool}
}

const articleColumns = `id, source_url, title, raw_content, summary, sentiment_label,
       sentiment_score, category, review_status, review_note, created_at, updated_at`

func (r *ArticleRepo) Save(ctx context.Context, tx repository.Tx, a *model.Article) error {
	a.UpdatedAt = time.Now()
	const q = `
INSERT INTO articles (
  id, source_url, title, raw_content, summary, sentiment_label,
  sentiment_score, category, review_status, review_note, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
ON CONFLICT (id) DO UPDATE SET
  summary=$5, sentiment_label=$6, sentiment_score=$7, category=$8,
  review_status=$9, review_note=$10, updated_at=$12;`

	ex, err := pick(r.pool, tx)
	if err != nil {
		return err
	}
	_, err = ex.Exec(ctx, q,
		a.ID, a.SourceURL, a.Title, a.RawContent, a.Summary, a.SentimentLabel,
		a.SentimentScore, a.Category, a.ReviewStatus, a.ReviewNote, a.CreatedAt, a.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrAlreadyExists
	}
	return err
}

func (r *ArticleRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Article, error) {
	ex, err := pick(r.pool, tx)
	if err != nil {
		return nil, err
	}
	row := ex.QueryRow(ctx, `SELECT `+articleColumns+` FROM articles WHERE id=$1;`, id)
	return scanArticle(row)
}

func (r *ArticleRepo) FindBySourceURL(ctx context.Context, tx repository.Tx, sourceURL string) (*model.Article, error) {
	ex, err := pick(r.pool, tx)
	if err != nil {
		return nil, err
	}
	row := ex.QueryRow(ctx, `SELECT `+articleColumns+` FROM articles WHERE source_url=$1;`, sourceURL)
	return scanArticle(row)
}

// List builds the dashboard query dynamically; filters are optional so the
// SQL is assembled with squirrel instead of hand-numbered placeholders.
func (r *ArticleRepo) List(ctx context.Context, tx repository.Tx, filter repository.ArticleFilter) ([]*model.Article, error) {
	b := sq.Select(articleColumns).
		From("articles").
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.ReviewStatus != "" {
		b = b.Where(sq.Eq{"review_status": string(filter.ReviewStatus)})
	}
	if filter.Category != "" {
		b = b.Where(sq.Eq{"category": filter.Category})
	}
	if filter.EnrichedOnly {
		b = b.Where("summary IS NOT NULL AND sentiment_score IS NOT NULL AND category IS NOT NULL")
	}
	if filter.Limit > 0 {
		b = b.Limit(uint64(filter.Limit))
	}

	q, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	ex, err := pick(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanArticle(row pgx.Row) (*model.Article, error) {
	var a model.Article
	var status string
	err := row.Scan(
		&a.ID, &a.SourceURL, &a.Title, &a.RawContent, &a.Summary, &a.SentimentLabel,
		&a.SentimentScore, &a.Category, &status, &a.ReviewNote, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	a.ReviewStatus = model.ReviewStatus(status)
	return &a, nil
}
