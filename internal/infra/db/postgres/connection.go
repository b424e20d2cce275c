package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"newsroom-agents/internal/domain"
)

// NewPgxPool opens a bounded connection pool and verifies the backend is
// actually reachable. An unreachable backend maps to
// domain.ErrPersistenceUnavailable so callers can treat it as
// cycle-fatal without killing the process.
func NewPgxPool(ctx context.Context, url string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	pool, err := pgxpool.ConnectConfig(connectCtx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
	}
	return pool, nil
}
