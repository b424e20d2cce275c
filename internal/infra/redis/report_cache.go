package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"newsroom-agents/internal/domain"
	"newsroom-agents/internal/domain/model"
)

const latestReportKey = "cycle_report:latest"

// ReportCache keeps the most recent cycle reports where dashboards can read
// them without touching the orchestrator or the database.
type ReportCache struct {
	client RedisClient
	ttl    time.Duration
}

func NewReportCache(client RedisClient, ttl time.Duration) *ReportCache {
	return &ReportCache{client: client, ttl: ttl}
}

func (c *ReportCache) Store(ctx context.Context, report *model.CycleReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, "cycle_report:"+report.CycleID, data, c.ttl); err != nil {
		return err
	}
	return c.client.Set(ctx, latestReportKey, data, c.ttl)
}

func (c *ReportCache) Latest(ctx context.Context) (*model.CycleReport, error) {
	data, err := c.client.Get(ctx, latestReportKey)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var report model.CycleReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, err
	}
	return &report, nil
}
