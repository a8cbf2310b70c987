package transaction

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const summaryCachePrefix = "summary:v1:"

// SummaryCache keeps per-user summary aggregations in Redis. Every failure
// is non-fatal: a miss or a Redis error just sends the caller back to the
// store, so responses are identical with and without the cache.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewSummaryCache creates a cache backed by the provided Redis client.
func NewSummaryCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *SummaryCache {
	return &SummaryCache{client: client, ttl: ttl, logger: logger}
}

// Get retrieves the cached summary for a user.
func (c *SummaryCache) Get(ctx context.Context, userID string) ([]SummaryRow, bool) {
	data, err := c.client.Get(ctx, summaryCachePrefix+userID).Result()
	if err != nil {
		return nil, false
	}
	var rows []SummaryRow
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		return nil, false
	}
	return rows, true
}

// Set stores the summary for a user.
func (c *SummaryCache) Set(ctx context.Context, userID string, rows []SummaryRow) {
	data, err := json.Marshal(rows)
	if err != nil {
		c.logger.Warn("encode summary cache entry", "user_id", userID, "error", err)
		return
	}
	if err := c.client.Set(ctx, summaryCachePrefix+userID, data, c.ttl).Err(); err != nil {
		c.logger.Warn("write summary cache entry", "user_id", userID, "error", err)
	}
}

// Invalidate drops the cached summary for a user after a write.
func (c *SummaryCache) Invalidate(ctx context.Context, userID string) {
	if err := c.client.Del(ctx, summaryCachePrefix+userID).Err(); err != nil {
		c.logger.Warn("invalidate summary cache entry", "user_id", userID, "error", err)
	}
}
