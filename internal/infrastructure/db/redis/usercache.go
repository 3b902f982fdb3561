package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/commerceos/customer-system/internal/core/domain"
)

const defaultSummaryTTL = 5 * time.Minute

// SummaryCache is a short-TTL Redis cache of resolved user summaries.
// Key format: user:summary:<user_id>. Only positive results are cached;
// an id the identity service did not know stays uncached so it is asked
// again next time.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache creates a SummaryCache wrapping the given Redis client.
// A non-positive ttl falls back to the default.
func NewSummaryCache(client *redis.Client, ttl time.Duration) *SummaryCache {
	if ttl <= 0 {
		ttl = defaultSummaryTTL
	}
	return &SummaryCache{client: client, ttl: ttl}
}

// GetMany returns the cached summaries for ids plus the ids that missed.
func (c *SummaryCache) GetMany(ctx context.Context, ids []string) (map[string]domain.UserSummary, []string, error) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.key(id)
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, nil, fmt.Errorf("summary cache get: %w", err)
	}

	hits := make(map[string]domain.UserSummary)
	var missing []string
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			missing = append(missing, ids[i])
			continue
		}
		var u domain.UserSummary
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			missing = append(missing, ids[i])
			continue
		}
		hits[u.ID] = u
	}
	return hits, missing, nil
}

// SetMany stores the given summaries, each expiring after the cache TTL.
func (c *SummaryCache) SetMany(ctx context.Context, summaries []domain.UserSummary) error {
	pipe := c.client.Pipeline()
	for _, u := range summaries {
		raw, err := json.Marshal(u)
		if err != nil {
			return fmt.Errorf("summary cache marshal: %w", err)
		}
		pipe.Set(ctx, c.key(u.ID), raw, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("summary cache set: %w", err)
	}
	return nil
}

func (c *SummaryCache) key(id string) string {
	return "user:summary:" + id
}
