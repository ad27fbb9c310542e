package store

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/jobs"
	"github.com/jobscout/jobscout/internal/schema"
)

const defaultCacheTTL = 15 * time.Minute

// Cache is an optional Redis cache for provider search results. Identical
// interpreted intents within the TTL reuse the provider response instead of
// hitting the job board again.
type Cache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCache creates and verifies a Redis-backed search cache.
func NewCache(ctx context.Context, redisURL string, ttl time.Duration, logger *zap.Logger) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Cache{rdb: rdb, ttl: ttl, logger: logger}, nil
}

// SearchKey derives a stable cache key from the interpreted intent.
func SearchKey(intent *schema.SearchIntent) string {
	payload, err := json.Marshal(intent)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(payload)
	return fmt.Sprintf("jobscout:search:%x", sum[:])
}

// GetSearch returns cached postings for the key, or nil on miss. Cache
// failures are logged and treated as misses.
func (c *Cache) GetSearch(ctx context.Context, key string) *jobs.Postings {
	if c == nil || key == "" {
		return nil
	}

	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("search cache read failed", zap.Error(err))
		}
		return nil
	}

	var postings jobs.Postings
	if err := json.Unmarshal(data, &postings); err != nil {
		c.logger.Warn("search cache entry is corrupt", zap.Error(err))
		return nil
	}

	return &postings
}

// SetSearch stores postings under the key. Failures are logged, not returned:
// the cache never fails a pipeline run.
func (c *Cache) SetSearch(ctx context.Context, key string, postings *jobs.Postings) {
	if c == nil || key == "" || postings == nil {
		return
	}

	data, err := json.Marshal(postings)
	if err != nil {
		c.logger.Warn("search cache encode failed", zap.Error(err))
		return
	}

	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("search cache write failed", zap.Error(err))
	}
}

func (c *Cache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
