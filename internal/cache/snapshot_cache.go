package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/XavierBriggs/fortuna/services/betedge/pkg/contracts"
	"github.com/XavierBriggs/fortuna/services/betedge/pkg/models"
)

// DefaultTTL keeps a cached snapshot for one provider polling interval
const DefaultTTL = 60 * time.Second

// Lookup results reported to the LookupRecorder
const (
	ResultHit   = "hit"
	ResultMiss  = "miss"
	ResultError = "error"
)

// LookupRecorder counts cache hits, misses and errors
type LookupRecorder interface {
	ObserveCacheLookup(result string)
}

// SnapshotCache is a read-through redis cache in front of a SnapshotSource.
// Redis failures never fail a request; the upstream source is used instead.
type SnapshotCache struct {
	client   *redis.Client
	upstream contracts.SnapshotSource
	ttl      time.Duration
	prefix   string
	recorder LookupRecorder
	logger   *zap.Logger
}

// NewSnapshotCache wraps upstream with a redis cache
func NewSnapshotCache(client *redis.Client, upstream contracts.SnapshotSource, ttl time.Duration, prefix string, recorder LookupRecorder, logger *zap.Logger) *SnapshotCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if prefix == "" {
		prefix = "betedge:snapshot"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotCache{
		client:   client,
		upstream: upstream,
		ttl:      ttl,
		prefix:   prefix,
		recorder: recorder,
		logger:   logger.Named("cache"),
	}
}

// NewClient creates a redis client from a redis:// URL
func NewClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

// Key returns the cache key for a sport and market set
func (c *SnapshotCache) Key(sportKey string, markets []string) string {
	return fmt.Sprintf("%s:%s:%s", c.prefix, sportKey, strings.Join(markets, ","))
}

// GetEvents serves the snapshot from redis, falling back to the upstream
// source on a miss and storing what it returns
func (c *SnapshotCache) GetEvents(ctx context.Context, sportKey string, markets []string) ([]models.Event, error) {
	key := c.Key(sportKey, markets)

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var events []models.Event
		jsonErr := json.Unmarshal(data, &events)
		if jsonErr == nil {
			c.observe(ResultHit)
			return events, nil
		}
		c.observe(ResultError)
		c.logger.Warn("discarding undecodable snapshot", zap.String("key", key), zap.Error(jsonErr))
	case errors.Is(err, redis.Nil):
		c.observe(ResultMiss)
	default:
		c.observe(ResultError)
		c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}

	events, err := c.upstream.GetEvents(ctx, sportKey, markets)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(events); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return events, nil
}

// GetSports is not cached
func (c *SnapshotCache) GetSports(ctx context.Context) ([]models.Sport, error) {
	return c.upstream.GetSports(ctx)
}

// Ping checks the upstream source. A cache outage only degrades latency.
func (c *SnapshotCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		c.logger.Warn("redis ping failed", zap.Error(err))
	}
	return c.upstream.Ping(ctx)
}

func (c *SnapshotCache) observe(result string) {
	if c.recorder != nil {
		c.recorder.ObserveCacheLookup(result)
	}
}
