package catalog

import (
	"context"
	"encoding/json"
	"time"

	"pcbanai/core/internal/domain"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Cache wraps a Source with a redis-backed revalidation window so repeated
// component queries inside the window never hit Postgres. Cache failures are
// never surfaced; they just fall through to the inner source.
type Cache struct {
	inner       Source
	redisClient *redis.Client
	ttl         time.Duration
	keyPrefix   string
}

func NewCache(inner Source, redisClient *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		inner:       inner,
		redisClient: redisClient,
		ttl:         ttl,
		keyPrefix:   "pcbanai:components:",
	}
}

func (c *Cache) Components(ctx context.Context, filter domain.Category) ([]domain.Component, error) {
	key := c.key(filter)

	cached, err := c.redisClient.Get(ctx, key).Result()
	if err == nil {
		var components []domain.Component
		if err := json.Unmarshal([]byte(cached), &components); err == nil {
			return components, nil
		}
		log.Warnf("Discarding undecodable cache entry %s", key)
	} else if err != redis.Nil {
		log.Warnf("Cache read failed for %s: %v", key, err)
	}

	components, err := c.inner.Components(ctx, filter)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(components)
	if err != nil {
		log.Warnf("Failed to encode components for cache key %s: %v", key, err)
		return components, nil
	}
	if err := c.redisClient.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		log.Warnf("Cache write failed for %s: %v", key, err)
	}

	return components, nil
}

func (c *Cache) key(filter domain.Category) string {
	if filter == "" {
		return c.keyPrefix + "all"
	}
	return c.keyPrefix + filter.String()
}
