package state

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"pcbanai/core/internal/domain"
)

// Manager persists scrape progress so an interrupted run resumes from the
// last saved page instead of page 1.
type Manager interface {
	LastScrapedPage(ctx context.Context, retailerID string, category domain.RawCategory) (int, error)
	SetLastScrapedPage(ctx context.Context, retailerID string, category domain.RawCategory, page int) error
}

type redisManager struct {
	redisClient *redis.Client
	keyPrefix   string
}

func NewRedisManager(redisClient *redis.Client) Manager {
	return &redisManager{
		redisClient: redisClient,
		keyPrefix:   "pcbanai:scrape:page:",
	}
}

func (m *redisManager) key(retailerID string, category domain.RawCategory) string {
	return m.keyPrefix + retailerID + ":" + category.String()
}

func (m *redisManager) LastScrapedPage(ctx context.Context, retailerID string, category domain.RawCategory) (int, error) {
	val, err := m.redisClient.Get(ctx, m.key(retailerID, category)).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil // No progress saved yet
		}
		return 0, fmt.Errorf("failed to get scrape progress for %s/%s: %w", retailerID, category, err)
	}

	page, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("failed to parse scrape progress for %s/%s: %w", retailerID, category, err)
	}
	return page, nil
}

func (m *redisManager) SetLastScrapedPage(ctx context.Context, retailerID string, category domain.RawCategory, page int) error {
	err := m.redisClient.Set(ctx, m.key(retailerID, category), page, 0).Err() // No expiration
	if err != nil {
		return fmt.Errorf("failed to save scrape progress for %s/%s: %w", retailerID, category, err)
	}
	return nil
}
