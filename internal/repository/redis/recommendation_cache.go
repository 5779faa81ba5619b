package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bamkzStore/business/recommendation"
	"bamkzStore/domain"

	"github.com/redis/go-redis/v9"
)

var _ recommendation.Cache = (*RecommendationCache)(nil)

type RecommendationCache struct {
	client *redis.Client
}

func NewRecommendationCache(client *redis.Client) *RecommendationCache {
	return &RecommendationCache{
		client: client,
	}
}

func (c *RecommendationCache) Get(ctx context.Context, key string) ([]domain.ScoredCandidate, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get recommendations from Redis: %w", err)
	}

	var recs []domain.ScoredCandidate
	if err := json.Unmarshal([]byte(val), &recs); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal recommendations: %w", err)
	}

	return recs, true, nil
}

func (c *RecommendationCache) Set(ctx context.Context, key string, value []domain.ScoredCandidate, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store recommendations in Redis: %w", err)
	}

	return nil
}
