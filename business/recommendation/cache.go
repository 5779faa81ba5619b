package recommendation

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"bamkzStore/domain"
)

type Cache interface {
	Get(ctx context.Context, key string) ([]domain.ScoredCandidate, bool, error)
	Set(ctx context.Context, key string, value []domain.ScoredCandidate, ttl time.Duration) error
}

type NoopCache struct{}

func (NoopCache) Get(_ context.Context, _ string) ([]domain.ScoredCandidate, bool, error) {
	return nil, false, nil
}

func (NoopCache) Set(_ context.Context, _ string, _ []domain.ScoredCandidate, _ time.Duration) error {
	return nil
}

// cacheKey covers every input that changes the ranking, history and the
// effective weights included, so a weights update is served immediately.
func cacheKey(req Request, rc domain.RecommendationContext, w Weights) string {
	parts := make([]string, 0, len(rc.Viewed)+len(rc.Purchased)+6)
	parts = append(parts, "slot:"+req.Slot)
	parts = append(parts, fmt.Sprintf("ref:%d", req.ProductID))
	parts = append(parts, "cat:"+rc.Category)
	if rc.TargetPrice != nil {
		parts = append(parts, fmt.Sprintf("target:%d", *rc.TargetPrice))
	}
	parts = append(parts, fmt.Sprintf("n:%d", req.Limit))
	parts = append(parts, fmt.Sprintf("pos:%t", req.ExcludeNonPositive))
	for _, id := range rc.Viewed {
		parts = append(parts, fmt.Sprintf("v:%d", id))
	}
	purchased := slices.Clone(rc.Purchased)
	slices.Sort(purchased)
	for _, id := range purchased {
		parts = append(parts, fmt.Sprintf("p:%d", id))
	}

	// Weights holds only numbers and slices, so Marshal cannot fail.
	weights, _ := json.Marshal(w)
	parts = append(parts, "w:"+string(weights))

	hash := sha1.Sum([]byte(strings.Join(parts, "|")))
	return "store:recommendation:" + hex.EncodeToString(hash[:])
}
