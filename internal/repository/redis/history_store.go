package redis

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"bamkzStore/business/history"

	"github.com/redis/go-redis/v9"
)

var _ history.Store = (*HistoryStore)(nil)

// HistoryStore keeps session history under history:{session}:viewed,
// :purchased and :searches. Every write refreshes the session TTL.
type HistoryStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewHistoryStore(client *redis.Client, ttl time.Duration) *HistoryStore {
	return &HistoryStore{
		client: client,
		ttl:    ttl,
	}
}

func viewedKey(sessionID string) string {
	return fmt.Sprintf("history:%s:viewed", sessionID)
}

func purchasedKey(sessionID string) string {
	return fmt.Sprintf("history:%s:purchased", sessionID)
}

func searchesKey(sessionID string) string {
	return fmt.Sprintf("history:%s:searches", sessionID)
}

// pushFront removes value from the list, prepends it and trims to max, in
// one transaction.
func (s *HistoryStore) pushFront(ctx context.Context, key, value string, max int) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LRem(ctx, key, 0, value)
		pipe.LPush(ctx, key, value)
		pipe.LTrim(ctx, key, 0, int64(max-1))
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	return err
}

func (s *HistoryStore) PushViewed(ctx context.Context, sessionID string, productID uint64, max int) error {
	if err := s.pushFront(ctx, viewedKey(sessionID), strconv.FormatUint(productID, 10), max); err != nil {
		return fmt.Errorf("failed to push viewed product: %w", err)
	}
	return nil
}

func (s *HistoryStore) Viewed(ctx context.Context, sessionID string) ([]uint64, error) {
	vals, err := s.client.LRange(ctx, viewedKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read viewed products: %w", err)
	}
	return parseIDs(vals)
}

func (s *HistoryStore) AddPurchased(ctx context.Context, sessionID string, productIDs []uint64) error {
	if len(productIDs) == 0 {
		return nil
	}

	members := make([]any, 0, len(productIDs))
	for _, id := range productIDs {
		members = append(members, strconv.FormatUint(id, 10))
	}

	key := purchasedKey(sessionID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, key, members...)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to add purchased products: %w", err)
	}
	return nil
}

func (s *HistoryStore) Purchased(ctx context.Context, sessionID string) ([]uint64, error) {
	vals, err := s.client.SMembers(ctx, purchasedKey(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read purchased products: %w", err)
	}

	ids, err := parseIDs(vals)
	if err != nil {
		return nil, err
	}
	slices.Sort(ids)
	return ids, nil
}

func (s *HistoryStore) PushSearch(ctx context.Context, sessionID, query string, max int) error {
	if err := s.pushFront(ctx, searchesKey(sessionID), query, max); err != nil {
		return fmt.Errorf("failed to push search: %w", err)
	}
	return nil
}

func (s *HistoryStore) Searches(ctx context.Context, sessionID string) ([]string, error) {
	vals, err := s.client.LRange(ctx, searchesKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read searches: %w", err)
	}
	return vals, nil
}

func parseIDs(vals []string) ([]uint64, error) {
	ids := make([]uint64, 0, len(vals))
	for _, v := range vals {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid product id %q in history: %w", v, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
