package recommendation

import (
	"context"
	"fmt"
	"time"

	"bamkzStore/domain"
	"bamkzStore/pkg/logger"
	"bamkzStore/pkg/metrics"
	"bamkzStore/pkg/trace"
)

const metricsSlotDefault = "default"

// metricsSlot bounds the slot label to slots an admin has configured;
// every other slot shares one series.
func metricsSlot(slot string, configured bool) string {
	if !configured {
		return metricsSlotDefault
	}
	return slot
}

type ProductRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
	FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error)
}

type HistoryReader interface {
	Snapshot(ctx context.Context, sessionID string) (domain.HistorySnapshot, error)
}

// Request describes one recommendation panel. A nil TargetPrice and an
// empty Category are taken from the reference product when ProductID is set.
type Request struct {
	Slot               string
	SessionID          string
	ProductID          uint64
	Category           string
	TargetPrice        *int64
	Limit              int
	ExcludeNonPositive bool
}

type Service struct {
	productRepo ProductRepository
	history     HistoryReader
	weightsRepo WeightsRepository
	cache       Cache
	cacheTTL    time.Duration
	defaults    Weights
}

func NewService(
	productRepo ProductRepository,
	history HistoryReader,
	weightsRepo WeightsRepository,
	cache Cache,
	cacheTTL time.Duration,
	defaults Weights,
) *Service {
	if cache == nil {
		cache = NoopCache{}
	}

	return &Service{
		productRepo: productRepo,
		history:     history,
		weightsRepo: weightsRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
		defaults:    defaults,
	}
}

func (s *Service) Recommend(ctx context.Context, req Request) ([]domain.ScoredCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if req.Limit <= 0 {
		return []domain.ScoredCandidate{}, nil
	}

	start := time.Now()
	defer func() {
		metrics.RecommendLatency.Observe(time.Since(start).Seconds())
	}()

	rc := domain.RecommendationContext{
		Category:    req.Category,
		TargetPrice: req.TargetPrice,
	}

	if req.ProductID != 0 {
		ref, err := s.productRepo.FindByID(ctx, req.ProductID)
		if err != nil {
			return nil, fmt.Errorf("load reference product: %w", err)
		}
		rc.Reference = &ref
		if rc.Category == "" {
			rc.Category = ref.Category
		}
		if rc.TargetPrice == nil {
			price := ref.Price
			rc.TargetPrice = &price
		}
	}

	if req.SessionID != "" && s.history != nil {
		snap, err := s.history.Snapshot(ctx, req.SessionID)
		if err != nil {
			logger.Warn("failed to load browsing history", "session_id", req.SessionID, "error", err)
		} else {
			rc.Viewed = snap.Viewed
			rc.Purchased = snap.Purchased
		}
	}

	w, configured := s.loadWeights(ctx, req.Slot)
	if len(rc.Viewed) > w.MaxViewed {
		rc.Viewed = rc.Viewed[:w.MaxViewed]
	}

	slotLabel := metricsSlot(req.Slot, configured)

	key := cacheKey(req, rc, w)
	if cached, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		metrics.RecommendRequests.WithLabelValues(slotLabel, "hit").Inc()
		return cached, nil
	} else if err != nil {
		logger.Warn("recommendation cache read failed", "error", err)
	}
	metrics.RecommendRequests.WithLabelValues(slotLabel, "miss").Inc()

	pool, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	lookup, err := s.resolvePurchased(ctx, pool, rc.Purchased)
	if err != nil {
		return nil, err
	}
	rc.PurchasedLookup = lookup

	var recs []domain.ScoredCandidate
	if req.ExcludeNonPositive {
		all := Recommend(pool, rc, len(pool), w)
		recs = make([]domain.ScoredCandidate, 0, req.Limit)
		for _, r := range all {
			if len(recs) == req.Limit {
				break
			}
			if r.Score > 0 {
				recs = append(recs, r)
			}
		}
	} else {
		recs = Recommend(pool, rc, req.Limit, w)
	}

	if err := s.cache.Set(ctx, key, recs, s.cacheTTL); err != nil {
		logger.Warn("recommendation cache write failed", "error", err)
	}

	logger.Debug("recommend",
		"trace_id", trace.TraceIDFromContext(ctx),
		"slot", req.Slot,
		"session_id", req.SessionID,
		"product_id", req.ProductID,
		"category", rc.Category,
		"candidate_count", len(pool),
		"result_count", len(recs),
	)

	return recs, nil
}

// resolvePurchased fetches the categories of purchased products missing from
// the pool. Ids that no longer exist are skipped.
func (s *Service) resolvePurchased(ctx context.Context, pool []domain.Product, purchased []uint64) (map[uint64]string, error) {
	if len(purchased) == 0 {
		return nil, nil
	}

	inPool := make(map[uint64]struct{}, len(pool))
	for _, p := range pool {
		inPool[p.ID] = struct{}{}
	}

	var missing []uint64
	for _, id := range purchased {
		if _, ok := inPool[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return nil, nil
	}

	products, err := s.productRepo.FindByIDs(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("resolve purchased products: %w", err)
	}

	lookup := make(map[uint64]string, len(products))
	for _, p := range products {
		lookup[p.ID] = p.Category
	}

	return lookup, nil
}

func (s *Service) GetWeights(ctx context.Context, slot string) (Weights, error) {
	if err := ctx.Err(); err != nil {
		return Weights{}, fmt.Errorf("context error: %w", err)
	}

	w, _ := s.loadWeights(ctx, slot)
	return w, nil
}

func (s *Service) UpsertWeights(ctx context.Context, slot string, w Weights) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if slot == "" {
		return fmt.Errorf("%w: slot is required", ErrInvalidWeights)
	}
	if err := w.Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidWeights, err.Error())
	}
	if s.weightsRepo == nil {
		return ErrWeightsReadOnly
	}

	if err := s.weightsRepo.UpsertWeights(ctx, rowFromWeights(slot, w)); err != nil {
		logger.Error("failed to save recommendation weights", "slot", slot, "error", err)
		return fmt.Errorf("save weights: %w", err)
	}

	logger.Info("recommendation weights updated", "slot", slot)

	return nil
}
