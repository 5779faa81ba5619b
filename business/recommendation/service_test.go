//go:build !integration

package recommendation

import (
	"context"
	"errors"
	"testing"
	"time"

	"bamkzStore/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductRepo struct {
	products    []domain.Product
	archived    []domain.Product
	findAllHits int
	byIDsCalls  [][]uint64
}

func (f *fakeProductRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	f.findAllHits++
	return f.products, nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uint64) (domain.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrProductNotFound
}

func (f *fakeProductRepo) FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error) {
	f.byIDsCalls = append(f.byIDsCalls, ids)
	var out []domain.Product
	for _, id := range ids {
		for _, p := range f.archived {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

type fakeHistory struct {
	snap domain.HistorySnapshot
	err  error
}

func (f *fakeHistory) Snapshot(ctx context.Context, sessionID string) (domain.HistorySnapshot, error) {
	return f.snap, f.err
}

type fakeWeightsRepo struct {
	rows  map[string]domain.RecommendationWeights
	err   error
	saved []domain.RecommendationWeights
}

func (f *fakeWeightsRepo) GetWeights(ctx context.Context, slot string) (domain.RecommendationWeights, bool, error) {
	if f.err != nil {
		return domain.RecommendationWeights{}, false, f.err
	}
	row, ok := f.rows[slot]
	return row, ok, nil
}

func (f *fakeWeightsRepo) UpsertWeights(ctx context.Context, w domain.RecommendationWeights) error {
	f.saved = append(f.saved, w)
	if f.rows == nil {
		f.rows = map[string]domain.RecommendationWeights{}
	}
	f.rows[w.Slot] = w
	return nil
}

type mapCache struct {
	data map[string][]domain.ScoredCandidate
	sets int
}

func (m *mapCache) Get(ctx context.Context, key string) ([]domain.ScoredCandidate, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapCache) Set(ctx context.Context, key string, value []domain.ScoredCandidate, ttl time.Duration) error {
	if m.data == nil {
		m.data = map[string][]domain.ScoredCandidate{}
	}
	m.data[key] = value
	m.sets++
	return nil
}

func storeProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "MacBook Air M2", Category: "Laptops", Price: 1800000, Rating: ptr(4.9), Stock: ptr(3)},
		{ID: 2, Name: "Dell XPS 13", Category: "Laptops", Price: 1600000, IsBestseller: true, Stock: ptr(2)},
		{ID: 3, Name: "iPad Pro", Category: "Tablets", Price: 1500000, Stock: ptr(7)},
		{ID: 4, Name: "AirPods Pro", Category: "Auriculares", Price: 350000, Stock: ptr(0)},
	}
}

func resultIDs(recs []domain.ScoredCandidate) []uint64 {
	out := make([]uint64, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Product.ID)
	}
	return out
}

func TestServiceRecommendUsesReferenceProduct(t *testing.T) {
	repo := &fakeProductRepo{products: storeProducts()}
	svc := NewService(repo, nil, nil, nil, time.Minute, DefaultWeights())

	recs, err := svc.Recommend(context.Background(), Request{Slot: "pdp_related", ProductID: 1, Limit: 8})
	require.NoError(t, err)

	assert.NotContains(t, resultIDs(recs), uint64(1))
	assert.Equal(t, uint64(2), recs[0].Product.ID)
	assert.Equal(t, 40.0, recs[0].Contributions.Category)
	assert.Equal(t, 25.0, recs[0].Contributions.PriceProximity)
}

func TestServiceRecommendUnknownReference(t *testing.T) {
	svc := NewService(&fakeProductRepo{products: storeProducts()}, nil, nil, nil, 0, DefaultWeights())

	_, err := svc.Recommend(context.Background(), Request{ProductID: 42, Limit: 4})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestServiceRecommendZeroLimitSkipsWork(t *testing.T) {
	repo := &fakeProductRepo{products: storeProducts()}
	svc := NewService(repo, nil, nil, nil, 0, DefaultWeights())

	recs, err := svc.Recommend(context.Background(), Request{Limit: 0})
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.Zero(t, repo.findAllHits)
}

func TestServiceRecommendUsesHistory(t *testing.T) {
	repo := &fakeProductRepo{
		products: storeProducts(),
		archived: []domain.Product{{ID: 50, Category: "Tablets"}},
	}
	history := &fakeHistory{snap: domain.HistorySnapshot{Viewed: []uint64{4}, Purchased: []uint64{50, 2}}}
	svc := NewService(repo, history, nil, nil, 0, DefaultWeights())

	recs, err := svc.Recommend(context.Background(), Request{SessionID: "abc", Limit: 8})
	require.NoError(t, err)

	require.Len(t, repo.byIDsCalls, 1)
	assert.Equal(t, []uint64{50}, repo.byIDsCalls[0])

	assert.Equal(t, 15.0, scoreOf(t, recs, 3).Contributions.PurchasedCategory)
	assert.Equal(t, 15.0, scoreOf(t, recs, 1).Contributions.PurchasedCategory)
	assert.Equal(t, 10.0, scoreOf(t, recs, 4).Contributions.Viewed)
}

func TestServiceRecommendHistoryFailureIsNotFatal(t *testing.T) {
	history := &fakeHistory{err: errors.New("redis down")}
	svc := NewService(&fakeProductRepo{products: storeProducts()}, history, nil, nil, 0, DefaultWeights())

	recs, err := svc.Recommend(context.Background(), Request{SessionID: "abc", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestServiceRecommendExcludeNonPositive(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Stock: ptr(0)},
		{ID: 2},
		{ID: 3, IsNew: true},
		{ID: 4, IsBestseller: true},
	}
	svc := NewService(&fakeProductRepo{products: products}, nil, nil, nil, 0, DefaultWeights())

	recs, err := svc.Recommend(context.Background(), Request{Limit: 3, ExcludeNonPositive: true})
	require.NoError(t, err)
	assert.Equal(t, []uint64{4, 3}, resultIDs(recs))

	recs, err = svc.Recommend(context.Background(), Request{Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, []uint64{4, 3, 2}, resultIDs(recs))
}

func TestServiceRecommendServesFromCache(t *testing.T) {
	repo := &fakeProductRepo{products: storeProducts()}
	cache := &mapCache{}
	svc := NewService(repo, nil, nil, cache, time.Minute, DefaultWeights())
	req := Request{Slot: "home", Category: "Laptops", Limit: 2}

	first, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.findAllHits)
	assert.Equal(t, 1, cache.sets)

	_, err = svc.Recommend(context.Background(), Request{Slot: "home", Category: "Tablets", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.findAllHits)
}

func TestServiceRecommendSlotWeights(t *testing.T) {
	weights := &fakeWeightsRepo{rows: map[string]domain.RecommendationWeights{
		"home": {Slot: "home", Category: 0, New: 0, Bestseller: 0, HighRating: 100, HighRatingThreshold: 4.5, OutOfStock: -20, MaxViewed: 50},
	}}
	svc := NewService(&fakeProductRepo{products: storeProducts()}, nil, weights, nil, 0, DefaultWeights())

	recs, err := svc.Recommend(context.Background(), Request{Slot: "home", Category: "Laptops", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), recs[0].Product.ID)
	assert.Equal(t, 100.0, recs[0].Score)

	recs, err = svc.Recommend(context.Background(), Request{Slot: "other", Category: "Laptops", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), recs[0].Product.ID)
}

func TestLoadWeights(t *testing.T) {
	defaults := DefaultWeights()

	t.Run("no repository", func(t *testing.T) {
		svc := NewService(nil, nil, nil, nil, 0, defaults)
		w, configured := svc.loadWeights(context.Background(), "home")
		assert.Equal(t, defaults, w)
		assert.False(t, configured)
	})

	t.Run("missing row", func(t *testing.T) {
		svc := NewService(nil, nil, &fakeWeightsRepo{}, nil, 0, defaults)
		w, configured := svc.loadWeights(context.Background(), "home")
		assert.Equal(t, defaults, w)
		assert.False(t, configured)
	})

	t.Run("repository error", func(t *testing.T) {
		svc := NewService(nil, nil, &fakeWeightsRepo{err: errors.New("db down")}, nil, 0, defaults)
		w, configured := svc.loadWeights(context.Background(), "home")
		assert.Equal(t, defaults, w)
		assert.False(t, configured)
	})

	t.Run("row keeps guard rails", func(t *testing.T) {
		repo := &fakeWeightsRepo{rows: map[string]domain.RecommendationWeights{
			"home": {Slot: "home", Category: 12, OutOfStock: 5, MaxViewed: 0,
				PriceTiers: []domain.PriceTier{{MaxRelativeDiff: 0.8, Points: 2}, {MaxRelativeDiff: 0.2, Points: 9}}},
		}}
		svc := NewService(nil, nil, repo, nil, 0, defaults)

		w, configured := svc.loadWeights(context.Background(), "home")
		assert.True(t, configured)
		assert.Equal(t, 12.0, w.Category)
		assert.Equal(t, defaults.OutOfStock, w.OutOfStock)
		assert.Equal(t, defaults.MaxViewed, w.MaxViewed)
		assert.Equal(t, []domain.PriceTier{{MaxRelativeDiff: 0.2, Points: 9}, {MaxRelativeDiff: 0.8, Points: 2}}, w.PriceTiers)
	})
}

func TestUpsertWeights(t *testing.T) {
	repo := &fakeWeightsRepo{}
	svc := NewService(nil, nil, repo, nil, 0, DefaultWeights())

	bad := DefaultWeights()
	bad.OutOfStock = 0
	err := svc.UpsertWeights(context.Background(), "home", bad)
	assert.ErrorIs(t, err, ErrInvalidWeights)

	err = svc.UpsertWeights(context.Background(), "", DefaultWeights())
	assert.ErrorIs(t, err, ErrInvalidWeights)

	require.NoError(t, svc.UpsertWeights(context.Background(), "home", DefaultWeights()))
	require.Len(t, repo.saved, 1)
	assert.Equal(t, "home", repo.saved[0].Slot)
	assert.Equal(t, 40.0, repo.saved[0].Category)

	readOnly := NewService(nil, nil, nil, nil, 0, DefaultWeights())
	assert.ErrorIs(t, readOnly.UpsertWeights(context.Background(), "home", DefaultWeights()), ErrWeightsReadOnly)
}

func TestServiceRecommendWeightsUpdateBypassesCache(t *testing.T) {
	repo := &fakeProductRepo{products: storeProducts()}
	cache := &mapCache{}
	svc := NewService(repo, nil, &fakeWeightsRepo{}, cache, time.Minute, DefaultWeights())
	ctx := context.Background()
	req := Request{Slot: "home", Category: "Laptops", Limit: 1}

	before, err := svc.Recommend(ctx, req)
	require.NoError(t, err)
	require.Len(t, before, 1)
	assert.Equal(t, uint64(2), before[0].Product.ID)

	tuned := DefaultWeights()
	tuned.Category = 0
	tuned.Bestseller = 0
	tuned.HighRating = 100
	require.NoError(t, svc.UpsertWeights(ctx, "home", tuned))

	after, err := svc.Recommend(ctx, req)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, uint64(1), after[0].Product.ID)
	assert.Equal(t, 100.0, after[0].Score)
	assert.Equal(t, 2, repo.findAllHits)
	assert.Equal(t, 2, cache.sets)

	again, err := svc.Recommend(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, after, again)
	assert.Equal(t, 2, repo.findAllHits)
}

func TestMetricsSlot(t *testing.T) {
	assert.Equal(t, "home", metricsSlot("home", true))
	assert.Equal(t, metricsSlotDefault, metricsSlot("home", false))
	assert.Equal(t, metricsSlotDefault, metricsSlot("x-generated-by-a-client", false))
}
