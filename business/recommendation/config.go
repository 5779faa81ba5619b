package recommendation

import (
	"context"
	"errors"
	"sort"

	"bamkzStore/domain"
)

var (
	ErrInvalidWeights  = errors.New("invalid recommendation weights")
	ErrWeightsReadOnly = errors.New("recommendation weights store is not configured")
)

// Weights is the tunable scoring surface. Every contribution is added to
// the score as-is, so OutOfStock is expected to be negative.
type Weights struct {
	Category float64 `json:"category"`

	// PriceTiers are checked in ascending MaxRelativeDiff order; the first
	// tier that holds awards its points.
	PriceTiers []domain.PriceTier `json:"price_tiers"`

	Bestseller          float64 `json:"bestseller"`
	HighRating          float64 `json:"high_rating"`
	HighRatingThreshold float64 `json:"high_rating_threshold"`
	Reviews             float64 `json:"reviews"`
	ReviewThreshold     int     `json:"review_threshold"`
	Viewed              float64 `json:"viewed"`
	PurchasedCategory   float64 `json:"purchased_category"`
	Discount            float64 `json:"discount"`
	New                 float64 `json:"is_new"`
	OutOfStock          float64 `json:"out_of_stock"`

	// only the most recent MaxViewed entries of the viewed list count
	MaxViewed int `json:"max_viewed"`
}

const (
	defaultCategoryWeight      = 40.0
	defaultBestsellerWeight    = 15.0
	defaultHighRatingWeight    = 10.0
	defaultHighRatingThreshold = 4.5
	defaultReviewsWeight       = 5.0
	defaultReviewThreshold     = 200
	defaultViewedWeight        = 10.0
	defaultPurchasedWeight     = 15.0
	defaultDiscountWeight      = 8.0
	defaultNewWeight           = 5.0
	defaultOutOfStockPenalty   = -20.0
	defaultMaxViewed           = 50
)

func defaultPriceTiers() []domain.PriceTier {
	return []domain.PriceTier{
		{MaxRelativeDiff: 0.3, Points: 25},
		{MaxRelativeDiff: 0.5, Points: 15},
		{MaxRelativeDiff: 1.0, Points: 5},
	}
}

func DefaultWeights() Weights {
	return Weights{
		Category:            defaultCategoryWeight,
		PriceTiers:          defaultPriceTiers(),
		Bestseller:          defaultBestsellerWeight,
		HighRating:          defaultHighRatingWeight,
		HighRatingThreshold: defaultHighRatingThreshold,
		Reviews:             defaultReviewsWeight,
		ReviewThreshold:     defaultReviewThreshold,
		Viewed:              defaultViewedWeight,
		PurchasedCategory:   defaultPurchasedWeight,
		Discount:            defaultDiscountWeight,
		New:                 defaultNewWeight,
		OutOfStock:          defaultOutOfStockPenalty,
		MaxViewed:           defaultMaxViewed,
	}
}

func (w Weights) Validate() error {
	if w.OutOfStock >= 0 {
		return errors.New("out_of_stock must be negative")
	}
	if w.MaxViewed <= 0 {
		return errors.New("max_viewed must be greater than 0")
	}
	for _, t := range w.PriceTiers {
		if t.MaxRelativeDiff < 0 {
			return errors.New("price tier max_relative_diff cannot be negative")
		}
	}
	return nil
}

func sortedTiers(tiers []domain.PriceTier) []domain.PriceTier {
	out := make([]domain.PriceTier, len(tiers))
	copy(out, tiers)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MaxRelativeDiff < out[j].MaxRelativeDiff
	})
	return out
}

// per-slot weight overrides
type WeightsRepository interface {
	GetWeights(ctx context.Context, slot string) (domain.RecommendationWeights, bool, error)
	UpsertWeights(ctx context.Context, w domain.RecommendationWeights) error
}
