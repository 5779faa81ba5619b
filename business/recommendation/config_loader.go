package recommendation

import (
	"context"

	"bamkzStore/domain"
	"bamkzStore/pkg/logger"
)

// loadWeights reads the override for slot. It reports false and returns
// s.defaults when there is no repository or row, or the row cannot be read.
func (s *Service) loadWeights(ctx context.Context, slot string) (Weights, bool) {
	if s.weightsRepo == nil || slot == "" {
		return s.defaults, false
	}

	row, ok, err := s.weightsRepo.GetWeights(ctx, slot)
	if err != nil {
		logger.Warn("failed to load recommendation weights, using defaults", "slot", slot, "error", err)
		return s.defaults, false
	}
	if !ok {
		return s.defaults, false
	}

	return weightsFromRow(row, s.defaults), true
}

// weightsFromRow copies a stored row over base. Fields that would break the
// stock penalty or the viewed window keep the base value.
func weightsFromRow(row domain.RecommendationWeights, base Weights) Weights {
	w := base

	w.Category = row.Category
	w.Bestseller = row.Bestseller
	w.HighRating = row.HighRating
	w.HighRatingThreshold = row.HighRatingThreshold
	w.Reviews = row.Reviews
	w.ReviewThreshold = row.ReviewThreshold
	w.Viewed = row.Viewed
	w.PurchasedCategory = row.PurchasedCategory
	w.Discount = row.Discount
	w.New = row.New

	if row.OutOfStock < 0 {
		w.OutOfStock = row.OutOfStock
	}
	if row.MaxViewed > 0 {
		w.MaxViewed = row.MaxViewed
	}
	if len(row.PriceTiers) > 0 {
		w.PriceTiers = sortedTiers(row.PriceTiers)
	}

	return w
}

func rowFromWeights(slot string, w Weights) domain.RecommendationWeights {
	return domain.RecommendationWeights{
		Slot:                slot,
		Category:            w.Category,
		PriceTiers:          sortedTiers(w.PriceTiers),
		Bestseller:          w.Bestseller,
		HighRating:          w.HighRating,
		HighRatingThreshold: w.HighRatingThreshold,
		Reviews:             w.Reviews,
		ReviewThreshold:     w.ReviewThreshold,
		Viewed:              w.Viewed,
		PurchasedCategory:   w.PurchasedCategory,
		Discount:            w.Discount,
		New:                 w.New,
		OutOfStock:          w.OutOfStock,
		MaxViewed:           w.MaxViewed,
	}
}
