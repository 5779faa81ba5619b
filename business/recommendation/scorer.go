package recommendation

import (
	"math"
	"sort"

	"bamkzStore/domain"
)

// Recommend ranks candidates against rc and returns at most limit of them,
// highest score first. Equal scores keep their input order. The reference
// product is never recommended against itself. Inputs are not modified.
func Recommend(candidates []domain.Product, rc domain.RecommendationContext, limit int, w Weights) []domain.ScoredCandidate {
	if limit <= 0 || len(candidates) == 0 {
		return []domain.ScoredCandidate{}
	}

	sc := newScorer(candidates, rc, w)

	scored := make([]domain.ScoredCandidate, 0, len(candidates))
	for _, p := range candidates {
		if rc.Reference != nil && p.ID == rc.Reference.ID {
			continue
		}

		contrib := sc.contributions(p)
		scored = append(scored, domain.ScoredCandidate{
			Product:       p,
			Score:         contrib.Total(),
			Contributions: contrib,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	return scored
}

type scorer struct {
	w             Weights
	tiers         []domain.PriceTier
	category      string
	target        float64
	viewed        map[uint64]struct{}
	purchasedCats map[string]struct{}
}

func newScorer(candidates []domain.Product, rc domain.RecommendationContext, w Weights) *scorer {
	sc := &scorer{
		w:             w,
		tiers:         sortedTiers(w.PriceTiers),
		category:      rc.Category,
		viewed:        make(map[uint64]struct{}),
		purchasedCats: make(map[string]struct{}),
	}

	if rc.TargetPrice != nil && *rc.TargetPrice > 0 {
		sc.target = float64(*rc.TargetPrice)
	}

	viewed := rc.Viewed
	if w.MaxViewed > 0 && len(viewed) > w.MaxViewed {
		viewed = viewed[:w.MaxViewed]
	}
	for _, id := range viewed {
		sc.viewed[id] = struct{}{}
	}

	if len(rc.Purchased) > 0 {
		byID := make(map[uint64]string, len(candidates))
		for _, p := range candidates {
			byID[p.ID] = p.Category
		}

		for _, id := range rc.Purchased {
			cat, ok := byID[id]
			if !ok {
				cat, ok = rc.PurchasedLookup[id]
			}
			if ok && cat != "" {
				sc.purchasedCats[cat] = struct{}{}
			}
		}
	}

	return sc
}

func (sc *scorer) contributions(p domain.Product) domain.Contributions {
	var c domain.Contributions

	if sc.category != "" && p.Category == sc.category {
		c.Category = sc.w.Category
	}

	c.PriceProximity = sc.priceProximity(p.Price)

	if p.IsBestseller {
		c.Bestseller = sc.w.Bestseller
	}
	if p.Rating != nil && *p.Rating >= sc.w.HighRatingThreshold {
		c.Rating = sc.w.HighRating
	}
	if p.ReviewCount != nil && *p.ReviewCount >= sc.w.ReviewThreshold {
		c.Reviews = sc.w.Reviews
	}
	if _, ok := sc.viewed[p.ID]; ok {
		c.Viewed = sc.w.Viewed
	}
	if _, ok := sc.purchasedCats[p.Category]; ok {
		c.PurchasedCategory = sc.w.PurchasedCategory
	}
	if p.HasDiscount() {
		c.Discount = sc.w.Discount
	}
	if p.IsNew {
		c.New = sc.w.New
	}
	if p.OutOfStock() {
		c.StockPenalty = sc.w.OutOfStock
	}

	return c
}

func (sc *scorer) priceProximity(price int64) float64 {
	if sc.target <= 0 {
		return 0
	}

	diff := math.Abs(float64(price)-sc.target) / sc.target
	for _, t := range sc.tiers {
		if diff <= t.MaxRelativeDiff {
			return t.Points
		}
	}

	return 0
}
