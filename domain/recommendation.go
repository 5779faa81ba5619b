package domain

// RecommendationContext is the caller-supplied basis for ranking.
// Viewed is ordered most recent first.
type RecommendationContext struct {
	Reference   *Product
	Category    string
	TargetPrice *int64
	Viewed      []uint64
	Purchased   []uint64

	// PurchasedLookup resolves purchased ids that are not part of the candidate pool.
	PurchasedLookup map[uint64]string
}

// Contributions holds every weighted component behind a score.
type Contributions struct {
	Category          float64 `json:"category"`
	PriceProximity    float64 `json:"price_proximity"`
	Bestseller        float64 `json:"bestseller"`
	Rating            float64 `json:"rating"`
	Reviews           float64 `json:"reviews"`
	Viewed            float64 `json:"viewed"`
	PurchasedCategory float64 `json:"purchased_category"`
	Discount          float64 `json:"discount"`
	New               float64 `json:"new"`
	StockPenalty      float64 `json:"stock_penalty"`
}

func (c Contributions) Total() float64 {
	return c.Category + c.PriceProximity + c.Bestseller + c.Rating + c.Reviews +
		c.Viewed + c.PurchasedCategory + c.Discount + c.New + c.StockPenalty
}

type ScoredCandidate struct {
	Product       Product       `json:"product"`
	Score         float64       `json:"score"`
	Contributions Contributions `json:"contributions"`
}
