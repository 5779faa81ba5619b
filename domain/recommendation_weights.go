package domain

import (
	"time"

	"gorm.io/datatypes"
)

// PriceTier awards Points when the relative price difference is at most MaxRelativeDiff.
type PriceTier struct {
	MaxRelativeDiff float64 `json:"max_relative_diff"`
	Points          float64 `json:"points"`
}

// CREATE TABLE public.recommendation_weights (
//     slot                   TEXT PRIMARY KEY,
//     category               NUMERIC NOT NULL,
//     price_tiers            JSONB NOT NULL,
//     bestseller             NUMERIC NOT NULL,
//     high_rating            NUMERIC NOT NULL,
//     high_rating_threshold  NUMERIC NOT NULL,
//     reviews                NUMERIC NOT NULL,
//     review_threshold       INTEGER NOT NULL,
//     viewed                 NUMERIC NOT NULL,
//     purchased_category     NUMERIC NOT NULL,
//     discount               NUMERIC NOT NULL,
//     is_new                 NUMERIC NOT NULL,
//     out_of_stock           NUMERIC NOT NULL,
//     max_viewed             INTEGER NOT NULL,
//     updated_at             TIMESTAMPTZ DEFAULT NOW()
// );

type RecommendationWeights struct {
	Slot string `json:"slot" gorm:"column:slot;primaryKey"`

	Category      float64        `json:"category" gorm:"column:category"`
	PriceTiersRaw datatypes.JSON `json:"-" gorm:"column:price_tiers;type:jsonb"`
	PriceTiers    []PriceTier    `json:"price_tiers" gorm:"-"`

	Bestseller          float64 `json:"bestseller" gorm:"column:bestseller"`
	HighRating          float64 `json:"high_rating" gorm:"column:high_rating"`
	HighRatingThreshold float64 `json:"high_rating_threshold" gorm:"column:high_rating_threshold"`
	Reviews             float64 `json:"reviews" gorm:"column:reviews"`
	ReviewThreshold     int     `json:"review_threshold" gorm:"column:review_threshold"`
	Viewed              float64 `json:"viewed" gorm:"column:viewed"`
	PurchasedCategory   float64 `json:"purchased_category" gorm:"column:purchased_category"`
	Discount            float64 `json:"discount" gorm:"column:discount"`
	New                 float64 `json:"is_new" gorm:"column:is_new"`
	OutOfStock          float64 `json:"out_of_stock" gorm:"column:out_of_stock"`
	MaxViewed           int     `json:"max_viewed" gorm:"column:max_viewed"`

	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (RecommendationWeights) TableName() string {
	return "recommendation_weights"
}
