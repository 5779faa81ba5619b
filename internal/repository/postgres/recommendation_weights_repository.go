package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bamkzStore/business/recommendation"
	"bamkzStore/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecommendationWeightsRepository struct {
	DB *gorm.DB
}

var _ recommendation.WeightsRepository = (*RecommendationWeightsRepository)(nil)

func NewRecommendationWeightsRepository(db *gorm.DB) *RecommendationWeightsRepository {
	return &RecommendationWeightsRepository{DB: db}
}

func (r *RecommendationWeightsRepository) GetWeights(ctx context.Context, slot string) (domain.RecommendationWeights, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.RecommendationWeights{}, false, fmt.Errorf("context error: %w", err)
	}

	var w domain.RecommendationWeights

	err := r.DB.WithContext(ctx).
		Where("slot = ?", slot).
		First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.RecommendationWeights{}, false, nil
	}
	if err != nil {
		return domain.RecommendationWeights{}, false, fmt.Errorf("failed to query recommendation_weights: %w", err)
	}

	if len(w.PriceTiersRaw) > 0 {
		if err := json.Unmarshal(w.PriceTiersRaw, &w.PriceTiers); err != nil {
			return domain.RecommendationWeights{}, false, fmt.Errorf("failed to unmarshal price_tiers: %w", err)
		}
	}

	return w, true, nil
}

func (r *RecommendationWeightsRepository) UpsertWeights(ctx context.Context, w domain.RecommendationWeights) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	raw, err := json.Marshal(w.PriceTiers)
	if err != nil {
		return fmt.Errorf("failed to marshal price_tiers: %w", err)
	}
	w.PriceTiersRaw = raw

	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "slot"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"category",
				"price_tiers",
				"bestseller",
				"high_rating",
				"high_rating_threshold",
				"reviews",
				"review_threshold",
				"viewed",
				"purchased_category",
				"discount",
				"is_new",
				"out_of_stock",
				"max_viewed",
				"updated_at",
			}),
		}).
		Create(&w).Error
}
