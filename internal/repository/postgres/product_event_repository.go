package postgres

import (
	"context"
	"fmt"

	"bamkzStore/business/history"
	"bamkzStore/domain"

	"gorm.io/gorm"
)

type ProductEventRepository struct {
	DB *gorm.DB
}

var _ history.EventRepository = (*ProductEventRepository)(nil)

func NewProductEventRepository(db *gorm.DB) *ProductEventRepository {
	return &ProductEventRepository{DB: db}
}

func (r *ProductEventRepository) SaveEvent(ctx context.Context, event *domain.ProductEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to save product event: %w", err)
	}

	return nil
}
