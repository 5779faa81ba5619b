package postgres

import (
	"context"
	"errors"
	"fmt"

	"bamkzStore/business/product"
	"bamkzStore/business/recommendation"
	"bamkzStore/business/search"
	"bamkzStore/domain"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

var (
	_ product.ProductRepository        = (*ProductRepository)(nil)
	_ recommendation.ProductRepository = (*ProductRepository)(nil)
	_ search.ProductRepository         = (*ProductRepository)(nil)
)

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

var productOrder = map[string]string{
	domain.SortNewest:     "created_at DESC, id DESC",
	domain.SortPriceAsc:   "price ASC, id ASC",
	domain.SortPriceDesc:  "price DESC, id ASC",
	domain.SortRating:     "rating DESC NULLS LAST, id ASC",
	domain.SortPopularity: "review_count DESC NULLS LAST, rating DESC NULLS LAST, id ASC",
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint64) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	var product domain.Product

	err := r.DB.WithContext(ctx).First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("failed to find product: %w", err)
	}

	return product, nil
}

// FindByIDs returns the products that exist among ids, in id order.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	products := []domain.Product{}
	if len(ids) == 0 {
		return products, nil
	}

	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products by ids: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var products []domain.Product
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) filtered(ctx context.Context, q domain.ProductQuery) *gorm.DB {
	tx := r.DB.WithContext(ctx).Model(&domain.Product{})

	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.MinPrice != nil {
		tx = tx.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("price <= ?", *q.MaxPrice)
	}
	if q.MinRating != nil {
		tx = tx.Where("rating >= ?", *q.MinRating)
	}
	if q.InStock {
		tx = tx.Where("stock IS NULL OR stock > 0")
	}

	return tx
}

func (r *ProductRepository) List(ctx context.Context, q domain.ProductQuery) ([]domain.Product, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("context error: %w", err)
	}

	var total int64
	if err := r.filtered(ctx, q).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	order, ok := productOrder[q.SortBy]
	if !ok {
		order = productOrder[domain.SortNewest]
	}

	var products []domain.Product
	err := r.filtered(ctx, q).
		Order(order).
		Offset((q.Page - 1) * q.PerPage).
		Limit(q.PerPage).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	return products, int(total), nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"name":             product.Name,
		"category":         product.Category,
		"description":      product.Description,
		"price":            product.Price,
		"original_price":   product.OriginalPrice,
		"rating":           product.Rating,
		"review_count":     product.ReviewCount,
		"stock":            product.Stock,
		"is_new":           product.IsNew,
		"is_bestseller":    product.IsBestseller,
		"discount_percent": product.DiscountPercent,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", product.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}
