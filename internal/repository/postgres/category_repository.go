package postgres

import (
	"context"
	"errors"
	"fmt"

	"bamkzStore/business/category"
	"bamkzStore/business/search"
	"bamkzStore/domain"

	"gorm.io/gorm"
)

// CategoryRepository stores the category catalogue. Products reference a
// category by name, so renames and deletes are checked against products.
type CategoryRepository struct {
	DB *gorm.DB
}

var (
	_ category.CategoryRepository = (*CategoryRepository)(nil)
	_ search.CategoryRepository   = (*CategoryRepository)(nil)
)

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func translateCategoryErr(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrCategoryNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrCategoryExists
	case errors.Is(err, domain.ErrCategoryNotFound), errors.Is(err, domain.ErrCategoryInUse):
		return err
	default:
		return fmt.Errorf("failed to %s category: %w", op, err)
	}
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(c).Error; err != nil {
		return translateCategoryErr("create", err)
	}
	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uint64) (domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return domain.Category{}, fmt.Errorf("context error: %w", err)
	}

	var c domain.Category
	if err := r.DB.WithContext(ctx).First(&c, "category_id = ?", id).Error; err != nil {
		return domain.Category{}, translateCategoryErr("find", err)
	}
	return c, nil
}

// FindAll lists categories in creation order, which is also the order
// suggestions offer them in.
func (r *CategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	categories := []domain.Category{}
	if err := r.DB.WithContext(ctx).Order("category_id ASC").Find(&categories).Error; err != nil {
		return nil, translateCategoryErr("list", err)
	}
	return categories, nil
}

// Update renames a category and moves every product filed under the old
// name along with it.
func (r *CategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current domain.Category
		if err := tx.First(&current, "category_id = ?", c.CategoryID).Error; err != nil {
			return err
		}
		if current.ProductCategory == c.ProductCategory {
			return nil
		}

		if err := tx.Model(&current).Update("product_category", c.ProductCategory).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Product{}).
			Where("category = ?", current.ProductCategory).
			Update("category", c.ProductCategory).Error
	})
	if err != nil {
		return translateCategoryErr("update", err)
	}
	return nil
}

// Delete refuses to drop a category that products are still filed under.
func (r *CategoryRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current domain.Category
		if err := tx.First(&current, "category_id = ?", id).Error; err != nil {
			return err
		}

		var inUse int64
		if err := tx.Model(&domain.Product{}).Where("category = ?", current.ProductCategory).Count(&inUse).Error; err != nil {
			return err
		}
		if inUse > 0 {
			return fmt.Errorf("%w: %d products", domain.ErrCategoryInUse, inUse)
		}

		return tx.Delete(&current).Error
	})
	if err != nil {
		return translateCategoryErr("delete", err)
	}
	return nil
}
