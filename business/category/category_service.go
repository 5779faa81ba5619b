package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bamkzStore/domain"
	"bamkzStore/pkg/logger"
)

var ErrInvalidArgument = errors.New("invalid category request")

// CategoryRepository contract interface
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	FindByID(ctx context.Context, id uint64) (domain.Category, error)
	FindAll(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id uint64) error
}

type categoryService struct {
	categoryRepo CategoryRepository
}

func NewCategoryService(categoryRepo CategoryRepository) *categoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
	}
}

func (s *categoryService) GetAllCategories(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		logger.Error("failed to find all categories", "error", err)
		return nil, err
	}

	return categories, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id uint64) (domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return domain.Category{}, fmt.Errorf("context error: %w", err)
	}

	if id == 0 {
		return domain.Category{}, fmt.Errorf("%w: invalid category id", ErrInvalidArgument)
	}

	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrCategoryNotFound) {
			logger.Error("failed to find category", "id", id, "error", err)
		}
		return domain.Category{}, err
	}

	return category, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	category.ProductCategory = strings.TrimSpace(category.ProductCategory)
	if category.ProductCategory == "" {
		return nil, fmt.Errorf("%w: product category is required", ErrInvalidArgument)
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		logger.Error("failed to create new category", "error", err)
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	logger.Info("category created successfully", "category", category.ProductCategory)

	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if category.CategoryID == 0 {
		return nil, fmt.Errorf("%w: category ID is required", ErrInvalidArgument)
	}

	category.ProductCategory = strings.TrimSpace(category.ProductCategory)
	if category.ProductCategory == "" {
		return nil, fmt.Errorf("%w: product category is required", ErrInvalidArgument)
	}

	if _, err := s.categoryRepo.FindByID(ctx, category.CategoryID); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		logger.Error("failed to update category", "id", category.CategoryID, "error", err)
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	updated, err := s.categoryRepo.FindByID(ctx, category.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated category: %w", err)
	}

	logger.Info("category updated successfully", "id", category.CategoryID)

	return &updated, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id uint64) error {
	if id == 0 {
		return fmt.Errorf("%w: invalid category id", ErrInvalidArgument)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrCategoryInUse) {
			logger.Warn("category still referenced by products", "id", id)
			return err
		}
		logger.Error("failed to delete category", "id", id, "error", err)
		return fmt.Errorf("failed to delete category: %w", err)
	}

	logger.Info("category deleted successfully", "id", id)

	return nil
}
