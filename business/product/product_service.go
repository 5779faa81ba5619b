package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bamkzStore/domain"
	"bamkzStore/pkg/logger"
)

const (
	DefaultPerPage = 12
	MaxPerPage     = 100
	// MaxPage keeps the row offset well inside int range.
	MaxPage = 10000
)

var ErrInvalidArgument = errors.New("invalid product request")

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	// List applies q's filters, ordering and pagination and returns the page
	// together with the number of rows matching the filters.
	List(ctx context.Context, q domain.ProductQuery) ([]domain.Product, int, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uint64) error
}

type productService struct {
	productRepo ProductRepository
}

func NewProductService(productRepo ProductRepository) *productService {
	return &productService{
		productRepo: productRepo,
	}
}

func (s *productService) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Error("failed to find all products", "error", err)
		return nil, err
	}

	return products, nil
}

func (s *productService) ListProducts(ctx context.Context, q domain.ProductQuery) (domain.ProductPage, error) {
	if err := ctx.Err(); err != nil {
		return domain.ProductPage{}, fmt.Errorf("context error: %w", err)
	}

	q, err := normalizeQuery(q)
	if err != nil {
		return domain.ProductPage{}, err
	}

	products, total, err := s.productRepo.List(ctx, q)
	if err != nil {
		logger.Error("failed to list products", "error", err)
		return domain.ProductPage{}, err
	}
	if products == nil {
		products = []domain.Product{}
	}

	return domain.ProductPage{
		Products: products,
		Total:    total,
		Page:     q.Page,
		PerPage:  q.PerPage,
	}, nil
}

func normalizeQuery(q domain.ProductQuery) (domain.ProductQuery, error) {
	q.Category = strings.TrimSpace(q.Category)

	switch q.SortBy {
	case "":
		q.SortBy = domain.SortNewest
	case domain.SortNewest, domain.SortPriceAsc, domain.SortPriceDesc, domain.SortRating, domain.SortPopularity:
	default:
		return q, fmt.Errorf("%w: unknown sort %q", ErrInvalidArgument, q.SortBy)
	}

	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return q, fmt.Errorf("%w: min price cannot exceed max price", ErrInvalidArgument)
	}
	if q.MinRating != nil && (*q.MinRating < 0 || *q.MinRating > 5) {
		return q, fmt.Errorf("%w: min rating must be between 0 and 5", ErrInvalidArgument)
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Page > MaxPage {
		q.Page = MaxPage
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}

	return q, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uint64) (*domain.Product, error) {
	if id == 0 {
		return nil, fmt.Errorf("%w: invalid product id", ErrInvalidArgument)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrProductNotFound) {
			logger.Error("failed to find product by id", "id", id, "error", err)
		}
		return nil, err
	}

	return &product, nil
}

func (s *productService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := checkProduct(product); err != nil {
		logger.Warn("invalid product data", "error", err)
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.Error("failed to create new product", "error", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logger.Info("product created successfully", "id", product.ID)

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if product.ID == 0 {
		return nil, fmt.Errorf("%w: product ID is required", ErrInvalidArgument)
	}

	if err := checkProduct(product); err != nil {
		logger.Warn("invalid product data", "id", product.ID, "error", err)
		return nil, err
	}

	existing, err := s.productRepo.FindByID(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	product.CreatedAt = existing.CreatedAt

	if err := s.productRepo.Update(ctx, product); err != nil {
		logger.Error("failed to update product", "id", product.ID, "error", err)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	updated, err := s.productRepo.FindByID(ctx, product.ID)
	if err != nil {
		logger.Error("failed to fetch updated product", "id", product.ID, "error", err)
		return nil, fmt.Errorf("failed to fetch updated product: %w", err)
	}

	logger.Info("product updated", "id", product.ID)

	return &updated, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uint64) error {
	if id == 0 {
		return fmt.Errorf("%w: invalid product id", ErrInvalidArgument)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete product", "id", id, "error", err)
		return fmt.Errorf("failed to delete product: %w", err)
	}

	logger.Info("product deleted", "id", id)

	return nil
}

func checkProduct(p *domain.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)

	switch {
	case p.Name == "":
		return fmt.Errorf("%w: product name is required", ErrInvalidArgument)
	case p.Category == "":
		return fmt.Errorf("%w: product category is required", ErrInvalidArgument)
	case p.Price < 0:
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidArgument)
	case p.OriginalPrice != nil && *p.OriginalPrice < 0:
		return fmt.Errorf("%w: original price cannot be negative", ErrInvalidArgument)
	case p.Stock != nil && *p.Stock < 0:
		return fmt.Errorf("%w: stock cannot be negative", ErrInvalidArgument)
	case p.ReviewCount != nil && *p.ReviewCount < 0:
		return fmt.Errorf("%w: review count cannot be negative", ErrInvalidArgument)
	case p.Rating != nil && (*p.Rating < 0 || *p.Rating > 5):
		return fmt.Errorf("%w: rating must be between 0 and 5", ErrInvalidArgument)
	case p.DiscountPercent != nil && (*p.DiscountPercent < 0 || *p.DiscountPercent > 100):
		return fmt.Errorf("%w: discount must be between 0 and 100", ErrInvalidArgument)
	}

	return nil
}
