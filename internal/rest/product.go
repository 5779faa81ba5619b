package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"bamkzStore/business/product"
	"bamkzStore/domain"
	"bamkzStore/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ProductService interface {
	ListProducts(ctx context.Context, q domain.ProductQuery) (domain.ProductPage, error)
	GetProductByID(ctx context.Context, id uint64) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uint64) error
}

type ProductHandler struct {
	productService ProductService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewProductHandler(productService ProductService, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      validator.New(),
		timeout:        timeout,
	}
}

type ProductRequest struct {
	Name            string   `json:"name" validate:"required,max=255"`
	Category        string   `json:"category" validate:"required,max=100"`
	Description     string   `json:"description"`
	Price           int64    `json:"price" validate:"gte=0"`
	OriginalPrice   *int64   `json:"original_price" validate:"omitempty,gte=0"`
	Rating          *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	ReviewCount     *int     `json:"review_count" validate:"omitempty,gte=0"`
	Stock           *int     `json:"stock" validate:"omitempty,gte=0"`
	IsNew           bool     `json:"is_new"`
	IsBestseller    bool     `json:"is_bestseller"`
	DiscountPercent *float64 `json:"discount_percent" validate:"omitempty,gte=0,lte=100"`
}

type ProductListQuery struct {
	Category string `query:"category"`
	SortBy   string `query:"sort" validate:"omitempty,oneof=newest price_asc price_desc rating popularity"`
	Page     int    `query:"page" validate:"gte=0"`
	PerPage  int    `query:"per_page" validate:"gte=0"`
}

func (r ProductRequest) toDomain(id uint64) *domain.Product {
	return &domain.Product{
		ID:              id,
		Name:            r.Name,
		Category:        r.Category,
		Description:     r.Description,
		Price:           r.Price,
		OriginalPrice:   r.OriginalPrice,
		Rating:          r.Rating,
		ReviewCount:     r.ReviewCount,
		Stock:           r.Stock,
		IsNew:           r.IsNew,
		IsBestseller:    r.IsBestseller,
		DiscountPercent: r.DiscountPercent,
	}
}

func productErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, product.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	var q ProductListQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	query := domain.ProductQuery{
		Category: q.Category,
		SortBy:   q.SortBy,
		Page:     q.Page,
		PerPage:  q.PerPage,
	}

	var err error
	if query.MinPrice, err = queryInt64(c, "min_price"); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if query.MaxPrice, err = queryInt64(c, "max_price"); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if query.MinRating, err = queryFloat(c, "min_rating"); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if query.InStock, err = queryBool(c, "in_stock"); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	page, err := h.productService.ListProducts(ctx, query)
	if err != nil {
		return c.JSON(productErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(page))
}

func (h *ProductHandler) GetProductByID(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	p, err := h.productService.GetProductByID(ctx, productID)
	if err != nil {
		return c.JSON(productErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(p))
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		logger.Warn("failed to bind product request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.productService.CreateProduct(ctx, req.toDomain(0))
	if err != nil {
		return c.JSON(productErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(created))
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		logger.Warn("failed to bind product request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.productService.UpdateProduct(ctx, req.toDomain(productID))
	if err != nil {
		return c.JSON(productErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updated))
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.productService.DeleteProduct(ctx, productID); err != nil {
		return c.JSON(productErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":    "product successfully deleted",
		"product_id": productID,
	})
}
