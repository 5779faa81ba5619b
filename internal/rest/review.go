package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"bamkzStore/business/review"
	"bamkzStore/domain"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type ReviewService interface {
	Submit(ctx context.Context, in review.ReviewInput) (*domain.Review, error)
	Create(ctx context.Context, in review.ReviewInput) (*domain.Review, error)
	Approve(ctx context.Context, id uint64) (*domain.Review, error)
	Reject(ctx context.Context, id uint64) (*domain.Review, error)
	Delete(ctx context.Context, id uint64) error
	ListForProduct(ctx context.Context, productID uint64) ([]domain.Review, error)
	ListReviews(ctx context.Context, q domain.ReviewQuery) ([]domain.Review, error)
}

type ReviewHandler struct {
	reviewService ReviewService
	timeout       time.Duration
}

func NewReviewHandler(reviewService ReviewService, timeout time.Duration) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		timeout:       timeout,
	}
}

func reviewErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrReviewNotFound), errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, review.ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GET /api/v1/products/:id/reviews
func (h *ReviewHandler) ListProductReviews(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	reviews, err := h.reviewService.ListForProduct(ctx, productID)
	if err != nil {
		return c.JSON(reviewErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(reviews))
}

// POST /api/v1/products/:id/reviews
// The product in the path wins over any product_id in the body.
func (h *ReviewHandler) SubmitReview(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	var in review.ReviewInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	in.ProductID = productID

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.reviewService.Submit(ctx, in)
	if err != nil {
		return c.JSON(reviewErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(created))
}

// GET /api/v1/reviews?status=pending|approved|all&product_id=&q=
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	q := domain.ReviewQuery{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("q"),
	}
	if raw := c.QueryParam("product_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
		}
		q.ProductID = id
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	reviews, err := h.reviewService.ListReviews(ctx, q)
	if err != nil {
		return c.JSON(reviewErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(reviews))
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	var in review.ReviewInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.reviewService.Create(ctx, in)
	if err != nil {
		return c.JSON(reviewErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(created))
}

func (h *ReviewHandler) ApproveReview(c echo.Context) error {
	return h.moderate(c, h.reviewService.Approve)
}

func (h *ReviewHandler) RejectReview(c echo.Context) error {
	return h.moderate(c, h.reviewService.Reject)
}

func (h *ReviewHandler) moderate(c echo.Context, fn func(context.Context, uint64) (*domain.Review, error)) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid review id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := fn(ctx, id)
	if err != nil {
		return c.JSON(reviewErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updated))
}

func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid review id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.reviewService.Delete(ctx, id); err != nil {
		return c.JSON(reviewErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "review deleted"})
}
