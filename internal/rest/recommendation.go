package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"bamkzStore/business/recommendation"
	"bamkzStore/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendationHandler struct {
		validate     *validator.Validate
		recoService  RecommendationService
		defaultLimit int
		timeout      time.Duration
	}

	RecommendationService interface {
		Recommend(ctx context.Context, req recommendation.Request) ([]domain.ScoredCandidate, error)
	}

	RecommendQuery struct {
		Slot         string `query:"slot" validate:"omitempty,max=64"`
		ProductID    uint64 `query:"product_id"`
		Category     string `query:"category"`
		N            int    `query:"n" validate:"lte=100"`
		PositiveOnly bool   `query:"positive_only"`
	}
)

func NewRecommendationHandler(svc RecommendationService, defaultLimit int, timeout time.Duration) *RecommendationHandler {
	return &RecommendationHandler{
		validate:     validator.New(),
		recoService:  svc,
		defaultLimit: defaultLimit,
		timeout:      timeout,
	}
}

// GET /api/v1/recommendations?slot=pdp_similar&product_id=12&n=8
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	target, err := queryInt64(c, "target_price")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	// an explicit n, even zero, is honoured
	if !c.QueryParams().Has("n") {
		q.N = h.defaultLimit
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.recoService.Recommend(ctx, recommendation.Request{
		Slot:               q.Slot,
		SessionID:          sessionID(c),
		ProductID:          q.ProductID,
		Category:           q.Category,
		TargetPrice:        target,
		Limit:              q.N,
		ExcludeNonPositive: q.PositiveOnly,
	})
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}
