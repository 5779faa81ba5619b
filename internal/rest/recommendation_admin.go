package rest

import (
	"context"
	"errors"
	"net/http"

	"bamkzStore/business/recommendation"

	"github.com/labstack/echo/v4"
)

type RecommendationAdminService interface {
	GetWeights(ctx context.Context, slot string) (recommendation.Weights, error)
	UpsertWeights(ctx context.Context, slot string, w recommendation.Weights) error
}

type RecommendationAdminHandler struct {
	svc RecommendationAdminService
}

func NewRecommendationAdminHandler(svc RecommendationAdminService) *RecommendationAdminHandler {
	return &RecommendationAdminHandler{svc: svc}
}

type weightsBody struct {
	Slot string `json:"slot"`
	recommendation.Weights
}

// GET /api/v1/admin/recommendations/weights?slot=home_row1
func (h *RecommendationAdminHandler) GetWeights(c echo.Context) error {
	ctx := c.Request().Context()
	slot := c.QueryParam("slot")

	if slot == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "slot is required",
		})
	}

	w, err := h.svc.GetWeights(ctx, slot)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, weightsBody{Slot: slot, Weights: w})
}

// PUT /api/v1/admin/recommendations/weights
// body: slot plus the full weights object
func (h *RecommendationAdminHandler) UpsertWeights(c echo.Context) error {
	ctx := c.Request().Context()

	var body weightsBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid body: " + err.Error(),
		})
	}
	if body.Slot == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "slot is required",
		})
	}

	if err := h.svc.UpsertWeights(ctx, body.Slot, body.Weights); err != nil {
		switch {
		case errors.Is(err, recommendation.ErrInvalidWeights):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, recommendation.ErrWeightsReadOnly):
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "ok",
	})
}
