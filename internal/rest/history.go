package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"bamkzStore/business/history"
	"bamkzStore/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type HistoryService interface {
	TrackView(ctx context.Context, sessionID string, productID uint64) error
	TrackPurchase(ctx context.Context, sessionID string, productIDs []uint64) error
	Snapshot(ctx context.Context, sessionID string) (domain.HistorySnapshot, error)
	RecentSearches(ctx context.Context, sessionID string) ([]string, error)
}

type HistoryHandler struct {
	historyService HistoryService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewHistoryHandler(historyService HistoryService, timeout time.Duration) *HistoryHandler {
	return &HistoryHandler{
		historyService: historyService,
		validator:      validator.New(),
		timeout:        timeout,
	}
}

type TrackViewRequest struct {
	ProductID uint64 `json:"product_id" validate:"required"`
}

type TrackPurchaseRequest struct {
	ProductIDs []uint64 `json:"product_ids" validate:"required,min=1,dive,required"`
}

type historyResponse struct {
	domain.HistorySnapshot
	RecentSearches []string `json:"recent_searches"`
}

func (h *HistoryHandler) session(c echo.Context) (string, bool) {
	id := sessionID(c)
	return id, id != ""
}

func historyErrorStatus(err error) int {
	if errors.Is(err, history.ErrInvalidArgument) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// GET /api/v1/history
func (h *HistoryHandler) GetHistory(c echo.Context) error {
	session, ok := h.session(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: SessionHeader + " header is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	snap, err := h.historyService.Snapshot(ctx, session)
	if err != nil {
		return c.JSON(historyErrorStatus(err), ResponseError{Message: err.Error()})
	}
	recent, err := h.historyService.RecentSearches(ctx, session)
	if err != nil {
		return c.JSON(historyErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(historyResponse{
		HistorySnapshot: snap,
		RecentSearches:  recent,
	}))
}

// POST /api/v1/history/views
func (h *HistoryHandler) TrackView(c echo.Context) error {
	session, ok := h.session(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: SessionHeader + " header is required"})
	}

	var req TrackViewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.historyService.TrackView(ctx, session, req.ProductID); err != nil {
		return c.JSON(historyErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("view recorded"))
}

// POST /api/v1/history/purchases
func (h *HistoryHandler) TrackPurchase(c echo.Context) error {
	session, ok := h.session(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: SessionHeader + " header is required"})
	}

	var req TrackPurchaseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.historyService.TrackPurchase(ctx, session, req.ProductIDs); err != nil {
		return c.JSON(historyErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("purchase recorded"))
}
