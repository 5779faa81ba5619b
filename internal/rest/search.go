package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"bamkzStore/business/search"
	"bamkzStore/domain"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type SearchService interface {
	Search(ctx context.Context, req search.SearchRequest) ([]domain.MatchResult, error)
	Suggest(ctx context.Context, sessionID, query string) ([]domain.SearchSuggestion, error)
}

type SearchHandler struct {
	searchService SearchService
	timeout       time.Duration
}

func NewSearchHandler(searchService SearchService, timeout time.Duration) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		timeout:       timeout,
	}
}

// GET /api/v1/search?q=laptop&category=Laptops&min_price=100000&in_stock=true
func (h *SearchHandler) Search(c echo.Context) error {
	req := search.SearchRequest{
		SessionID: sessionID(c),
		Filters: domain.SearchFilters{
			Category: strings.TrimSpace(c.QueryParam("category")),
		},
	}
	if c.QueryParams().Has("q") {
		q := c.QueryParam("q")
		req.Query = &q
	}

	var err error
	if req.Filters.MinPrice, err = queryInt64(c, "min_price"); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if req.Filters.MaxPrice, err = queryInt64(c, "max_price"); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if req.Filters.MinRating, err = queryFloat(c, "min_rating"); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if req.Filters.InStock, err = queryBool(c, "in_stock"); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	results, err := h.searchService.Search(ctx, req)
	if err != nil {
		if errors.Is(err, search.ErrInvalidArgument) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(results))
}

// GET /api/v1/search/suggestions?q=lap
func (h *SearchHandler) Suggest(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	suggestions, err := h.searchService.Suggest(ctx, sessionID(c), c.QueryParam("q"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(suggestions))
}
