package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bamkzStore/business/recommendation"
	"bamkzStore/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecoService struct {
	lastReq recommendation.Request
	called  bool
	weights map[string]recommendation.Weights
	err     error
}

func (f *fakeRecoService) Recommend(ctx context.Context, req recommendation.Request) ([]domain.ScoredCandidate, error) {
	f.called = true
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return []domain.ScoredCandidate{{Product: domain.Product{ID: 2, Name: "Mouse"}, Score: 40}}, nil
}

func (f *fakeRecoService) GetWeights(ctx context.Context, slot string) (recommendation.Weights, error) {
	if w, ok := f.weights[slot]; ok {
		return w, nil
	}
	return recommendation.DefaultWeights(), nil
}

func (f *fakeRecoService) UpsertWeights(ctx context.Context, slot string, w recommendation.Weights) error {
	if err := w.Validate(); err != nil {
		return fmt.Errorf("%w: %s", recommendation.ErrInvalidWeights, err.Error())
	}
	if f.weights == nil {
		f.weights = map[string]recommendation.Weights{}
	}
	f.weights[slot] = w
	return nil
}

func recoServer(svc *fakeRecoService) *echo.Echo {
	e := echo.New()
	h := NewRecommendationHandler(svc, 8, time.Second)
	admin := NewRecommendationAdminHandler(svc)
	e.GET("/recommendations", h.Recommend)
	e.GET("/admin/weights", admin.GetWeights)
	e.PUT("/admin/weights", admin.UpsertWeights)
	return e
}

func TestRecommendHandler(t *testing.T) {
	svc := &fakeRecoService{}
	req := httptest.NewRequest(http.MethodGet, "/recommendations?slot=pdp&product_id=12&category=Audio&target_price=50000&positive_only=true", nil)
	req.Header.Set(SessionHeader, "sess-1")
	rec := serve(recoServer(svc), req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Mouse")

	assert.Equal(t, "pdp", svc.lastReq.Slot)
	assert.Equal(t, "sess-1", svc.lastReq.SessionID)
	assert.Equal(t, uint64(12), svc.lastReq.ProductID)
	assert.Equal(t, "Audio", svc.lastReq.Category)
	require.NotNil(t, svc.lastReq.TargetPrice)
	assert.Equal(t, int64(50000), *svc.lastReq.TargetPrice)
	assert.Equal(t, 8, svc.lastReq.Limit)
	assert.True(t, svc.lastReq.ExcludeNonPositive)
}

func TestRecommendHandlerExplicitLimit(t *testing.T) {
	svc := &fakeRecoService{}

	rec := serve(recoServer(svc), httptest.NewRequest(http.MethodGet, "/recommendations?n=0", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, svc.lastReq.Limit)
	assert.Nil(t, svc.lastReq.TargetPrice)

	rec = serve(recoServer(svc), httptest.NewRequest(http.MethodGet, "/recommendations?n=3", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, svc.lastReq.Limit)
}

func TestRecommendHandlerBadInput(t *testing.T) {
	for _, url := range []string{
		"/recommendations?n=500",
		"/recommendations?product_id=abc",
		"/recommendations?target_price=cheap",
	} {
		svc := &fakeRecoService{}
		rec := serve(recoServer(svc), httptest.NewRequest(http.MethodGet, url, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, url)
		assert.False(t, svc.called, url)
	}
}

func TestRecommendHandlerUnknownProduct(t *testing.T) {
	svc := &fakeRecoService{err: fmt.Errorf("load reference product: %w", domain.ErrProductNotFound)}
	rec := serve(recoServer(svc), httptest.NewRequest(http.MethodGet, "/recommendations?product_id=99", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecommendationAdminWeights(t *testing.T) {
	svc := &fakeRecoService{}
	e := recoServer(svc)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/admin/weights", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/admin/weights?slot=home", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slot":"home"`)
	assert.Contains(t, rec.Body.String(), `"category":40`)

	body := `{"slot":"home","category":55,"price_tiers":[{"max_relative_diff":0.2,"points":30}],"out_of_stock":-25,"max_viewed":20}`
	req := httptest.NewRequest(http.MethodPut, "/admin/weights", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = serve(e, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 55.0, svc.weights["home"].Category)
	assert.Equal(t, 20, svc.weights["home"].MaxViewed)
	require.Len(t, svc.weights["home"].PriceTiers, 1)

	bad := `{"slot":"home","out_of_stock":5,"max_viewed":20}`
	req = httptest.NewRequest(http.MethodPut, "/admin/weights", strings.NewReader(bad))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = serve(e, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	noSlot := `{"out_of_stock":-5,"max_viewed":20}`
	req = httptest.NewRequest(http.MethodPut, "/admin/weights", strings.NewReader(noSlot))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = serve(e, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
