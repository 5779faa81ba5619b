package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bamkzStore/business/history"
	"bamkzStore/internal/repository/memory"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyServer() *echo.Echo {
	h := NewHistoryHandler(history.NewService(memory.NewHistoryStore(), nil), time.Second)

	e := echo.New()
	e.GET("/history", h.GetHistory)
	e.POST("/history/views", h.TrackView)
	e.POST("/history/purchases", h.TrackPurchase)
	return e
}

func withSession(req *http.Request, session string) *http.Request {
	req.Header.Set(SessionHeader, session)
	return req
}

func TestHistoryHandlerRequiresSession(t *testing.T) {
	e := historyServer()

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/history", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), SessionHeader)

	rec = serve(e, jsonRequest(http.MethodPost, "/history/views", `{"product_id":1}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistoryHandlerTracksActivity(t *testing.T) {
	e := historyServer()

	for _, body := range []string{`{"product_id":3}`, `{"product_id":7}`} {
		rec := serve(e, withSession(jsonRequest(http.MethodPost, "/history/views", body), "sess-1"))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := serve(e, withSession(jsonRequest(http.MethodPost, "/history/purchases", `{"product_ids":[9,2]}`), "sess-1"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = serve(e, withSession(httptest.NewRequest(http.MethodGet, "/history", nil), "sess-1"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"viewed":[7,3]`)
	assert.Contains(t, rec.Body.String(), `"purchased":[2,9]`)
	assert.Contains(t, rec.Body.String(), `"recent_searches":[]`)

	rec = serve(e, withSession(httptest.NewRequest(http.MethodGet, "/history", nil), "sess-2"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"viewed":[]`)
}

func TestHistoryHandlerRejectsBadBodies(t *testing.T) {
	e := historyServer()

	for _, tt := range []struct {
		path string
		body string
	}{
		{"/history/views", `{"product_id":0}`},
		{"/history/views", `{"product_id":"x"}`},
		{"/history/purchases", `{"product_ids":[]}`},
		{"/history/purchases", `{"product_ids":[4,0]}`},
	} {
		rec := serve(e, withSession(jsonRequest(http.MethodPost, tt.path, tt.body), "sess-1"))
		assert.Equal(t, http.StatusBadRequest, rec.Code, tt.body)
	}
}
