package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bamkzStore/business/product"
	"bamkzStore/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductService struct {
	lastQuery   domain.ProductQuery
	lastProduct *domain.Product
}

func (f *fakeProductService) ListProducts(ctx context.Context, q domain.ProductQuery) (domain.ProductPage, error) {
	f.lastQuery = q
	if q.SortBy == "cheapest" {
		return domain.ProductPage{}, product.ErrInvalidArgument
	}
	return domain.ProductPage{Products: []domain.Product{{ID: 1, Name: "Laptop"}}, Total: 1, Page: 1, PerPage: 12}, nil
}

func (f *fakeProductService) GetProductByID(ctx context.Context, id uint64) (*domain.Product, error) {
	if id != 1 {
		return nil, domain.ErrProductNotFound
	}
	return &domain.Product{ID: 1, Name: "Laptop"}, nil
}

func (f *fakeProductService) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	f.lastProduct = p
	p.ID = 10
	return p, nil
}

func (f *fakeProductService) UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	f.lastProduct = p
	if p.ID != 1 {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductService) DeleteProduct(ctx context.Context, id uint64) error {
	if id != 1 {
		return domain.ErrProductNotFound
	}
	return nil
}

func productServer(svc ProductService) *echo.Echo {
	h := NewProductHandler(svc, time.Second)

	e := echo.New()
	e.GET("/products", h.GetAllProducts)
	e.GET("/products/:id", h.GetProductByID)
	e.POST("/products", h.CreateProduct)
	e.PUT("/products/:id", h.UpdateProduct)
	e.DELETE("/products/:id", h.DeleteProduct)
	return e
}

func TestProductListHandler(t *testing.T) {
	svc := &fakeProductService{}
	e := productServer(svc)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/products?category=Laptops&sort=price_asc&page=2&per_page=5&min_price=100&in_stock=true", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Laptop")

	assert.Equal(t, "Laptops", svc.lastQuery.Category)
	assert.Equal(t, domain.SortPriceAsc, svc.lastQuery.SortBy)
	assert.Equal(t, 2, svc.lastQuery.Page)
	assert.Equal(t, 5, svc.lastQuery.PerPage)
	require.NotNil(t, svc.lastQuery.MinPrice)
	assert.Equal(t, int64(100), *svc.lastQuery.MinPrice)
	assert.Nil(t, svc.lastQuery.MaxPrice)
	assert.True(t, svc.lastQuery.InStock)
}

func TestProductListHandlerBadQuery(t *testing.T) {
	e := productServer(&fakeProductService{})

	for _, url := range []string{
		"/products?sort=cheapest",
		"/products?min_price=abc",
		"/products?min_rating=high",
		"/products?in_stock=maybe",
		"/products?page=-1",
	} {
		rec := serve(e, httptest.NewRequest(http.MethodGet, url, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, url)
	}
}

func TestProductCRUDHandlers(t *testing.T) {
	svc := &fakeProductService{}
	e := productServer(svc)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/products/1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/products/2", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/products/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(e, jsonRequest(http.MethodPost, "/products", `{"name":"Audífonos","category":"Audio","price":89990,"stock":0,"rating":4.6}`))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.lastProduct)
	assert.Equal(t, "Audio", svc.lastProduct.Category)
	require.NotNil(t, svc.lastProduct.Stock)
	assert.Equal(t, 0, *svc.lastProduct.Stock)

	rec = serve(e, jsonRequest(http.MethodPost, "/products", `{"name":"Audífonos","category":"Audio","price":10,"rating":7}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(e, jsonRequest(http.MethodPut, "/products/9", `{"name":"X","category":"Y","price":1}`))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(e, httptest.NewRequest(http.MethodDelete, "/products/1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"product_id":1`)
}
