package search

import (
	"testing"

	"bamkzStore/domain"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		want  bool
	}{
		{"substring", "iPhone 14 Pro", "phone", true},
		{"case insensitive", "MacBook Air", "MACBOOK", true},
		{"subsequence", "Smartphones", "Smrtphn", true},
		{"out of order", "Smartphones", "nohp", false},
		{"empty query", "anything", "", false},
		{"empty text", "", "a", false},
		{"multibyte", "Auriculares inalámbricos", "inalmbr", true},
		{"accented query", "Cámara réflex", "CÁMARA", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.text, tt.query))
		})
	}
}

func TestClassify(t *testing.T) {
	iphone := domain.Product{ID: 1, Name: "iPhone 14 Pro", Category: "Smartphones", Description: "Último modelo de Apple"}
	galaxy := domain.Product{ID: 2, Name: "Samsung Galaxy S23", Category: "Smartphones"}
	macbook := domain.Product{ID: 3, Name: "MacBook Air M2", Category: "Laptops", Description: "Laptop ultraligera"}
	bare := domain.Product{ID: 4, Name: "Galaxy S23", Category: "Smartphones"}

	tests := []struct {
		name    string
		product domain.Product
		query   string
		want    domain.MatchClassification
		ok      bool
	}{
		{"name substring is exact", iphone, "iPhone", domain.MatchExact, true},
		{"category substring", macbook, "lap", domain.MatchCategory, true},
		{"category only", galaxy, "phones", domain.MatchCategory, true},
		{"name subsequence is partial", galaxy, "sgs", domain.MatchPartial, true},
		{"description subsequence is partial", macbook, "ultra", domain.MatchPartial, true},
		{"category subsequence is fuzzy", bare, "Smrtphn", domain.MatchFuzzy, true},
		{"no field matches", iphone, "xyz", 0, false},
		{"empty query", iphone, "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.product, tt.query)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got, "got %s", got)
			}
		})
	}
}

func TestClassifyNeverWeakerThanNameSubstring(t *testing.T) {
	products := []domain.Product{
		{Name: "AirPods Pro", Category: "Auriculares", Description: "Auriculares inalámbricos"},
		{Name: "iPad Pro 12.9\"", Category: "Tablets", Description: "Tablet profesional"},
		{Name: "Pro Display", Category: "Monitores"},
	}

	for _, p := range products {
		class, ok := Classify(p, "pro")
		assert.True(t, ok)
		assert.Equal(t, domain.MatchExact, class, p.Name)
	}
}

func TestRankOrdersByTierAndKeepsInputOrder(t *testing.T) {
	products := []domain.Product{
		{ID: 10, Name: "Galaxy S23", Category: "Smartphones"},
		{ID: 11, Name: "Smartphone Case", Category: "Accesorios"},
		{ID: 12, Name: "Pixel 8", Category: "Smartphones"},
		{ID: 13, Name: "Smart TV", Category: "Televisores", Description: "Pantalla para tu smartphone"},
		{ID: 14, Name: "Smartphone Stand", Category: "Accesorios"},
		{ID: 15, Name: "Teclado", Category: "Accesorios"},
	}

	results := Rank(products, "smartphone")

	ids := make([]uint64, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.ProductID)
	}

	assert.Equal(t, []uint64{11, 14, 10, 12, 13}, ids)
	assert.Equal(t, domain.MatchExact, results[0].Classification)
	assert.Equal(t, domain.MatchCategory, results[2].Classification)
	assert.Equal(t, domain.MatchPartial, results[4].Classification)
}

func TestRankEmpty(t *testing.T) {
	assert.Empty(t, Rank(nil, "anything"))
	assert.Empty(t, Rank([]domain.Product{{Name: "x"}}, ""))
}
