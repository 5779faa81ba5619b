package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("SEARCH_TRENDING_TERMS", "")
	t.Setenv("COUPON_SOURCE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Search.ResultLimit)
	assert.Equal(t, 8, cfg.Recommendation.DefaultLimit)
	assert.Equal(t, 60*time.Second, cfg.Recommendation.CacheTTL)
	assert.Equal(t, CouponSourceDatabase, cfg.Coupon.Source)
	assert.Equal(t, 720*time.Hour, cfg.Redis.HistoryTTL)
	assert.Equal(t, []string{"iPhone", "Samsung", "Laptops", "Auriculares"}, cfg.Search.TrendingTerms)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("SEARCH_RESULT_LIMIT", "12")
	t.Setenv("SEARCH_TRENDING_TERMS", " Monitores, ,Teclados ")
	t.Setenv("RECOMMENDATION_CACHE_TTL_SECONDS", "5")
	t.Setenv("COUPON_SOURCE", "static")
	t.Setenv("HISTORY_TTL_HOURS", "48")
	t.Setenv("ADMIN_API_KEY", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Search.ResultLimit)
	assert.Equal(t, []string{"Monitores", "Teclados"}, cfg.Search.TrendingTerms)
	assert.Equal(t, 5*time.Second, cfg.Recommendation.CacheTTL)
	assert.Equal(t, CouponSourceStatic, cfg.Coupon.Source)
	assert.Equal(t, 48*time.Hour, cfg.Redis.HistoryTTL)
	assert.Equal(t, "s3cret", cfg.Server.AdminAPIKey)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "missing password",
			env:  map[string]string{"DB_PASSWORD": ""},
			want: "missing database password",
		},
		{
			name: "non numeric limit",
			env:  map[string]string{"DB_PASSWORD": "x", "SEARCH_RESULT_LIMIT": "eight"},
			want: "invalid search result limit",
		},
		{
			name: "zero limit",
			env:  map[string]string{"DB_PASSWORD": "x", "SEARCH_RESULT_LIMIT": "0"},
			want: "search result limit must be greater than 0",
		},
		{
			name: "non numeric history ttl",
			env:  map[string]string{"DB_PASSWORD": "x", "HISTORY_TTL_HOURS": "week"},
			want: "invalid history ttl",
		},
		{
			name: "unknown coupon source",
			env:  map[string]string{"DB_PASSWORD": "x", "COUPON_SOURCE": "sheet"},
			want: `unknown coupon source "sheet"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "store", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=store port=5432 sslmode=disable TimeZone=UTC", d.DSN())
}
