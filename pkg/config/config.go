package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	CouponSourceDatabase = "database"
	CouponSourceStatic   = "static"
)

type Config struct {
	App            AppConfig
	Server         ServerConfig
	Database       DatabaseConfig
	Redis          RedisConfig
	Search         SearchConfig
	Recommendation RecommendationConfig
	Coupon         CouponConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port           string
	RequestTimeout time.Duration
	AllowOrigins   []string
	AdminAPIKey    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Enabled       bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	HistoryTTL    time.Duration
}

type SearchConfig struct {
	ResultLimit   int
	TrendingTerms []string
}

type RecommendationConfig struct {
	DefaultLimit int
	CacheTTL     time.Duration
}

type CouponConfig struct {
	Source string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	resultLimit, err := getEnvInt("SEARCH_RESULT_LIMIT", 8)
	if err != nil {
		return nil, errors.New("invalid search result limit")
	}

	recoLimit, err := getEnvInt("RECOMMENDATION_DEFAULT_LIMIT", 8)
	if err != nil {
		return nil, errors.New("invalid recommendation default limit")
	}

	cacheTTL, err := getEnvInt("RECOMMENDATION_CACHE_TTL_SECONDS", 60)
	if err != nil {
		return nil, errors.New("invalid recommendation cache ttl")
	}

	historyTTL, err := getEnvInt("HISTORY_TTL_HOURS", 720)
	if err != nil {
		return nil, errors.New("invalid history ttl")
	}

	timeout, err := getEnvInt("REQUEST_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, errors.New("invalid request timeout")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Bamkz Store API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RequestTimeout: time.Duration(timeout) * time.Second,
			AllowOrigins:   getEnvList("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000", "http://localhost:8080"}),
			AdminAPIKey:    getEnv("ADMIN_API_KEY", ""),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "bamkz_store"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Enabled:       getEnv("REDIS_ENABLED", "true") == "true",
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
			HistoryTTL:    time.Duration(historyTTL) * time.Hour,
		},
		Search: SearchConfig{
			ResultLimit:   resultLimit,
			TrendingTerms: getEnvList("SEARCH_TRENDING_TERMS", []string{"iPhone", "Samsung", "Laptops", "Auriculares"}),
		},
		Recommendation: RecommendationConfig{
			DefaultLimit: recoLimit,
			CacheTTL:     time.Duration(cacheTTL) * time.Second,
		},
		Coupon: CouponConfig{
			Source: getEnv("COUPON_SOURCE", CouponSourceDatabase),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.Password == "" {
		return errors.New("missing database password")
	}

	if c.Search.ResultLimit <= 0 {
		return errors.New("search result limit must be greater than 0")
	}

	if c.Recommendation.DefaultLimit <= 0 {
		return errors.New("recommendation default limit must be greater than 0")
	}

	if c.Recommendation.CacheTTL < 0 {
		return errors.New("recommendation cache ttl cannot be negative")
	}

	if c.Coupon.Source != CouponSourceDatabase && c.Coupon.Source != CouponSourceStatic {
		return fmt.Errorf("unknown coupon source %q", c.Coupon.Source)
	}

	return nil
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}

	return strconv.Atoi(val)
}

// getEnvList reads a comma separated value, dropping blank entries.
func getEnvList(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}

	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}

	return out
}
