package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpmetrics "bamkzStore/app/echo-server/metrics"
	"bamkzStore/app/echo-server/router"
	"bamkzStore/business/category"
	"bamkzStore/business/coupon"
	"bamkzStore/business/history"
	"bamkzStore/business/product"
	"bamkzStore/business/recommendation"
	"bamkzStore/business/review"
	"bamkzStore/business/search"
	"bamkzStore/internal/middleware"
	"bamkzStore/internal/repository/memory"
	psqlRepo "bamkzStore/internal/repository/postgres"
	redisRepo "bamkzStore/internal/repository/redis"
	"bamkzStore/internal/rest"
	"bamkzStore/pkg/config"
	"bamkzStore/pkg/database"
	redisdb "bamkzStore/pkg/database/redis"
	"bamkzStore/pkg/logger"
	"bamkzStore/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Bamkz Store", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer func() {
		if err := database.ClosePostgres(db); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	logger.Info("Database connected successfully")

	// Redis is optional: without it history lives in process and
	// recommendations are not cached.
	var redisClient *goredis.Client
	if cfg.Redis.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err = redisdb.NewRedisClient(ctx, cfg.Redis)
		cancel()
		if err != nil {
			logger.Warn("Redis unavailable, falling back to in-memory history", "error", err)
			redisClient = nil
		} else {
			defer redisdb.CloseRedisClient(redisClient)
			logger.Info("Redis connected successfully")
		}
	}

	metrics.Init()
	httpmetrics.Init()

	validate := validator.New()

	// Init repo
	productRepo := psqlRepo.NewProductRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)
	eventRepo := psqlRepo.NewProductEventRepository(db)
	weightsRepo := psqlRepo.NewRecommendationWeightsRepository(db)
	reviewRepo := psqlRepo.NewReviewRepository(db)

	var couponRepo coupon.CouponRepository = psqlRepo.NewCouponRepository(db)
	if cfg.Coupon.Source == config.CouponSourceStatic {
		couponRepo = memory.NewCouponRepository(coupon.DefaultCoupons()...)
		logger.Info("Serving the built-in coupon catalogue")
	}

	var historyStore history.Store = memory.NewBoundedHistoryStore(cfg.Redis.HistoryTTL, memory.DefaultMaxSessions)
	var recoCache recommendation.Cache = recommendation.NoopCache{}
	if redisClient != nil {
		historyStore = redisRepo.NewHistoryStore(redisClient, cfg.Redis.HistoryTTL)
		recoCache = redisRepo.NewRecommendationCache(redisClient)
	}

	// Init service
	historyService := history.NewService(historyStore, eventRepo)
	productService := product.NewProductService(productRepo)
	categoryService := category.NewCategoryService(categoryRepo)
	searchService := search.NewSearchService(productRepo, categoryRepo, historyService, search.Config{
		ResultLimit:   cfg.Search.ResultLimit,
		TrendingTerms: cfg.Search.TrendingTerms,
	})
	recoService := recommendation.NewService(
		productRepo,
		historyService,
		weightsRepo,
		recoCache,
		cfg.Recommendation.CacheTTL,
		recommendation.DefaultWeights(),
	)
	couponService := coupon.NewCouponService(couponRepo, validate)
	reviewService := review.NewReviewService(reviewRepo, productRepo, validate)

	// Init handler
	timeout := cfg.Server.RequestTimeout
	productHandler := rest.NewProductHandler(productService, timeout)
	categoryHandler := rest.NewCategoryHandler(categoryService, timeout)
	searchHandler := rest.NewSearchHandler(searchService, timeout)
	recoHandler := rest.NewRecommendationHandler(recoService, cfg.Recommendation.DefaultLimit, timeout)
	recoAdminHandler := rest.NewRecommendationAdminHandler(recoService)
	couponHandler := rest.NewCouponHandler(couponService, timeout)
	historyHandler := rest.NewHistoryHandler(historyService, timeout)
	reviewHandler := rest.NewReviewHandler(reviewService, timeout)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(httpmetrics.Middleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			rest.SessionHeader,
			middleware.AdminKeyHeader,
			middleware.RequestIDHeader,
		},
	}))

	if cfg.Server.AdminAPIKey == "" {
		logger.Warn("ADMIN_API_KEY is not set, admin routes will reject every request")
	}
	adminOnly := middleware.AdminOnly(cfg.Server.AdminAPIKey)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupProductRoutes(api, productHandler, adminOnly)
	router.SetupCategoryRoutes(api, categoryHandler, adminOnly)
	router.SetupSearchRoutes(api, searchHandler)
	router.SetRecommendationRoutes(api, recoHandler)
	router.SetRecommendationAdminRoutes(api, recoAdminHandler, adminOnly)
	router.SetCouponRoutes(api, couponHandler, adminOnly)
	router.SetHistoryRoutes(api, historyHandler)
	router.SetReviewRoutes(api, reviewHandler, adminOnly)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
