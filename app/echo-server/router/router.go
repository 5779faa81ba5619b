package router

import (
	"bamkzStore/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, adminOnly echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/:id", handler.GetProductByID)
	products.POST("", handler.CreateProduct, adminOnly)
	products.PUT("/:id", handler.UpdateProduct, adminOnly)
	products.DELETE("/:id", handler.DeleteProduct, adminOnly)
}

func SetupCategoryRoutes(api *echo.Group, handler *rest.CategoryHandler, adminOnly echo.MiddlewareFunc) {
	categories := api.Group("/categories")

	categories.GET("", handler.GetAllCategories)
	categories.GET("/:id", handler.GetCategoryByID)
	categories.POST("", handler.CreateCategory, adminOnly)
	categories.PUT("/:id", handler.UpdateCategory, adminOnly)
	categories.DELETE("/:id", handler.DeleteCategory, adminOnly)
}

func SetupSearchRoutes(api *echo.Group, handler *rest.SearchHandler) {
	search := api.Group("/search")

	search.GET("", handler.Search)
	search.GET("/suggestions", handler.Suggest)
}

func SetRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler) {
	reco := api.Group("/recommendations")
	reco.GET("", handler.Recommend)
}

func SetRecommendationAdminRoutes(api *echo.Group, handler *rest.RecommendationAdminHandler, adminOnly echo.MiddlewareFunc) {
	admin := api.Group("/admin/recommendations", adminOnly)

	admin.GET("/weights", handler.GetWeights)
	admin.PUT("/weights", handler.UpsertWeights)
}

func SetCouponRoutes(api *echo.Group, handler *rest.CouponHandler, adminOnly echo.MiddlewareFunc) {
	coupons := api.Group("/coupons")

	coupons.POST("/apply", handler.Apply)
	coupons.POST("/redeem", handler.Redeem)

	coupons.GET("", handler.ListCoupons, adminOnly)
	coupons.POST("", handler.CreateCoupon, adminOnly)
	coupons.PUT("/:code", handler.UpdateCoupon, adminOnly)
	coupons.DELETE("/:code", handler.DeleteCoupon, adminOnly)
}

func SetHistoryRoutes(api *echo.Group, handler *rest.HistoryHandler) {
	history := api.Group("/history")

	history.GET("", handler.GetHistory)
	history.POST("/views", handler.TrackView)
	history.POST("/purchases", handler.TrackPurchase)
}

func SetReviewRoutes(api *echo.Group, handler *rest.ReviewHandler, adminOnly echo.MiddlewareFunc) {
	api.GET("/products/:id/reviews", handler.ListProductReviews)
	api.POST("/products/:id/reviews", handler.SubmitReview)

	reviews := api.Group("/reviews", adminOnly)

	reviews.GET("", handler.ListReviews)
	reviews.POST("", handler.CreateReview)
	reviews.PUT("/:id/approve", handler.ApproveReview)
	reviews.PUT("/:id/reject", handler.RejectReview)
	reviews.DELETE("/:id", handler.DeleteReview)
}
