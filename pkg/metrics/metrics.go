package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of a full recommendation pass, cache lookups included
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommendation_latency_seconds",
		Help:    "Latency of the recommendation service",
		Buckets: prometheus.DefBuckets,
	})

	RecommendRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Recommendation requests by slot and cache outcome.",
		},
		[]string{"slot", "cache"},
	)

	SearchRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "search_requests_total",
		Help: "Total number of product searches",
	})

	SearchResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_results_total",
			Help: "Search results returned, by match classification.",
		},
		[]string{"match_type"},
	)

	CouponValidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coupon_validations_total",
			Help: "Coupon validations by resulting status.",
		},
		[]string{"status"},
	)

	CouponRedemptions = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "coupon_redemptions_total",
		Help: "Total number of redeemed coupons",
	})

	ReviewEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_events_total",
			Help: "Review submissions and moderation decisions.",
		},
		[]string{"action"},
	)
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
		SearchRequests,
		SearchResults,
		CouponValidations,
		CouponRedemptions,
		ReviewEvents,
	)
}
