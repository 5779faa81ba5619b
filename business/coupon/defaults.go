package coupon

import (
	"time"

	"bamkzStore/domain"
)

// DefaultCoupons is the launch catalogue, served when coupons are not read
// from the database.
func DefaultCoupons() []domain.Coupon {
	flashExpiry := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)

	return []domain.Coupon{
		{
			Code:        "BIENVENIDO10",
			Type:        domain.CouponTypePercentage,
			Value:       10,
			MinAmount:   floatPtr(50000),
			IsActive:    true,
			Description: "10% off for new customers (minimum $50.000)",
		},
		{
			Code:        "ENVIOGRATIS",
			Type:        domain.CouponTypeFixed,
			Value:       15000,
			MinAmount:   floatPtr(80000),
			IsActive:    true,
			Description: "Free shipping on orders over $80.000",
		},
		{
			Code:        "FLASH20",
			Type:        domain.CouponTypePercentage,
			Value:       20,
			MaxDiscount: floatPtr(100000),
			ExpiresAt:   &flashExpiry,
			IsActive:    true,
			Description: "Flash sale 20% off (up to $100.000)",
		},
		{
			Code:        "PRIMERA50",
			Type:        domain.CouponTypeFixed,
			Value:       50000,
			MinAmount:   floatPtr(200000),
			IsActive:    true,
			Description: "$50.000 off your first purchase (minimum $200.000)",
		},
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
