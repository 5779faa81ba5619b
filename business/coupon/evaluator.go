package coupon

import (
	"fmt"
	"strconv"
	"time"

	"bamkzStore/domain"
)

// Validate checks c against subtotal at the current time.
func Validate(c domain.Coupon, subtotal float64) domain.CouponValidation {
	return ValidateAt(c, subtotal, time.Now())
}

// ValidateAt reports the first rule c breaks, in this order: active flag,
// expiry, minimum amount, usage limit.
func ValidateAt(c domain.Coupon, subtotal float64, now time.Time) domain.CouponValidation {
	if !c.IsActive {
		return domain.CouponValidation{Status: domain.CouponInactive, Message: "coupon is not active"}
	}

	if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return domain.CouponValidation{Status: domain.CouponExpired, Message: "coupon has expired"}
	}

	if c.MinAmount != nil && subtotal < *c.MinAmount {
		return domain.CouponValidation{
			Status:  domain.CouponBelowMinimum,
			Message: fmt.Sprintf("minimum order amount required: %s", strconv.FormatFloat(*c.MinAmount, 'f', -1, 64)),
		}
	}

	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return domain.CouponValidation{Status: domain.CouponLimitReached, Message: "coupon usage limit reached"}
	}

	return domain.CouponValidation{Status: domain.CouponValid}
}

// ComputeDiscount returns the amount c takes off subtotal. The result is
// always within [0, subtotal] and within MaxDiscount for percentage coupons.
// It is only meaningful for a coupon that validated.
func ComputeDiscount(c domain.Coupon, subtotal float64) float64 {
	if subtotal <= 0 {
		return 0
	}

	var discount float64
	switch c.Type {
	case domain.CouponTypePercentage:
		discount = subtotal * (c.Value / 100)
		if c.MaxDiscount != nil && discount > *c.MaxDiscount {
			discount = *c.MaxDiscount
		}
	case domain.CouponTypeFixed:
		discount = min(c.Value, subtotal)
	}

	return max(0, min(discount, subtotal))
}
