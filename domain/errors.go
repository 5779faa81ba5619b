package domain

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryInUse    = errors.New("category still has products")
	ErrReviewNotFound   = errors.New("review not found")
	ErrCouponNotFound   = errors.New("coupon not found")
	ErrCouponExists     = errors.New("coupon code already exists")
	ErrCouponExhausted  = errors.New("coupon usage limit reached")
)
