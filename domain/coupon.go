package domain

import "time"

type CouponType string

const (
	CouponTypePercentage CouponType = "percentage"
	CouponTypeFixed      CouponType = "fixed"
)

// CREATE TABLE public.coupons (
//     id            BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     code          TEXT NOT NULL,
//     type          TEXT NOT NULL,
//     value         NUMERIC NOT NULL,
//     min_amount    NUMERIC,
//     max_discount  NUMERIC,
//     expires_at    TIMESTAMPTZ,
//     usage_limit   INTEGER,
//     used_count    INTEGER NOT NULL DEFAULT 0,
//     is_active     BOOLEAN NOT NULL DEFAULT TRUE,
//     description   TEXT,
//     created_at    TIMESTAMPTZ DEFAULT NOW(),
//     updated_at    TIMESTAMPTZ DEFAULT NOW()
// );
// CREATE UNIQUE INDEX idx_coupons_code_upper ON public.coupons (UPPER(code));

type Coupon struct {
	ID          uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Code        string     `gorm:"column:code;not null" json:"code"`
	Type        CouponType `gorm:"column:type;not null" json:"type"`
	Value       float64    `gorm:"column:value;type:numeric;not null" json:"value"`
	MinAmount   *float64   `gorm:"column:min_amount;type:numeric" json:"min_amount,omitempty"`
	MaxDiscount *float64   `gorm:"column:max_discount;type:numeric" json:"max_discount,omitempty"`
	ExpiresAt   *time.Time `gorm:"column:expires_at" json:"expires_at,omitempty"`
	UsageLimit  *int       `gorm:"column:usage_limit" json:"usage_limit,omitempty"`
	UsedCount   int        `gorm:"column:used_count;not null;default:0" json:"used_count"`
	IsActive    bool       `gorm:"column:is_active;not null" json:"is_active"`
	Description string     `gorm:"column:description;type:text" json:"description"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Coupon) TableName() string {
	return "coupons"
}

type CouponStatus string

const (
	CouponValid        CouponStatus = "valid"
	CouponInactive     CouponStatus = "inactive"
	CouponExpired      CouponStatus = "expired"
	CouponBelowMinimum CouponStatus = "below_minimum"
	CouponLimitReached CouponStatus = "limit_reached"
)

type CouponValidation struct {
	Status  CouponStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

func (v CouponValidation) Valid() bool {
	return v.Status == CouponValid
}

type AppliedCoupon struct {
	Coupon     Coupon           `json:"coupon"`
	Validation CouponValidation `json:"validation"`
	Subtotal   float64          `json:"subtotal"`
	Discount   float64          `json:"discount"`
	Total      float64          `json:"total"`
}
