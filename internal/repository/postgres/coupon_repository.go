package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bamkzStore/business/coupon"
	"bamkzStore/domain"

	"gorm.io/gorm"
)

type CouponRepository struct {
	DB *gorm.DB
}

var _ coupon.CouponRepository = (*CouponRepository)(nil)

func NewCouponRepository(db *gorm.DB) *CouponRepository {
	return &CouponRepository{
		DB: db,
	}
}

func (r *CouponRepository) FindByCode(ctx context.Context, code string) (domain.Coupon, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coupon{}, fmt.Errorf("context error: %w", err)
	}

	var c domain.Coupon
	err := r.DB.WithContext(ctx).Where("UPPER(code) = ?", strings.ToUpper(strings.TrimSpace(code))).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Coupon{}, domain.ErrCouponNotFound
		}
		return domain.Coupon{}, fmt.Errorf("failed to find coupon: %w", err)
	}

	return c, nil
}

func (r *CouponRepository) FindAll(ctx context.Context) ([]domain.Coupon, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var coupons []domain.Coupon
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&coupons).Error; err != nil {
		return nil, fmt.Errorf("failed to find coupons: %w", err)
	}

	return coupons, nil
}

func (r *CouponRepository) Create(ctx context.Context, c *domain.Coupon) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrCouponExists
		}
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	return nil
}

func (r *CouponRepository) Update(ctx context.Context, c *domain.Coupon) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"type":         c.Type,
		"value":        c.Value,
		"min_amount":   c.MinAmount,
		"max_discount": c.MaxDiscount,
		"expires_at":   c.ExpiresAt,
		"usage_limit":  c.UsageLimit,
		"is_active":    c.IsActive,
		"description":  c.Description,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Coupon{}).
		Where("UPPER(code) = ?", strings.ToUpper(c.Code)).
		Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update coupon: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrCouponNotFound
	}

	return nil
}

func (r *CouponRepository) Delete(ctx context.Context, code string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).
		Where("UPPER(code) = ?", strings.ToUpper(strings.TrimSpace(code))).
		Delete(&domain.Coupon{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete coupon: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrCouponNotFound
	}

	return nil
}

// IncrementUsage bumps used_count in a single guarded UPDATE so concurrent
// redemptions cannot exceed usage_limit.
func (r *CouponRepository) IncrementUsage(ctx context.Context, code string) (domain.Coupon, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coupon{}, fmt.Errorf("context error: %w", err)
	}

	code = strings.ToUpper(strings.TrimSpace(code))

	result := r.DB.WithContext(ctx).Model(&domain.Coupon{}).
		Where("UPPER(code) = ?", code).
		Where("usage_limit IS NULL OR used_count < usage_limit").
		Updates(map[string]interface{}{
			"used_count": gorm.Expr("used_count + 1"),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return domain.Coupon{}, fmt.Errorf("failed to increment coupon usage: %w", result.Error)
	}

	c, err := r.FindByCode(ctx, code)
	if err != nil {
		return domain.Coupon{}, err
	}
	if result.RowsAffected == 0 {
		return domain.Coupon{}, domain.ErrCouponExhausted
	}

	return c, nil
}
