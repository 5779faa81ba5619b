package coupon

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bamkzStore/domain"
	"bamkzStore/pkg/logger"
	"bamkzStore/pkg/metrics"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidArgument = errors.New("invalid coupon request")
	ErrRejected        = errors.New("coupon cannot be applied")
)

type CouponRepository interface {
	FindByCode(ctx context.Context, code string) (domain.Coupon, error)
	FindAll(ctx context.Context) ([]domain.Coupon, error)
	Create(ctx context.Context, coupon *domain.Coupon) error
	Update(ctx context.Context, coupon *domain.Coupon) error
	Delete(ctx context.Context, code string) error

	// IncrementUsage bumps used_count unless the usage limit is already reached,
	// in which case it returns domain.ErrCouponExhausted.
	IncrementUsage(ctx context.Context, code string) (domain.Coupon, error)
}

type CouponInput struct {
	Code        string            `json:"code" validate:"required,alphanum,min=3,max=32"`
	Type        domain.CouponType `json:"type" validate:"required,oneof=percentage fixed"`
	Value       float64           `json:"value" validate:"gt=0"`
	MinAmount   *float64          `json:"min_amount" validate:"omitempty,gte=0"`
	MaxDiscount *float64          `json:"max_discount" validate:"omitempty,gt=0"`
	ExpiresAt   *time.Time        `json:"expires_at"`
	UsageLimit  *int              `json:"usage_limit" validate:"omitempty,gte=0"`
	IsActive    *bool             `json:"is_active"`
	Description string            `json:"description" validate:"max=255"`
}

type CouponService struct {
	couponRepo CouponRepository
	validate   *validator.Validate
	now        func() time.Time
}

func NewCouponService(couponRepo CouponRepository, validate *validator.Validate) *CouponService {
	return &CouponService{
		couponRepo: couponRepo,
		validate:   validate,
		now:        time.Now,
	}
}

// Apply evaluates code against subtotal without consuming it. A coupon that
// fails validation is not an error: the result carries the reason.
func (s *CouponService) Apply(ctx context.Context, code string, subtotal float64) (domain.AppliedCoupon, error) {
	if err := ctx.Err(); err != nil {
		return domain.AppliedCoupon{}, fmt.Errorf("context error: %w", err)
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return domain.AppliedCoupon{}, fmt.Errorf("%w: coupon code is required", ErrInvalidArgument)
	}
	if subtotal < 0 {
		return domain.AppliedCoupon{}, fmt.Errorf("%w: subtotal cannot be negative", ErrInvalidArgument)
	}

	c, err := s.couponRepo.FindByCode(ctx, code)
	if err != nil {
		return domain.AppliedCoupon{}, err
	}

	return s.evaluate(c, subtotal), nil
}

// Redeem validates the coupon like Apply and then records one use.
func (s *CouponService) Redeem(ctx context.Context, code string, subtotal float64) (domain.AppliedCoupon, error) {
	applied, err := s.Apply(ctx, code, subtotal)
	if err != nil {
		return domain.AppliedCoupon{}, err
	}
	if !applied.Validation.Valid() {
		return applied, fmt.Errorf("%w: %s", ErrRejected, applied.Validation.Message)
	}

	updated, err := s.couponRepo.IncrementUsage(ctx, applied.Coupon.Code)
	if err != nil {
		if errors.Is(err, domain.ErrCouponExhausted) {
			applied.Validation = domain.CouponValidation{Status: domain.CouponLimitReached, Message: "coupon usage limit reached"}
			applied.Discount = 0
			applied.Total = subtotal
			return applied, fmt.Errorf("%w: %s", ErrRejected, applied.Validation.Message)
		}
		logger.Error("failed to redeem coupon", "code", applied.Coupon.Code, "error", err)
		return domain.AppliedCoupon{}, fmt.Errorf("failed to redeem coupon: %w", err)
	}

	applied.Coupon = updated
	metrics.CouponRedemptions.Inc()
	logger.Info("coupon redeemed", "code", updated.Code, "used_count", updated.UsedCount)

	return applied, nil
}

func (s *CouponService) evaluate(c domain.Coupon, subtotal float64) domain.AppliedCoupon {
	v := ValidateAt(c, subtotal, s.now())
	metrics.CouponValidations.WithLabelValues(string(v.Status)).Inc()

	applied := domain.AppliedCoupon{
		Coupon:     c,
		Validation: v,
		Subtotal:   subtotal,
		Total:      subtotal,
	}
	if v.Valid() {
		applied.Discount = ComputeDiscount(c, subtotal)
		applied.Total = subtotal - applied.Discount
	}

	return applied
}

func (s *CouponService) ListCoupons(ctx context.Context) ([]domain.Coupon, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	coupons, err := s.couponRepo.FindAll(ctx)
	if err != nil {
		logger.Error("failed to list coupons", "error", err)
		return nil, err
	}

	return coupons, nil
}

func (s *CouponService) CreateCoupon(ctx context.Context, in CouponInput) (*domain.Coupon, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if err := s.check(in); err != nil {
		return nil, err
	}

	c := &domain.Coupon{IsActive: true}
	applyInput(c, in)

	if err := s.couponRepo.Create(ctx, c); err != nil {
		logger.Error("failed to create coupon", "code", c.Code, "error", err)
		return nil, err
	}

	logger.Info("coupon created", "code", c.Code)

	return c, nil
}

func (s *CouponService) UpdateCoupon(ctx context.Context, code string, in CouponInput) (*domain.Coupon, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if err := s.check(in); err != nil {
		return nil, err
	}

	existing, err := s.couponRepo.FindByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(existing.Code, in.Code) {
		return nil, fmt.Errorf("%w: coupon code cannot be changed", ErrInvalidArgument)
	}

	applyInput(&existing, in)

	if err := s.couponRepo.Update(ctx, &existing); err != nil {
		logger.Error("failed to update coupon", "code", existing.Code, "error", err)
		return nil, fmt.Errorf("failed to update coupon: %w", err)
	}

	logger.Info("coupon updated", "code", existing.Code)

	return &existing, nil
}

func (s *CouponService) DeleteCoupon(ctx context.Context, code string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("%w: coupon code is required", ErrInvalidArgument)
	}

	if err := s.couponRepo.Delete(ctx, code); err != nil {
		logger.Error("failed to delete coupon", "code", code, "error", err)
		return err
	}

	logger.Info("coupon deleted", "code", code)

	return nil
}

func (s *CouponService) check(in CouponInput) error {
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidArgument, err.Error())
	}
	if in.Type == domain.CouponTypePercentage && in.Value > 100 {
		return fmt.Errorf("%w: percentage coupon value cannot exceed 100", ErrInvalidArgument)
	}
	if in.Type == domain.CouponTypeFixed && in.MaxDiscount != nil {
		return fmt.Errorf("%w: max discount only applies to percentage coupons", ErrInvalidArgument)
	}
	return nil
}

func applyInput(c *domain.Coupon, in CouponInput) {
	c.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	c.Type = in.Type
	c.Value = in.Value
	c.MinAmount = in.MinAmount
	c.MaxDiscount = in.MaxDiscount
	c.ExpiresAt = in.ExpiresAt
	c.UsageLimit = in.UsageLimit
	c.Description = in.Description
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
}
