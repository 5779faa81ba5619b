package coupon

import (
	"context"
	"sync"
	"testing"
	"time"

	"bamkzStore/domain"
	"bamkzStore/internal/repository/memory"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(seed ...domain.Coupon) *CouponService {
	if len(seed) == 0 {
		seed = DefaultCoupons()
	}
	svc := NewCouponService(memory.NewCouponRepository(seed...), validator.New())
	svc.now = func() time.Time { return beforeFlashExpiry }
	return svc
}

func TestApply(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	t.Run("capped flash sale", func(t *testing.T) {
		applied, err := svc.Apply(ctx, "FLASH20", 1000000)
		require.NoError(t, err)
		assert.True(t, applied.Validation.Valid())
		assert.InDelta(t, 100000, applied.Discount, 1e-9)
		assert.InDelta(t, 900000, applied.Total, 1e-9)
	})

	t.Run("lower case code", func(t *testing.T) {
		applied, err := svc.Apply(ctx, "  bienvenido10 ", 60000)
		require.NoError(t, err)
		assert.Equal(t, "BIENVENIDO10", applied.Coupon.Code)
		assert.InDelta(t, 6000, applied.Discount, 1e-9)
	})

	t.Run("below minimum is a result not an error", func(t *testing.T) {
		applied, err := svc.Apply(ctx, "BIENVENIDO10", 40000)
		require.NoError(t, err)
		assert.Equal(t, domain.CouponBelowMinimum, applied.Validation.Status)
		assert.Zero(t, applied.Discount)
		assert.Equal(t, 40000.0, applied.Total)
	})

	t.Run("expired flash sale", func(t *testing.T) {
		svc := newTestService()
		svc.now = func() time.Time { return time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC) }

		applied, err := svc.Apply(ctx, "FLASH20", 1000000)
		require.NoError(t, err)
		assert.Equal(t, domain.CouponExpired, applied.Validation.Status)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := svc.Apply(ctx, "NOPE", 1000)
		assert.ErrorIs(t, err, domain.ErrCouponNotFound)
	})

	t.Run("blank code", func(t *testing.T) {
		_, err := svc.Apply(ctx, "   ", 1000)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("negative subtotal", func(t *testing.T) {
		_, err := svc.Apply(ctx, "FLASH20", -1)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := svc.Apply(cctx, "FLASH20", 1000)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestApplyDoesNotConsume(t *testing.T) {
	svc := newTestService(domain.Coupon{Code: "ONCE", Type: domain.CouponTypeFixed, Value: 10, UsageLimit: intPtr(1), IsActive: true})
	ctx := context.Background()

	for range 3 {
		applied, err := svc.Apply(ctx, "ONCE", 100)
		require.NoError(t, err)
		assert.True(t, applied.Validation.Valid())
		assert.Zero(t, applied.Coupon.UsedCount)
	}
}

func TestRedeem(t *testing.T) {
	svc := newTestService(domain.Coupon{Code: "TWICE", Type: domain.CouponTypeFixed, Value: 10, UsageLimit: intPtr(2), IsActive: true})
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		applied, err := svc.Redeem(ctx, "twice", 100)
		require.NoError(t, err)
		assert.Equal(t, i, applied.Coupon.UsedCount)
		assert.InDelta(t, 90, applied.Total, 1e-9)
	}

	applied, err := svc.Redeem(ctx, "TWICE", 100)
	assert.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, domain.CouponLimitReached, applied.Validation.Status)
}

func TestRedeemRejectsBelowMinimum(t *testing.T) {
	svc := newTestService()

	_, err := svc.Redeem(context.Background(), "PRIMERA50", 100000)
	assert.ErrorIs(t, err, ErrRejected)

	coupons, err := svc.ListCoupons(context.Background())
	require.NoError(t, err)
	for _, c := range coupons {
		assert.Zero(t, c.UsedCount, c.Code)
	}
}

func TestRedeemConcurrentRespectsLimit(t *testing.T) {
	const limit = 5
	svc := newTestService(domain.Coupon{Code: "RUSH", Type: domain.CouponTypePercentage, Value: 10, UsageLimit: intPtr(limit), IsActive: true})
	ctx := context.Background()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		redeemed int
	)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Redeem(ctx, "RUSH", 1000); err == nil {
				mu.Lock()
				redeemed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, limit, redeemed)
}

func TestCreateCoupon(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.CreateCoupon(ctx, CouponInput{
		Code:        "verano15",
		Type:        domain.CouponTypePercentage,
		Value:       15,
		MaxDiscount: floatPtr(30000),
		Description: "Summer sale",
	})
	require.NoError(t, err)
	assert.Equal(t, "VERANO15", created.Code)
	assert.True(t, created.IsActive)
	assert.NotZero(t, created.ID)

	applied, err := svc.Apply(ctx, "Verano15", 100000)
	require.NoError(t, err)
	assert.InDelta(t, 15000, applied.Discount, 1e-9)

	_, err = svc.CreateCoupon(ctx, CouponInput{Code: "VERANO15", Type: domain.CouponTypeFixed, Value: 1})
	assert.ErrorIs(t, err, domain.ErrCouponExists)
}

func TestCreateCouponInvalid(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name string
		in   CouponInput
	}{
		{"missing code", CouponInput{Type: domain.CouponTypeFixed, Value: 10}},
		{"bad code characters", CouponInput{Code: "NO-DASH", Type: domain.CouponTypeFixed, Value: 10}},
		{"unknown type", CouponInput{Code: "ABC", Type: "bogo", Value: 10}},
		{"zero value", CouponInput{Code: "ABC", Type: domain.CouponTypeFixed, Value: 0}},
		{"percentage over 100", CouponInput{Code: "ABC", Type: domain.CouponTypePercentage, Value: 120}},
		{"fixed with cap", CouponInput{Code: "ABC", Type: domain.CouponTypeFixed, Value: 10, MaxDiscount: floatPtr(5)}},
		{"negative minimum", CouponInput{Code: "ABC", Type: domain.CouponTypeFixed, Value: 10, MinAmount: floatPtr(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCoupon(context.Background(), tt.in)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestUpdateCoupon(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	inactive := false

	updated, err := svc.UpdateCoupon(ctx, "enviogratis", CouponInput{
		Code:      "ENVIOGRATIS",
		Type:      domain.CouponTypeFixed,
		Value:     20000,
		MinAmount: floatPtr(100000),
		IsActive:  &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, 20000.0, updated.Value)
	assert.False(t, updated.IsActive)

	applied, err := svc.Apply(ctx, "ENVIOGRATIS", 150000)
	require.NoError(t, err)
	assert.Equal(t, domain.CouponInactive, applied.Validation.Status)

	_, err = svc.UpdateCoupon(ctx, "ENVIOGRATIS", CouponInput{Code: "OTHER", Type: domain.CouponTypeFixed, Value: 1})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.UpdateCoupon(ctx, "MISSING", CouponInput{Code: "MISSING", Type: domain.CouponTypeFixed, Value: 1})
	assert.ErrorIs(t, err, domain.ErrCouponNotFound)
}

func TestDeleteCoupon(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.DeleteCoupon(ctx, "primera50"))

	_, err := svc.Apply(ctx, "PRIMERA50", 300000)
	assert.ErrorIs(t, err, domain.ErrCouponNotFound)

	assert.ErrorIs(t, svc.DeleteCoupon(ctx, "PRIMERA50"), domain.ErrCouponNotFound)
	assert.ErrorIs(t, svc.DeleteCoupon(ctx, ""), ErrInvalidArgument)

	coupons, err := svc.ListCoupons(ctx)
	require.NoError(t, err)
	assert.Len(t, coupons, 3)
}
