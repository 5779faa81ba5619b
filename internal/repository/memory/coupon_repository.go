package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"bamkzStore/domain"
)

// CouponRepository keeps coupons in process, keyed by upper-cased code.
type CouponRepository struct {
	mu      sync.RWMutex
	coupons map[string]domain.Coupon
	nextID  uint64
}

func NewCouponRepository(seed ...domain.Coupon) *CouponRepository {
	r := &CouponRepository{coupons: make(map[string]domain.Coupon, len(seed))}
	now := time.Now().UTC()
	for _, c := range seed {
		r.nextID++
		c.ID = r.nextID
		c.CreatedAt = now
		c.UpdatedAt = now
		r.coupons[key(c.Code)] = c
	}
	return r
}

func key(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (r *CouponRepository) FindByCode(ctx context.Context, code string) (domain.Coupon, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coupon{}, fmt.Errorf("context error: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.coupons[key(code)]
	if !ok {
		return domain.Coupon{}, domain.ErrCouponNotFound
	}
	return c, nil
}

func (r *CouponRepository) FindAll(ctx context.Context) ([]domain.Coupon, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Coupon, 0, len(r.coupons))
	for _, c := range r.coupons {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *CouponRepository) Create(ctx context.Context, coupon *domain.Coupon) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(coupon.Code)
	if _, exists := r.coupons[k]; exists {
		return domain.ErrCouponExists
	}

	r.nextID++
	now := time.Now().UTC()
	coupon.ID = r.nextID
	coupon.CreatedAt = now
	coupon.UpdatedAt = now
	r.coupons[k] = *coupon

	return nil
}

func (r *CouponRepository) Update(ctx context.Context, coupon *domain.Coupon) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(coupon.Code)
	existing, ok := r.coupons[k]
	if !ok {
		return domain.ErrCouponNotFound
	}

	coupon.ID = existing.ID
	coupon.UsedCount = existing.UsedCount
	coupon.CreatedAt = existing.CreatedAt
	coupon.UpdatedAt = time.Now().UTC()
	r.coupons[k] = *coupon

	return nil
}

func (r *CouponRepository) Delete(ctx context.Context, code string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(code)
	if _, ok := r.coupons[k]; !ok {
		return domain.ErrCouponNotFound
	}
	delete(r.coupons, k)

	return nil
}

func (r *CouponRepository) IncrementUsage(ctx context.Context, code string) (domain.Coupon, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coupon{}, fmt.Errorf("context error: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(code)
	c, ok := r.coupons[k]
	if !ok {
		return domain.Coupon{}, domain.ErrCouponNotFound
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return domain.Coupon{}, domain.ErrCouponExhausted
	}

	c.UsedCount++
	c.UpdatedAt = time.Now().UTC()
	r.coupons[k] = c

	return c, nil
}
