package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"bamkzStore/business/coupon"
	"bamkzStore/domain"
	"bamkzStore/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type CouponService interface {
	Apply(ctx context.Context, code string, subtotal float64) (domain.AppliedCoupon, error)
	Redeem(ctx context.Context, code string, subtotal float64) (domain.AppliedCoupon, error)
	ListCoupons(ctx context.Context) ([]domain.Coupon, error)
	CreateCoupon(ctx context.Context, in coupon.CouponInput) (*domain.Coupon, error)
	UpdateCoupon(ctx context.Context, code string, in coupon.CouponInput) (*domain.Coupon, error)
	DeleteCoupon(ctx context.Context, code string) error
}

type CouponHandler struct {
	couponService CouponService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewCouponHandler(couponService CouponService, timeout time.Duration) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
		validator:     validator.New(),
		timeout:       timeout,
	}
}

type ApplyCouponRequest struct {
	Code     string  `json:"code" validate:"required,max=32"`
	Subtotal float64 `json:"subtotal" validate:"gte=0"`
}

func couponErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrCouponNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrCouponExists):
		return http.StatusConflict
	case errors.Is(err, coupon.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, coupon.ErrRejected):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// POST /api/v1/coupons/apply
// A coupon that exists but does not validate is still a 200; the body's
// validation field carries the reason.
func (h *CouponHandler) Apply(c echo.Context) error {
	var req ApplyCouponRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	applied, err := h.couponService.Apply(ctx, req.Code, req.Subtotal)
	if err != nil {
		return c.JSON(couponErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(applied))
}

// POST /api/v1/coupons/redeem
func (h *CouponHandler) Redeem(c echo.Context) error {
	var req ApplyCouponRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	applied, err := h.couponService.Redeem(ctx, req.Code, req.Subtotal)
	if err != nil {
		status := couponErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("failed to redeem coupon", "code", req.Code, "error", err)
		}
		return c.JSON(status, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(applied))
}

func (h *CouponHandler) ListCoupons(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	coupons, err := h.couponService.ListCoupons(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(coupons))
}

func (h *CouponHandler) CreateCoupon(c echo.Context) error {
	var in coupon.CouponInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.couponService.CreateCoupon(ctx, in)
	if err != nil {
		return c.JSON(couponErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(created))
}

func (h *CouponHandler) UpdateCoupon(c echo.Context) error {
	var in coupon.CouponInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.couponService.UpdateCoupon(ctx, c.Param("code"), in)
	if err != nil {
		return c.JSON(couponErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updated))
}

func (h *CouponHandler) DeleteCoupon(c echo.Context) error {
	code := c.Param("code")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.couponService.DeleteCoupon(ctx, code); err != nil {
		return c.JSON(couponErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "coupon successfully deleted",
		"code":    code,
	})
}
