package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bamkzStore/domain"
	"bamkzStore/pkg/logger"
	"bamkzStore/pkg/metrics"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidArgument = errors.New("invalid review request")

// ReviewRepository persists reviews. Every write that can change the set of
// approved reviews for a product also rewrites that product's rating and
// review count in the same transaction.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	FindByID(ctx context.Context, id uint64) (domain.Review, error)
	List(ctx context.Context, q domain.ReviewQuery) ([]domain.Review, error)
	SetApproved(ctx context.Context, id uint64, approved bool) (domain.Review, error)
	Delete(ctx context.Context, id uint64) error
}

type ProductFinder interface {
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
}

// ReviewInput.Approved is honoured only by Create; submissions always start
// pending.
type ReviewInput struct {
	ProductID uint64 `json:"product_id" validate:"required"`
	Name      string `json:"name" validate:"required,max=100"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"required,max=2000"`
	Approved  *bool  `json:"approved"`
}

type ReviewService struct {
	reviewRepo  ReviewRepository
	productRepo ProductFinder
	validate    *validator.Validate
}

func NewReviewService(reviewRepo ReviewRepository, productRepo ProductFinder, validate *validator.Validate) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		validate:    validate,
	}
}

// Submit stores a customer review as pending moderation.
func (s *ReviewService) Submit(ctx context.Context, in ReviewInput) (*domain.Review, error) {
	return s.create(ctx, in, false, "submitted")
}

// Create is the back-office path. Reviews are approved unless the input
// says otherwise.
func (s *ReviewService) Create(ctx context.Context, in ReviewInput) (*domain.Review, error) {
	approved := true
	if in.Approved != nil {
		approved = *in.Approved
	}
	return s.create(ctx, in, approved, "created")
}

func (s *ReviewService) create(ctx context.Context, in ReviewInput, approved bool, action string) (*domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Comment = strings.TrimSpace(in.Comment)
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, err.Error())
	}

	if _, err := s.productRepo.FindByID(ctx, in.ProductID); err != nil {
		return nil, err
	}

	r := &domain.Review{
		ProductID: in.ProductID,
		Name:      in.Name,
		Rating:    in.Rating,
		Comment:   in.Comment,
		Approved:  approved,
	}
	if err := s.reviewRepo.Create(ctx, r); err != nil {
		logger.Error("failed to create review", "product_id", in.ProductID, "error", err)
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	metrics.ReviewEvents.WithLabelValues(action).Inc()
	logger.Info("review "+action, "id", r.ID, "product_id", r.ProductID, "approved", r.Approved)

	return r, nil
}

func (s *ReviewService) Approve(ctx context.Context, id uint64) (*domain.Review, error) {
	return s.moderate(ctx, id, true)
}

// Reject sends a review back to pending; it stops counting towards the
// product rating.
func (s *ReviewService) Reject(ctx context.Context, id uint64) (*domain.Review, error) {
	return s.moderate(ctx, id, false)
}

func (s *ReviewService) moderate(ctx context.Context, id uint64, approved bool) (*domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if id == 0 {
		return nil, fmt.Errorf("%w: invalid review id", ErrInvalidArgument)
	}

	r, err := s.reviewRepo.SetApproved(ctx, id, approved)
	if err != nil {
		if !errors.Is(err, domain.ErrReviewNotFound) {
			logger.Error("failed to moderate review", "id", id, "error", err)
		}
		return nil, err
	}

	action := "rejected"
	if approved {
		action = "approved"
	}
	metrics.ReviewEvents.WithLabelValues(action).Inc()
	logger.Info("review "+action, "id", id, "product_id", r.ProductID)

	return &r, nil
}

func (s *ReviewService) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if id == 0 {
		return fmt.Errorf("%w: invalid review id", ErrInvalidArgument)
	}

	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrReviewNotFound) {
			logger.Error("failed to delete review", "id", id, "error", err)
		}
		return err
	}

	metrics.ReviewEvents.WithLabelValues("deleted").Inc()
	logger.Info("review deleted", "id", id)

	return nil
}

// ListForProduct returns the approved reviews shown on a product page,
// newest first.
func (s *ReviewService) ListForProduct(ctx context.Context, productID uint64) ([]domain.Review, error) {
	if productID == 0 {
		return nil, fmt.Errorf("%w: invalid product id", ErrInvalidArgument)
	}
	return s.ListReviews(ctx, domain.ReviewQuery{ProductID: productID, Status: domain.ReviewStatusApproved})
}

// ListReviews is the moderation queue. An empty status means pending.
func (s *ReviewService) ListReviews(ctx context.Context, q domain.ReviewQuery) ([]domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	q.Search = strings.TrimSpace(q.Search)
	switch q.Status {
	case "":
		q.Status = domain.ReviewStatusPending
	case domain.ReviewStatusPending, domain.ReviewStatusApproved, domain.ReviewStatusAll:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, q.Status)
	}

	reviews, err := s.reviewRepo.List(ctx, q)
	if err != nil {
		logger.Error("failed to list reviews", "error", err)
		return nil, err
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}

	return reviews, nil
}
