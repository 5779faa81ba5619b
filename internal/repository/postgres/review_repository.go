package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bamkzStore/business/review"
	"bamkzStore/domain"

	"gorm.io/gorm"
)

// ReviewRepository keeps products.rating and products.review_count in step
// with the approved reviews, inside the transaction that changed them.
type ReviewRepository struct {
	DB *gorm.DB
}

var _ review.ReviewRepository = (*ReviewRepository)(nil)

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func translateReviewErr(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrReviewNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.ErrProductNotFound
	default:
		return fmt.Errorf("failed to %s review: %w", op, err)
	}
}

// refreshProductRating recomputes the product's summary from its approved
// reviews. With none left the rating becomes NULL and the count 0.
func refreshProductRating(tx *gorm.DB, productID uint64) error {
	var ratings []int
	err := tx.Model(&domain.Review{}).
		Where("product_id = ? AND approved = ?", productID, true).
		Pluck("rating", &ratings).Error
	if err != nil {
		return err
	}

	summary := review.Summarize(ratings)
	return tx.Model(&domain.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"rating":       summary.Rating,
			"review_count": summary.ReviewCount,
		}).Error
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rv).Error; err != nil {
			return err
		}
		if !rv.Approved {
			return nil
		}
		return refreshProductRating(tx, rv.ProductID)
	})
	if err != nil {
		return translateReviewErr("create", err)
	}
	return nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id uint64) (domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return domain.Review{}, fmt.Errorf("context error: %w", err)
	}

	var rv domain.Review
	if err := r.DB.WithContext(ctx).First(&rv, id).Error; err != nil {
		return domain.Review{}, translateReviewErr("find", err)
	}
	return rv, nil
}

func (r *ReviewRepository) List(ctx context.Context, q domain.ReviewQuery) ([]domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	db := r.DB.WithContext(ctx).Model(&domain.Review{})
	if q.ProductID != 0 {
		db = db.Where("product_id = ?", q.ProductID)
	}
	switch q.Status {
	case domain.ReviewStatusPending:
		db = db.Where("approved = ?", false)
	case domain.ReviewStatusApproved:
		db = db.Where("approved = ?", true)
	}
	if q.Search != "" {
		pattern := "%" + likeEscaper.Replace(q.Search) + "%"
		db = db.Where("(name ILIKE ? OR comment ILIKE ?)", pattern, pattern)
	}

	reviews := []domain.Review{}
	if err := db.Order("created_at DESC, id DESC").Find(&reviews).Error; err != nil {
		return nil, translateReviewErr("list", err)
	}
	return reviews, nil
}

func (r *ReviewRepository) SetApproved(ctx context.Context, id uint64, approved bool) (domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return domain.Review{}, fmt.Errorf("context error: %w", err)
	}

	var rv domain.Review
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rv, id).Error; err != nil {
			return err
		}
		if rv.Approved == approved {
			return nil
		}

		if err := tx.Model(&rv).Update("approved", approved).Error; err != nil {
			return err
		}
		rv.Approved = approved
		return refreshProductRating(tx, rv.ProductID)
	})
	if err != nil {
		return domain.Review{}, translateReviewErr("moderate", err)
	}
	return rv, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rv domain.Review
		if err := tx.First(&rv, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&rv).Error; err != nil {
			return err
		}
		if !rv.Approved {
			return nil
		}
		return refreshProductRating(tx, rv.ProductID)
	})
	if err != nil {
		return translateReviewErr("delete", err)
	}
	return nil
}
