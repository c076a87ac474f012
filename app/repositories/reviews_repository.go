package repositories

import (
	"context"

	"github.com/proshop/backend/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReviewRepositoryImpl interface {
	Create(ctx context.Context, tx *gorm.DB, review *models.Review) error
	ExistsForProductAndUser(ctx context.Context, productID, userID string) (bool, error)
	FindByProduct(ctx context.Context, productID string) ([]models.Review, error)
	AggregateForProduct(ctx context.Context, tx *gorm.DB, productID string) (decimal.Decimal, int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepositoryImpl {
	return &reviewRepository{db}
}

func (r *reviewRepository) Create(ctx context.Context, tx *gorm.DB, review *models.Review) error {
	return tx.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) ExistsForProductAndUser(ctx context.Context, productID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("product_id = ? AND user_id = ?", productID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *reviewRepository) FindByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// AggregateForProduct returns the mean rating and the review count for a
// product, computed inside the caller's transaction.
func (r *reviewRepository) AggregateForProduct(ctx context.Context, tx *gorm.DB, productID string) (decimal.Decimal, int64, error) {
	var row struct {
		AvgRating  float64
		NumReviews int64
	}
	err := tx.WithContext(ctx).Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg_rating, COUNT(*) AS num_reviews").
		Where("product_id = ?", productID).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, 0, err
	}
	return decimal.NewFromFloat(row.AvgRating).Round(2), row.NumReviews, nil
}
