package services

import (
	"context"
	"fmt"

	"github.com/proshop/backend/app/models"
	"github.com/proshop/backend/app/repositories"
	"gorm.io/gorm"
)

type ReviewService struct {
	db          *gorm.DB
	productRepo repositories.ProductRepositoryImpl
	reviewRepo  repositories.ReviewRepositoryImpl
}

func NewReviewService(db *gorm.DB, productRepo repositories.ProductRepositoryImpl, reviewRepo repositories.ReviewRepositoryImpl) *ReviewService {
	return &ReviewService{db: db, productRepo: productRepo, reviewRepo: reviewRepo}
}

// AddReview inserts a review and recomputes the product's mean rating and
// review count in the same transaction. A user gets one review per product,
// and a rating of exactly zero is rejected.
func (s *ReviewService) AddReview(ctx context.Context, user *models.User, productID string, rating int, comment string) error {
	if rating == 0 {
		return ErrRatingRequired
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to get product %s: %w", productID, err)
	}
	if product == nil {
		return ErrProductNotFound
	}

	exists, err := s.reviewRepo.ExistsForProductAndUser(ctx, product.ID, user.ID)
	if err != nil {
		return fmt.Errorf("failed to check existing review: %w", err)
	}
	if exists {
		return ErrAlreadyReviewed
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		review := &models.Review{
			ProductID: &product.ID,
			UserID:    &user.ID,
			Name:      user.Name,
			Rating:    rating,
			Comment:   comment,
		}
		if err := s.reviewRepo.Create(ctx, tx, review); err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}

		avg, count, err := s.reviewRepo.AggregateForProduct(ctx, tx, product.ID)
		if err != nil {
			return fmt.Errorf("failed to aggregate reviews: %w", err)
		}

		return s.productRepo.UpdateRating(ctx, tx, product.ID, avg, int(count))
	})
}

func (s *ReviewService) ReviewsForProduct(ctx context.Context, productID string) ([]models.Review, error) {
	return s.reviewRepo.FindByProduct(ctx, productID)
}
