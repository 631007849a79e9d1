// internal/services/review_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/woocom/woocom-backend/internal/models"
	"github.com/woocom/woocom-backend/internal/utils"
)

// ReviewService accepts per-user review submissions and keeps the product
// rating histogram in step: one accepted review, one bucket increment.
type ReviewService struct {
	db       *gorm.DB
	products *ProductService
}

type SubmitReviewRequest struct {
	RatingID    string `json:"rating_id" validate:"required"`
	ProductID   string `json:"product_id" validate:"required"`
	RatingPoint int    `json:"rating_point" validate:"required,rating_point"`
	Comment     string `json:"comment,omitempty"`
}

func NewReviewService(db *gorm.DB, products *ProductService) *ReviewService {
	return &ReviewService{
		db:       db,
		products: products,
	}
}

// SubmitReview stores the review and bumps the matching histogram bucket in
// one transaction. A second submission with the same rating_id for the same
// user is rejected before any mutation, so the histogram records exactly one
// vote per user per product.
func (s *ReviewService) SubmitReview(email string, req *SubmitReviewRequest) (*models.Review, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, ErrProductNotFound
	}

	review := &models.Review{
		UserEmail:   email,
		RatingID:    req.RatingID,
		ProductID:   req.ProductID,
		RatingPoint: req.RatingPoint,
		Comment:     req.Comment,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Review
		err := forUpdate(tx).
			Where("user_email = ? AND rating_id = ?", email, req.RatingID).
			First(&existing).Error
		if err == nil {
			return ErrAlreadyReviewed
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("database error: %w", err)
		}

		if err := tx.Create(review).Error; err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}

		return s.products.IncrementRating(tx, productID, req.RatingPoint)
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

// ReviewsByUser flattens the user's review list into individual entries.
func (s *ReviewService) ReviewsByUser(email string) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Where("user_email = ?", email).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	return reviews, nil
}

// ReviewsByProduct returns every accepted review for a product.
func (s *ReviewService) ReviewsByProduct(productID string) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	return reviews, nil
}
