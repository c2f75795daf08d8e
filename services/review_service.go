package services

import (
	"errors"
	"math"

	"github.com/PolarBear1017/FoodSheep/apperrors"
	"github.com/PolarBear1017/FoodSheep/models"

	"gorm.io/gorm"
)

type ReviewService struct {
	DB *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{DB: db}
}

// Submit creates the single review allowed for an order. The order
// must be completed and owned by the caller; all checks run before
// anything is written, so there is no partial state to unwind.
func (s *ReviewService) Submit(orderID, customerID uint, rating int, content string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.NewValidationError("rating", "must be an integer between 1 and 5")
	}

	var order models.Order
	if err := s.DB.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("order", orderID)
		}
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, apperrors.NewAuthorizationError("this order does not belong to you")
	}
	if order.Status != models.StatusCompleted {
		return nil, apperrors.NewInvalidStateError("order is not completed yet, cannot review")
	}

	var existing models.Review
	if err := s.DB.Where("order_id = ?", orderID).First(&existing).Error; err == nil {
		return nil, apperrors.NewDuplicateError("this order has already been reviewed")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := models.Review{
		OrderID:    orderID,
		CustomerID: customerID,
		MerchantID: order.MerchantID,
		Rating:     rating,
		Content:    content,
	}
	if err := s.DB.Create(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// AverageRating returns the merchant's mean rating rounded to one
// decimal, with the review count. A zero count means "no rating yet";
// callers must not render the average in that case, since 0.0 would
// read as a real (terrible) score.
func (s *ReviewService) AverageRating(merchantID uint) (float64, int64, error) {
	type agg struct {
		Avg   float64
		Count int64
	}
	var a agg
	err := s.DB.Model(&models.Review{}).
		Where("merchant_id = ?", merchantID).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Scan(&a).Error
	if err != nil {
		return 0, 0, err
	}
	if a.Count == 0 {
		return 0, 0, nil
	}
	return math.Round(a.Avg*10) / 10, a.Count, nil
}

// ListForMerchant returns a merchant's reviews newest first, with the
// reviewer loaded for display names.
func (s *ReviewService) ListForMerchant(merchantID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.DB.Preload("Customer").
		Where("merchant_id = ?", merchantID).
		Order("created_at desc").
		Find(&reviews).Error
	return reviews, err
}
