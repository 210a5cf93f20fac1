package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/store"
	"github.com/MKhiriev/go-shop-keeper/internal/validators"
	"github.com/MKhiriev/go-shop-keeper/models"
)

type reviewService struct {
	reviewRepository  store.ReviewRepository
	profileRepository store.ProfileRepository
	validator         validators.Validator
	logger            *logger.Logger
}

func NewReviewService(reviewRepository store.ReviewRepository, profileRepository store.ProfileRepository, validator validators.Validator, logger *logger.Logger) ReviewService {
	return &reviewService{
		reviewRepository:  reviewRepository,
		profileRepository: profileRepository,
		validator:         validator,
		logger:            logger,
	}
}

func (s *reviewService) ReviewsForProduct(ctx context.Context, productID int64, page models.PageRequest) (models.Page[models.Review], error) {
	if err := s.validator.Validate(ctx, page); err != nil {
		return models.Page[models.Review]{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return s.reviewRepository.ListReviewsForProduct(ctx, productID, page)
}

// RegisterReview stores a rating from a customer who has a non-cancelled
// order containing the product. Others get ErrUnauthorized.
func (s *reviewService) RegisterReview(ctx context.Context, userID int64, review models.RegisterReview) (models.Review, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, review); err != nil {
		return models.Review{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	customer, err := customerID(ctx, s.profileRepository, userID)
	if err != nil {
		return models.Review{}, err
	}

	ordered, err := s.reviewRepository.HasOrderedProduct(ctx, customer, review.ProductID)
	if err != nil {
		return models.Review{}, fmt.Errorf("order lookup failed: %w", err)
	}
	if !ordered {
		log.Info().Str("func", "reviewService.RegisterReview").Int64("customer_id", customer).Int64("product_id", review.ProductID).Msg("review of a product never ordered")
		return models.Review{}, fmt.Errorf("%w: product %d was never ordered", ErrUnauthorized, review.ProductID)
	}

	created, err := s.reviewRepository.CreateReview(ctx, models.Review{
		CustomerID: customer,
		ProductID:  review.ProductID,
		Rating:     review.Rating,
		Comment:    review.Comment,
	})
	if err != nil {
		return models.Review{}, fmt.Errorf("review creation failed: %w", err)
	}

	return created, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, userID int64, update models.UpdateReview) (models.Review, error) {
	if err := s.validator.Validate(ctx, update); err != nil {
		return models.Review{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	customer, err := customerID(ctx, s.profileRepository, userID)
	if err != nil {
		return models.Review{}, err
	}

	updated, err := s.reviewRepository.UpdateReview(ctx, customer, update)
	if err != nil {
		return models.Review{}, fmt.Errorf("review update failed: %w", err)
	}
	return updated, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, userID, reviewID int64) error {
	customer, err := customerID(ctx, s.profileRepository, userID)
	if err != nil {
		return err
	}

	if err = s.reviewRepository.DeleteReview(ctx, customer, reviewID); err != nil {
		return fmt.Errorf("review deletion failed: %w", err)
	}
	return nil
}
