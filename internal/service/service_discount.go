package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/store"
	"github.com/MKhiriev/go-shop-keeper/internal/validators"
	"github.com/MKhiriev/go-shop-keeper/models"
)

type discountService struct {
	discountRepository store.DiscountRepository
	profileRepository  store.ProfileRepository
	validator          validators.Validator
	logger             *logger.Logger
}

func NewDiscountService(discountRepository store.DiscountRepository, profileRepository store.ProfileRepository, validator validators.Validator, logger *logger.Logger) DiscountService {
	return &discountService{
		discountRepository: discountRepository,
		profileRepository:  profileRepository,
		validator:          validator,
		logger:             logger,
	}
}

func (s *discountService) Discounts(ctx context.Context, page models.PageRequest) (models.Page[models.Discount], error) {
	if err := s.validator.Validate(ctx, page); err != nil {
		return models.Page[models.Discount]{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return s.discountRepository.ListDiscounts(ctx, page)
}

func (s *discountService) DiscountsOnProduct(ctx context.Context, productID int64) ([]models.Discount, error) {
	return s.discountRepository.ListDiscountsOnProduct(ctx, productID)
}

// RegisterDiscount creates a discount on one of the supplier's products.
func (s *discountService) RegisterDiscount(ctx context.Context, userID int64, discount models.RegisterDiscount) (models.Discount, error) {
	if err := s.validator.Validate(ctx, discount); err != nil {
		return models.Discount{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	supplier, err := supplierID(ctx, s.profileRepository, userID)
	if err != nil {
		return models.Discount{}, err
	}

	created, err := s.discountRepository.CreateDiscount(ctx, supplier, discount)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "discountService.RegisterDiscount").Str("code", discount.Code).Msg("discount creation failed")
		return models.Discount{}, fmt.Errorf("discount creation failed: %w", err)
	}

	return created, nil
}

func (s *discountService) UpdateDiscount(ctx context.Context, userID int64, update models.UpdateDiscount) (models.Discount, error) {
	if err := s.validator.Validate(ctx, update); err != nil {
		return models.Discount{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	supplier, err := supplierID(ctx, s.profileRepository, userID)
	if err != nil {
		return models.Discount{}, err
	}

	updated, err := s.discountRepository.UpdateDiscount(ctx, supplier, update)
	if err != nil {
		return models.Discount{}, fmt.Errorf("discount update failed: %w", err)
	}

	return updated, nil
}

func (s *discountService) DeleteDiscount(ctx context.Context, userID, discountID int64) error {
	supplier, err := supplierID(ctx, s.profileRepository, userID)
	if err != nil {
		return err
	}

	if err = s.discountRepository.DeleteDiscount(ctx, supplier, discountID); err != nil {
		return fmt.Errorf("discount deletion failed: %w", err)
	}
	return nil
}
