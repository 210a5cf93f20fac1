package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/store"
	"github.com/MKhiriev/go-shop-keeper/internal/validators"
	"github.com/MKhiriev/go-shop-keeper/models"
)

type profileService struct {
	profileRepository store.ProfileRepository
	validator         validators.Validator
	logger            *logger.Logger
}

func NewProfileService(profileRepository store.ProfileRepository, validator validators.Validator, logger *logger.Logger) ProfileService {
	return &profileService{
		profileRepository: profileRepository,
		validator:         validator,
		logger:            logger,
	}
}

// RegisterCustomer creates the customer profile of userID. A second profile
// for the same user is a conflict.
func (s *profileService) RegisterCustomer(ctx context.Context, userID int64, customer models.RegisterCustomer) (models.Customer, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, customer); err != nil {
		return models.Customer{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	created, err := s.profileRepository.CreateCustomer(ctx, models.Customer{
		UserID:    userID,
		FirstName: customer.FirstName,
		LastName:  customer.LastName,
	})
	if err != nil {
		log.Err(err).Str("func", "profileService.RegisterCustomer").Int64("user_id", userID).Msg("customer profile creation failed")
		return models.Customer{}, fmt.Errorf("customer profile creation failed: %w", err)
	}

	return created, nil
}

func (s *profileService) CustomerProfile(ctx context.Context, userID int64) (models.Customer, error) {
	customer, err := s.profileRepository.FindCustomerByUserID(ctx, userID)
	if err != nil {
		return models.Customer{}, profileError(err, store.ErrCustomerNotFound)
	}
	return customer, nil
}

func (s *profileService) RegisterSupplier(ctx context.Context, userID int64, supplier models.RegisterSupplier) (models.Supplier, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, supplier); err != nil {
		return models.Supplier{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	created, err := s.profileRepository.CreateSupplier(ctx, models.Supplier{
		UserID:       userID,
		Name:         supplier.Name,
		ContactPhone: supplier.ContactPhone,
	})
	if err != nil {
		log.Err(err).Str("func", "profileService.RegisterSupplier").Int64("user_id", userID).Msg("supplier profile creation failed")
		return models.Supplier{}, fmt.Errorf("supplier profile creation failed: %w", err)
	}

	return created, nil
}

func (s *profileService) SupplierProfile(ctx context.Context, userID int64) (models.Supplier, error) {
	supplier, err := s.profileRepository.FindSupplierByUserID(ctx, userID)
	if err != nil {
		return models.Supplier{}, profileError(err, store.ErrSupplierNotFound)
	}
	return supplier, nil
}

// customerID resolves the customer profile id of the calling user.
func customerID(ctx context.Context, profiles store.ProfileRepository, userID int64) (int64, error) {
	customer, err := profiles.FindCustomerByUserID(ctx, userID)
	if err != nil {
		return 0, profileError(err, store.ErrCustomerNotFound)
	}
	return customer.CustomerID, nil
}

// supplierID resolves the supplier profile id of the calling user.
func supplierID(ctx context.Context, profiles store.ProfileRepository, userID int64) (int64, error) {
	supplier, err := profiles.FindSupplierByUserID(ctx, userID)
	if err != nil {
		return 0, profileError(err, store.ErrSupplierNotFound)
	}
	return supplier.SupplierID, nil
}

func profileError(err, notFound error) error {
	if errors.Is(err, notFound) {
		return fmt.Errorf("%w: %w", ErrProfileNotFound, err)
	}
	return fmt.Errorf("profile lookup failed: %w", err)
}
