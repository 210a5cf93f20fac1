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

type addressService struct {
	addressRepository store.AddressRepository
	profileRepository store.ProfileRepository
	validator         validators.Validator
	logger            *logger.Logger
}

func NewAddressService(addressRepository store.AddressRepository, profileRepository store.ProfileRepository, validator validators.Validator, logger *logger.Logger) AddressService {
	return &addressService{
		addressRepository: addressRepository,
		profileRepository: profileRepository,
		validator:         validator,
		logger:            logger,
	}
}

// Addresses lists the caller's addresses. A user without a customer profile
// simply has none.
func (s *addressService) Addresses(ctx context.Context, userID int64) ([]models.Address, error) {
	return s.addressRepository.ListAddresses(ctx, userID)
}

func (s *addressService) RegisterAddress(ctx context.Context, userID int64, address models.RegisterAddress) (models.Address, error) {
	if err := s.validator.Validate(ctx, address); err != nil {
		return models.Address{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	customer, err := customerID(ctx, s.profileRepository, userID)
	if err != nil {
		return models.Address{}, err
	}

	created, err := s.addressRepository.CreateAddress(ctx, customer, address)
	if err != nil {
		if errors.Is(err, store.ErrAddressTypeNotFound) {
			return models.Address{}, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		return models.Address{}, fmt.Errorf("address creation failed: %w", err)
	}

	return created, nil
}

func (s *addressService) UpdateAddress(ctx context.Context, userID int64, update models.UpdateAddress) (models.Address, error) {
	customer, err := customerID(ctx, s.profileRepository, userID)
	if err != nil {
		return models.Address{}, err
	}

	updated, err := s.addressRepository.UpdateAddress(ctx, customer, update)
	if err != nil {
		return models.Address{}, fmt.Errorf("address update failed: %w", err)
	}

	return updated, nil
}

// DeleteAddress removes a non-default address of the caller.
func (s *addressService) DeleteAddress(ctx context.Context, userID, addressID int64) error {
	customer, err := customerID(ctx, s.profileRepository, userID)
	if err != nil {
		return err
	}

	err = s.addressRepository.DeleteAddress(ctx, customer, addressID)
	switch {
	case errors.Is(err, store.ErrDefaultAddress):
		return fmt.Errorf("%w: %w", ErrValidation, err)
	case err != nil:
		return fmt.Errorf("address deletion failed: %w", err)
	}

	return nil
}

func (s *addressService) AddressType(ctx context.Context, addressTypeID int64) (models.AddressType, error) {
	return s.addressRepository.FindAddressType(ctx, addressTypeID)
}

func (s *addressService) UpdateAddressType(ctx context.Context, userID int64, addressType models.AddressType) (models.AddressType, error) {
	if addressType.Name == "" {
		return models.AddressType{}, fmt.Errorf("%w: address type name is required", ErrValidation)
	}

	customer, err := customerID(ctx, s.profileRepository, userID)
	if err != nil {
		return models.AddressType{}, err
	}

	renamed, err := s.addressRepository.RenameAddressType(ctx, customer, addressType)
	if err != nil {
		return models.AddressType{}, fmt.Errorf("address type rename failed: %w", err)
	}

	return renamed, nil
}
