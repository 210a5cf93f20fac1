package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/store"
	"github.com/MKhiriev/go-shop-keeper/internal/validators"
	"github.com/MKhiriev/go-shop-keeper/models"
)

// cartService edits the caller's cart. Every mutation answers with the
// cart's current contents.
type cartService struct {
	cartRepository    store.CartRepository
	profileRepository store.ProfileRepository
	validator         validators.Validator
	logger            *logger.Logger
}

func NewCartService(cartRepository store.CartRepository, profileRepository store.ProfileRepository, validator validators.Validator, logger *logger.Logger) CartService {
	return &cartService{
		cartRepository:    cartRepository,
		profileRepository: profileRepository,
		validator:         validator,
		logger:            logger,
	}
}

func (s *cartService) CartItems(ctx context.Context, userID int64) ([]models.CartItem, error) {
	customer, err := customerID(ctx, s.profileRepository, userID)
	if err != nil {
		return nil, err
	}

	return s.cartRepository.ListCartItems(ctx, customer)
}

func (s *cartService) AddToCart(ctx context.Context, userID int64, line models.CartLine) ([]models.CartItem, error) {
	if err := s.validator.Validate(ctx, line); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	customer, err := customerID(ctx, s.profileRepository, userID)
	if err != nil {
		return nil, err
	}

	if _, err = s.cartRepository.AddToCart(ctx, customer, line); err != nil {
		return nil, fmt.Errorf("adding to cart failed: %w", err)
	}

	return s.cartRepository.ListCartItems(ctx, customer)
}

// UpdateCartItemQuantity sets the quantity of a cart line; zero removes it.
func (s *cartService) UpdateCartItemQuantity(ctx context.Context, userID int64, line models.CartLine) ([]models.CartItem, error) {
	if err := s.validator.Validate(ctx, line, validators.FieldProductID, validators.FieldQuantityOrZero); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	customer, err := customerID(ctx, s.profileRepository, userID)
	if err != nil {
		return nil, err
	}

	if err = s.cartRepository.UpdateCartItemQuantity(ctx, customer, line); err != nil {
		return nil, fmt.Errorf("cart update failed: %w", err)
	}

	return s.cartRepository.ListCartItems(ctx, customer)
}

func (s *cartService) RemoveFromCart(ctx context.Context, userID, productID int64) ([]models.CartItem, error) {
	customer, err := customerID(ctx, s.profileRepository, userID)
	if err != nil {
		return nil, err
	}

	if err = s.cartRepository.RemoveFromCart(ctx, customer, productID); err != nil {
		return nil, fmt.Errorf("removing from cart failed: %w", err)
	}

	return s.cartRepository.ListCartItems(ctx, customer)
}
