package service

import (
	"context"
	"fmt"

	"dario.cat/mergo"
	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/store"
	"github.com/MKhiriev/go-shop-keeper/internal/validators"
	"github.com/MKhiriev/go-shop-keeper/models"
)

type paymentService struct {
	paymentMethodRepository store.PaymentMethodRepository
	profileRepository       store.ProfileRepository
	validator               validators.Validator
	logger                  *logger.Logger
}

func NewPaymentService(paymentMethodRepository store.PaymentMethodRepository, profileRepository store.ProfileRepository, validator validators.Validator, logger *logger.Logger) PaymentService {
	return &paymentService{
		paymentMethodRepository: paymentMethodRepository,
		profileRepository:       profileRepository,
		validator:               validator,
		logger:                  logger,
	}
}

func (s *paymentService) PaymentMethods(ctx context.Context, userID int64) ([]models.PaymentMethod, error) {
	customer, err := customerID(ctx, s.profileRepository, userID)
	if err != nil {
		return nil, err
	}

	return s.paymentMethodRepository.ListPaymentMethods(ctx, customer)
}

// RegisterPaymentMethod validates the fields required by the payment type
// and stores the method for the caller.
func (s *paymentService) RegisterPaymentMethod(ctx context.Context, userID int64, method models.RegisterPaymentMethod) (models.PaymentMethod, error) {
	customer, err := customerID(ctx, s.profileRepository, userID)
	if err != nil {
		return models.PaymentMethod{}, err
	}

	candidate := models.PaymentMethod{
		CustomerID:         customer,
		PaymentType:        method.PaymentType,
		BankName:           method.BankName,
		AccountHolderName:  method.AccountHolderName,
		CardNumber:         method.CardNumber,
		CardExpirationDate: method.CardExpirationDate,
		IBAN:               method.IBAN,
		UPIID:              method.UPIID,
		BankAccountNumber:  method.BankAccountNumber,
		IFSCCode:           method.IFSCCode,
		CardTypeID:         method.CardTypeID,
		IsDefault:          method.IsDefault,
	}
	if err = s.check(ctx, candidate); err != nil {
		return models.PaymentMethod{}, err
	}

	created, err := s.paymentMethodRepository.CreatePaymentMethod(ctx, candidate)
	if err != nil {
		return models.PaymentMethod{}, fmt.Errorf("payment method creation failed: %w", err)
	}

	return created, nil
}

// UpdatePaymentMethod merges the non-nil fields of update over the stored
// method and validates the result against its payment type.
func (s *paymentService) UpdatePaymentMethod(ctx context.Context, userID int64, update models.UpdatePaymentMethod) (models.PaymentMethod, error) {
	log := logger.FromContext(ctx)

	customer, err := customerID(ctx, s.profileRepository, userID)
	if err != nil {
		return models.PaymentMethod{}, err
	}

	stored, err := s.paymentMethodRepository.FindPaymentMethod(ctx, customer, update.PaymentMethodID)
	if err != nil {
		return models.PaymentMethod{}, err
	}

	patch := models.PaymentMethod{
		BankName:           update.BankName,
		AccountHolderName:  update.AccountHolderName,
		CardNumber:         update.CardNumber,
		CardExpirationDate: update.CardExpirationDate,
		IBAN:               update.IBAN,
		UPIID:              update.UPIID,
		BankAccountNumber:  update.BankAccountNumber,
		IFSCCode:           update.IFSCCode,
		CardTypeID:         update.CardTypeID,
	}
	if err = mergo.Merge(&stored, patch, mergo.WithOverride); err != nil {
		log.Err(err).Str("func", "paymentService.UpdatePaymentMethod").Int64("payment_method_id", update.PaymentMethodID).Msg("merging payment method failed")
		return models.PaymentMethod{}, fmt.Errorf("merging payment method: %w", err)
	}
	if update.IsDefault != nil {
		stored.IsDefault = *update.IsDefault
	}

	if err = s.check(ctx, stored); err != nil {
		return models.PaymentMethod{}, err
	}

	updated, err := s.paymentMethodRepository.UpdatePaymentMethod(ctx, stored)
	if err != nil {
		return models.PaymentMethod{}, fmt.Errorf("payment method update failed: %w", err)
	}

	return updated, nil
}

func (s *paymentService) CardTypes(ctx context.Context) ([]models.CardType, error) {
	return s.paymentMethodRepository.ListCardTypes(ctx)
}

// check validates method and, for cards, that the card type exists.
func (s *paymentService) check(ctx context.Context, method models.PaymentMethod) error {
	if err := s.validator.Validate(ctx, method); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if method.PaymentType == models.PaymentCard {
		if _, err := s.paymentMethodRepository.FindCardType(ctx, *method.CardTypeID); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}
	return nil
}
