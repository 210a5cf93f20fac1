package validators

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-shop-keeper/models"
)

// ErrValidation is the parent of every input validation error.
var ErrValidation = errors.New("validation error")

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEmail        = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrWeakPassword        = fmt.Errorf("%w: password must be at least 8 characters and contain an uppercase letter, a lowercase letter, a digit and one of !@#$%%^&*", ErrValidation)
	ErrInvalidRole         = fmt.Errorf("%w: role must be customer or supplier", ErrValidation)
	ErrInvalidRating       = fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	ErrInvalidQuantity     = fmt.Errorf("%w: quantity must be positive", ErrValidation)
	ErrNegativeQuantity    = fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	ErrQuantityTooLarge    = fmt.Errorf("%w: quantity must not exceed %d", ErrValidation, models.MaxQuantity)
	ErrNegativeStock       = fmt.Errorf("%w: stock quantity must not be negative", ErrValidation)
	ErrNegativePrice       = fmt.Errorf("%w: price must not be negative", ErrValidation)
	ErrEmptyOrder          = fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	ErrInvalidDiscount     = fmt.Errorf("%w: discount value must be positive", ErrValidation)
	ErrPercentageTooLarge  = fmt.Errorf("%w: percentage discount cannot exceed 100", ErrValidation)
	ErrInvalidDiscountType = fmt.Errorf("%w: discount type must be PERCENTAGE or FIXED", ErrValidation)
	ErrInvalidPaymentType  = fmt.Errorf("%w: payment type must be CARD, UPI, BANK_TRANSFER or IBAN", ErrValidation)
	ErrInvalidCardNumber   = fmt.Errorf("%w: card number must have 12 to 19 digits", ErrValidation)
	ErrInvalidCardExpiry   = fmt.Errorf("%w: card expiration date must be MM/YY", ErrValidation)
	ErrInvalidPageSize     = fmt.Errorf("%w: first must be between 1 and 100", ErrValidation)
	ErrAmbiguousFilter     = fmt.Errorf("%w: filter accepts exactly one key", ErrValidation)
	ErrInvalidValidity     = fmt.Errorf("%w: validFrom must be before validUntil", ErrValidation)
)

// requiredError names the missing field.
func requiredError(field string) error {
	return fmt.Errorf("%w: %s is required", ErrValidation, field)
}
