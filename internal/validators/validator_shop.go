package validators

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/MKhiriev/go-shop-keeper/models"
	"github.com/shopspring/decimal"
)

// Field names accepted by Validate to restrict validation.
const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldRole        = "role"
	FieldNewPassword = "new_password"

	FieldName          = "name"
	FieldBasePrice     = "base_price"
	FieldStockQuantity = "stock_quantity"

	FieldRating = "rating"

	FieldItems             = "items"
	FieldShippingAddressID = "shipping_address_id"
	FieldPaymentMethodID   = "payment_method_id"

	FieldProductID = "product_id"
	FieldQuantity  = "quantity"
	// FieldQuantityOrZero accepts zero, which removes a cart line.
	FieldQuantityOrZero = "quantity_or_zero"

	FieldPaymentType = "payment_type"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const (
	minPasswordLength = 8
	passwordSpecials  = "!@#$%^&*"
)

// ShopValidator implements [Validator] for the operation inputs found in
// package models. Value and pointer forms are both accepted.
type ShopValidator struct{}

func NewShopValidator() Validator {
	return &ShopValidator{}
}

// Validate returns [ErrUnsupportedType] for values it does not know.
func (v *ShopValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterUser:
		return v.validateRegisterUser(value, fields...)
	case *models.RegisterUser:
		return v.validateRegisterUser(*value, fields...)
	case models.LoginUser:
		return v.validateLogin(value)
	case *models.LoginUser:
		return v.validateLogin(*value)
	case models.ChangePassword:
		return v.validateChangePassword(value)
	case *models.ChangePassword:
		return v.validateChangePassword(*value)

	case models.RegisterCustomer:
		return v.validateRegisterCustomer(value)
	case models.RegisterSupplier:
		return v.validateRegisterSupplier(value)

	case models.RegisterProduct:
		return v.validateRegisterProduct(value, fields...)
	case *models.RegisterProduct:
		return v.validateRegisterProduct(*value, fields...)
	case models.UpdateProduct:
		return v.validateUpdateProduct(value)
	case models.ProductFilter:
		if value.Keys() > 1 {
			return ErrAmbiguousFilter
		}
		return nil
	case models.PageRequest:
		if value.First < 0 || value.First > models.MaxPageSize {
			return ErrInvalidPageSize
		}
		return nil

	case models.RegisterDiscount:
		return v.validateRegisterDiscount(value)
	case models.UpdateDiscount:
		return v.validateUpdateDiscount(value)

	case models.RegisterReview:
		return v.validateRegisterReview(value)
	case models.UpdateReview:
		return v.validateUpdateReview(value)

	case models.PlaceOrderRequest:
		return v.validatePlaceOrder(value, fields...)
	case *models.PlaceOrderRequest:
		return v.validatePlaceOrder(*value, fields...)
	case models.CartLine:
		return v.validateCartLine(value, fields...)

	case models.RegisterAddress:
		return v.validateRegisterAddress(value)

	case models.PaymentMethod:
		return v.validatePaymentMethod(value)
	case *models.PaymentMethod:
		return v.validatePaymentMethod(*value)

	default:
		return ErrUnsupportedType
	}
}

func (v *ShopValidator) validateRegisterUser(user models.RegisterUser, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword, FieldRole}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !emailPattern.MatchString(user.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if !isStrongPassword(user.Password) {
				return ErrWeakPassword
			}
		case FieldRole:
			if !user.Role.Valid() {
				return ErrInvalidRole
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ShopValidator) validateLogin(login models.LoginUser) error {
	if strings.TrimSpace(login.Email) == "" {
		return requiredError("email")
	}
	if login.Password == "" {
		return requiredError("password")
	}
	return nil
}

func (v *ShopValidator) validateChangePassword(change models.ChangePassword) error {
	if change.OldPassword == "" {
		return requiredError("oldPassword")
	}
	if !isStrongPassword(change.NewPassword) {
		return ErrWeakPassword
	}
	return nil
}

// isStrongPassword requires minPasswordLength characters with at least one
// upper, lower, digit and special character.
func isStrongPassword(password string) bool {
	if len(password) < minPasswordLength {
		return false
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}

	return upper && lower && digit && special
}

func (v *ShopValidator) validateRegisterCustomer(c models.RegisterCustomer) error {
	if strings.TrimSpace(c.FirstName) == "" {
		return requiredError("firstName")
	}
	if strings.TrimSpace(c.LastName) == "" {
		return requiredError("lastName")
	}
	return nil
}

func (v *ShopValidator) validateRegisterSupplier(s models.RegisterSupplier) error {
	if strings.TrimSpace(s.Name) == "" {
		return requiredError("name")
	}
	return nil
}

func (v *ShopValidator) validateRegisterProduct(p models.RegisterProduct, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldBasePrice, FieldStockQuantity}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if strings.TrimSpace(p.Name) == "" {
				return requiredError("name")
			}
		case FieldBasePrice:
			if p.BasePrice.IsNegative() {
				return ErrNegativePrice
			}
		case FieldStockQuantity:
			if p.StockQuantity < 0 {
				return ErrNegativeStock
			}
			if p.StockQuantity > models.MaxQuantity {
				return ErrQuantityTooLarge
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ShopValidator) validateUpdateProduct(p models.UpdateProduct) error {
	if p.ProductID <= 0 {
		return requiredError("productId")
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return requiredError("name")
	}
	if p.BasePrice != nil && p.BasePrice.IsNegative() {
		return ErrNegativePrice
	}
	if p.StockQuantity != nil && *p.StockQuantity < 0 {
		return ErrNegativeStock
	}
	if p.StockQuantity != nil && *p.StockQuantity > models.MaxQuantity {
		return ErrQuantityTooLarge
	}
	return nil
}

func (v *ShopValidator) validateRegisterDiscount(d models.RegisterDiscount) error {
	if strings.TrimSpace(d.Code) == "" {
		return requiredError("code")
	}
	if d.ProductID <= 0 {
		return requiredError("productId")
	}
	if d.ValidFrom != nil && d.ValidUntil != nil && !d.ValidFrom.Before(*d.ValidUntil) {
		return ErrInvalidValidity
	}
	return validateDiscountValue(d.DiscountType, d.DiscountValue)
}

func (v *ShopValidator) validateUpdateDiscount(d models.UpdateDiscount) error {
	if d.DiscountID <= 0 {
		return requiredError("discountId")
	}
	if d.DiscountType != nil && d.DiscountValue != nil {
		return validateDiscountValue(*d.DiscountType, *d.DiscountValue)
	}
	if d.DiscountType != nil {
		if _, err := models.ParseDiscountType(string(*d.DiscountType)); err != nil {
			return ErrInvalidDiscountType
		}
	}
	if d.DiscountValue != nil && !d.DiscountValue.IsPositive() {
		return ErrInvalidDiscount
	}
	return nil
}

func validateDiscountValue(discountType models.DiscountType, value decimal.Decimal) error {
	if _, err := models.ParseDiscountType(string(discountType)); err != nil {
		return ErrInvalidDiscountType
	}
	if !value.IsPositive() {
		return ErrInvalidDiscount
	}
	if discountType == models.DiscountPercentage && value.GreaterThan(decimal.NewFromInt(100)) {
		return ErrPercentageTooLarge
	}
	return nil
}

func (v *ShopValidator) validateRegisterReview(r models.RegisterReview) error {
	if r.ProductID <= 0 {
		return requiredError("productId")
	}
	return validateRating(r.Rating)
}

func (v *ShopValidator) validateUpdateReview(r models.UpdateReview) error {
	if r.ReviewID <= 0 {
		return requiredError("reviewId")
	}
	if r.Rating != nil {
		return validateRating(*r.Rating)
	}
	return nil
}

func validateRating(rating int) error {
	if rating < models.MinRating || rating > models.MaxRating {
		return ErrInvalidRating
	}
	return nil
}

func (v *ShopValidator) validatePlaceOrder(request models.PlaceOrderRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldItems, FieldShippingAddressID, FieldPaymentMethodID}
	}

	for _, f := range fields {
		switch f {
		case FieldItems:
			if len(request.Items) == 0 {
				return ErrEmptyOrder
			}
			for i, line := range request.Items {
				if err := v.validateCartLine(models.CartLine(line)); err != nil {
					return fmt.Errorf("item %d: %w", i, err)
				}
			}
		case FieldShippingAddressID:
			if request.ShippingAddressID <= 0 {
				return requiredError("shippingAddressId")
			}
		case FieldPaymentMethodID:
			if request.PaymentMethodID <= 0 {
				return requiredError("paymentMethodId")
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ShopValidator) validateCartLine(line models.CartLine, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldProductID, FieldQuantity}
	}

	for _, f := range fields {
		switch f {
		case FieldProductID:
			if line.ProductID <= 0 {
				return requiredError("productId")
			}
		case FieldQuantity:
			if line.Quantity <= 0 {
				return ErrInvalidQuantity
			}
			if line.Quantity > models.MaxQuantity {
				return ErrQuantityTooLarge
			}
		case FieldQuantityOrZero:
			if line.Quantity < 0 {
				return ErrNegativeQuantity
			}
			if line.Quantity > models.MaxQuantity {
				return ErrQuantityTooLarge
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ShopValidator) validateRegisterAddress(a models.RegisterAddress) error {
	required := []struct {
		name  string
		value string
	}{
		{"addressType", a.AddressType},
		{"street", a.Street},
		{"city", a.City},
		{"postalCode", a.PostalCode},
		{"country", a.Country},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return requiredError(field.name)
		}
	}
	return nil
}
