package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrUnknownDiscountType is returned for a discount type outside the enum.
var ErrUnknownDiscountType = errors.New("unknown discount type")

// DiscountType selects how a discount reduces an order total.
type DiscountType string

const (
	DiscountPercentage DiscountType = "PERCENTAGE"
	DiscountFixed      DiscountType = "FIXED"
)

// ParseDiscountType validates s.
func ParseDiscountType(s string) (DiscountType, error) {
	switch t := DiscountType(s); t {
	case DiscountPercentage, DiscountFixed:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDiscountType, s)
	}
}

var hundred = decimal.NewFromInt(100)

// Discount is a code-addressed reduction applied once per order.
// TimesUsed is incremented by every order that applies it. MaxUses,
// validity dates and MinQuantity are stored but not enforced.
type Discount struct {
	DiscountID    int64           `json:"discountId"`
	Code          string          `json:"code"`
	Description   *string         `json:"description,omitempty"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	DiscountType  DiscountType    `json:"discountType"`
	ValidFrom     *time.Time      `json:"validFrom,omitempty"`
	ValidUntil    *time.Time      `json:"validUntil,omitempty"`
	MaxUses       *int            `json:"maxUses,omitempty"`
	TimesUsed     int             `json:"timesUsed"`
	ProductID     *int64          `json:"productId,omitempty"`
	CategoryID    *int64          `json:"categoryId,omitempty"`
	MinQuantity   *int            `json:"minQuantity,omitempty"`
}

// Apply reduces total by the discount. Percentages take value/100 of the
// total; fixed amounts are subtracted. The result is rounded to cents and
// never negative.
func (d Discount) Apply(total decimal.Decimal) decimal.Decimal {
	var reduced decimal.Decimal
	switch d.DiscountType {
	case DiscountPercentage:
		reduced = total.Sub(total.Mul(d.DiscountValue).Div(hundred))
	default:
		reduced = total.Sub(d.DiscountValue)
	}

	if reduced.IsNegative() {
		return decimal.Zero
	}
	return reduced.Round(2)
}

// RegisterDiscount is the input of the registerDiscount operation.
type RegisterDiscount struct {
	Code          string          `json:"code"`
	Description   *string         `json:"description,omitempty"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	DiscountType  DiscountType    `json:"discountType"`
	ValidFrom     *time.Time      `json:"validFrom,omitempty"`
	ValidUntil    *time.Time      `json:"validUntil,omitempty"`
	MaxUses       *int            `json:"maxUses,omitempty"`
	ProductID     int64           `json:"productId"`
	CategoryID    *int64          `json:"categoryId,omitempty"`
	MinQuantity   *int            `json:"minQuantity,omitempty"`
}

// UpdateDiscount is a partial update; nil fields are left unchanged.
type UpdateDiscount struct {
	DiscountID    int64            `json:"discountId"`
	Description   *string          `json:"description,omitempty"`
	DiscountValue *decimal.Decimal `json:"discountValue,omitempty"`
	DiscountType  *DiscountType    `json:"discountType,omitempty"`
	ValidFrom     *time.Time       `json:"validFrom,omitempty"`
	ValidUntil    *time.Time       `json:"validUntil,omitempty"`
	MaxUses       *int             `json:"maxUses,omitempty"`
	MinQuantity   *int             `json:"minQuantity,omitempty"`
}
