package models

import (
	"errors"
	"fmt"
)

// ErrUnknownPaymentType is returned for a payment type outside the enum.
var ErrUnknownPaymentType = errors.New("unknown payment type")

// PaymentType determines which PaymentMethod fields are required.
type PaymentType string

const (
	PaymentCard         PaymentType = "CARD"
	PaymentUPI          PaymentType = "UPI"
	PaymentBankTransfer PaymentType = "BANK_TRANSFER"
	PaymentIBAN         PaymentType = "IBAN"
)

// ParsePaymentType validates s.
func ParsePaymentType(s string) (PaymentType, error) {
	switch t := PaymentType(s); t {
	case PaymentCard, PaymentUPI, PaymentBankTransfer, PaymentIBAN:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPaymentType, s)
	}
}

// PaymentMethod is a stored customer payment reference. At most one
// payment method per customer carries IsDefault.
type PaymentMethod struct {
	PaymentMethodID    int64       `json:"paymentMethodId"`
	CustomerID         int64       `json:"customerId"`
	PaymentType        PaymentType `json:"paymentType"`
	BankName           *string     `json:"bankName,omitempty"`
	AccountHolderName  *string     `json:"accountHolderName,omitempty"`
	CardNumber         *string     `json:"cardNumber,omitempty"`
	CardExpirationDate *string     `json:"cardExpirationDate,omitempty"`
	IBAN               *string     `json:"iban,omitempty"`
	UPIID              *string     `json:"upiId,omitempty"`
	BankAccountNumber  *string     `json:"bankAccountNumber,omitempty"`
	IFSCCode           *string     `json:"ifscCode,omitempty"`
	CardTypeID         *int64      `json:"cardTypeId,omitempty"`
	IsDefault          bool        `json:"isDefault"`
}

// CardType names a card network.
type CardType struct {
	CardTypeID int64  `json:"cardTypeId"`
	Name       string `json:"name"`
}

// RegisterPaymentMethod is the input of the registerPaymentMethod operation.
type RegisterPaymentMethod struct {
	PaymentType        PaymentType `json:"paymentType"`
	BankName           *string     `json:"bankName,omitempty"`
	AccountHolderName  *string     `json:"accountHolderName,omitempty"`
	CardNumber         *string     `json:"cardNumber,omitempty"`
	CardExpirationDate *string     `json:"cardExpirationDate,omitempty"`
	IBAN               *string     `json:"iban,omitempty"`
	UPIID              *string     `json:"upiId,omitempty"`
	BankAccountNumber  *string     `json:"bankAccountNumber,omitempty"`
	IFSCCode           *string     `json:"ifscCode,omitempty"`
	CardTypeID         *int64      `json:"cardTypeId,omitempty"`
	IsDefault          bool        `json:"isDefault"`
}

// UpdatePaymentMethod is a partial update; nil fields are left unchanged.
// The payment type itself cannot change.
type UpdatePaymentMethod struct {
	PaymentMethodID    int64   `json:"paymentMethodId"`
	BankName           *string `json:"bankName,omitempty"`
	AccountHolderName  *string `json:"accountHolderName,omitempty"`
	CardNumber         *string `json:"cardNumber,omitempty"`
	CardExpirationDate *string `json:"cardExpirationDate,omitempty"`
	IBAN               *string `json:"iban,omitempty"`
	UPIID              *string `json:"upiId,omitempty"`
	BankAccountNumber  *string `json:"bankAccountNumber,omitempty"`
	IFSCCode           *string `json:"ifscCode,omitempty"`
	CardTypeID         *int64  `json:"cardTypeId,omitempty"`
	IsDefault          *bool   `json:"isDefault,omitempty"`
}
