package validators

import (
	"regexp"
	"strings"

	"github.com/MKhiriev/go-shop-keeper/models"
)

var (
	cardNumberPattern = regexp.MustCompile(`^[0-9]{12,19}$`)
	cardExpiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
)

// validatePaymentMethod checks the fields required by the payment type.
// Updates are validated after merging with the stored record, so the same
// rules cover both registration and update.
func (v *ShopValidator) validatePaymentMethod(m models.PaymentMethod) error {
	switch m.PaymentType {
	case models.PaymentCard:
		if err := requireSet("cardNumber", m.CardNumber); err != nil {
			return err
		}
		if !cardNumberPattern.MatchString(strings.ReplaceAll(*m.CardNumber, " ", "")) {
			return ErrInvalidCardNumber
		}
		if err := requireSet("cardExpirationDate", m.CardExpirationDate); err != nil {
			return err
		}
		if !cardExpiryPattern.MatchString(*m.CardExpirationDate) {
			return ErrInvalidCardExpiry
		}
		if m.CardTypeID == nil || *m.CardTypeID <= 0 {
			return requiredError("cardTypeId")
		}

	case models.PaymentUPI:
		return requireSet("upiId", m.UPIID)

	case models.PaymentBankTransfer:
		return requireAll(
			namedField{"bankName", m.BankName},
			namedField{"accountHolderName", m.AccountHolderName},
			namedField{"bankAccountNumber", m.BankAccountNumber},
			namedField{"ifscCode", m.IFSCCode},
		)

	case models.PaymentIBAN:
		return requireAll(
			namedField{"accountHolderName", m.AccountHolderName},
			namedField{"iban", m.IBAN},
		)

	default:
		return ErrInvalidPaymentType
	}

	return nil
}

type namedField struct {
	name  string
	value *string
}

func requireAll(fields ...namedField) error {
	for _, f := range fields {
		if err := requireSet(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

func requireSet(name string, value *string) error {
	if value == nil || strings.TrimSpace(*value) == "" {
		return requiredError(name)
	}
	return nil
}
