package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/mock"
	"github.com/MKhiriev/go-shop-keeper/internal/store"
	"github.com/MKhiriev/go-shop-keeper/internal/validators"
	"github.com/MKhiriev/go-shop-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func ptr[T any](v T) *T { return &v }

func newTestPaymentService(t *testing.T) (PaymentService, *mock.MockPaymentMethodRepository, *mock.MockProfileRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)

	methods := mock.NewMockPaymentMethodRepository(ctrl)
	profiles := mock.NewMockProfileRepository(ctrl)
	profiles.EXPECT().FindCustomerByUserID(gomock.Any(), int64(5)).Return(models.Customer{CustomerID: 50}, nil).AnyTimes()

	return NewPaymentService(methods, profiles, validators.NewShopValidator(), logger.Nop()), methods, profiles
}

func TestPaymentService_RegisterPaymentMethod_Card(t *testing.T) {
	svc, methods, _ := newTestPaymentService(t)
	ctx := context.Background()

	input := models.RegisterPaymentMethod{
		PaymentType:        models.PaymentCard,
		CardNumber:         ptr("4111 1111 1111 1111"),
		CardExpirationDate: ptr("09/28"),
		CardTypeID:         ptr(int64(1)),
		IsDefault:          true,
	}

	methods.EXPECT().FindCardType(ctx, int64(1)).Return(models.CardType{CardTypeID: 1, Name: "VISA"}, nil)
	methods.EXPECT().CreatePaymentMethod(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, m models.PaymentMethod) (models.PaymentMethod, error) {
			assert.Equal(t, int64(50), m.CustomerID)
			assert.True(t, m.IsDefault)
			m.PaymentMethodID = 3
			return m, nil
		},
	)

	got, err := svc.RegisterPaymentMethod(ctx, 5, input)

	require.NoError(t, err)
	assert.Equal(t, int64(3), got.PaymentMethodID)
}

func TestPaymentService_RegisterPaymentMethod_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   models.RegisterPaymentMethod
		setup   func(methods *mock.MockPaymentMethodRepository)
		wantErr error
	}{
		{
			name:    "upi without id",
			input:   models.RegisterPaymentMethod{PaymentType: models.PaymentUPI},
			wantErr: validators.ErrValidation,
		},
		{
			name: "card with short number",
			input: models.RegisterPaymentMethod{
				PaymentType:        models.PaymentCard,
				CardNumber:         ptr("4111"),
				CardExpirationDate: ptr("09/28"),
				CardTypeID:         ptr(int64(1)),
			},
			wantErr: validators.ErrInvalidCardNumber,
		},
		{
			name: "unknown card type",
			input: models.RegisterPaymentMethod{
				PaymentType:        models.PaymentCard,
				CardNumber:         ptr("4111111111111111"),
				CardExpirationDate: ptr("09/28"),
				CardTypeID:         ptr(int64(99)),
			},
			setup: func(methods *mock.MockPaymentMethodRepository) {
				methods.EXPECT().FindCardType(gomock.Any(), int64(99)).Return(models.CardType{}, store.ErrCardTypeNotFound)
			},
			wantErr: store.ErrCardTypeNotFound,
		},
		{
			name:    "unknown payment type",
			input:   models.RegisterPaymentMethod{PaymentType: "CASH"},
			wantErr: validators.ErrInvalidPaymentType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, methods, _ := newTestPaymentService(t)
			if tt.setup != nil {
				tt.setup(methods)
			}

			_, err := svc.RegisterPaymentMethod(context.Background(), 5, tt.input)

			require.ErrorIs(t, err, ErrValidation)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPaymentService_UpdatePaymentMethod_MergesPatch(t *testing.T) {
	svc, methods, _ := newTestPaymentService(t)
	ctx := context.Background()

	stored := models.PaymentMethod{
		PaymentMethodID:   3,
		CustomerID:        50,
		PaymentType:       models.PaymentIBAN,
		AccountHolderName: ptr("Jane Doe"),
		IBAN:              ptr("DE89370400440532013000"),
		IsDefault:         true,
	}

	methods.EXPECT().FindPaymentMethod(ctx, int64(50), int64(3)).Return(stored, nil)
	methods.EXPECT().UpdatePaymentMethod(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, m models.PaymentMethod) (models.PaymentMethod, error) {
			assert.Equal(t, models.PaymentIBAN, m.PaymentType, "payment type cannot change")
			assert.Equal(t, "Jane Doe", *m.AccountHolderName, "untouched fields are kept")
			assert.Equal(t, "GB29NWBK60161331926819", *m.IBAN)
			assert.False(t, m.IsDefault)
			return m, nil
		},
	)

	_, err := svc.UpdatePaymentMethod(ctx, 5, models.UpdatePaymentMethod{
		PaymentMethodID: 3,
		IBAN:            ptr("GB29NWBK60161331926819"),
		IsDefault:       ptr(false),
	})

	require.NoError(t, err)
}

func TestPaymentService_UpdatePaymentMethod_KeepsDefaultWhenUnset(t *testing.T) {
	svc, methods, _ := newTestPaymentService(t)

	stored := models.PaymentMethod{
		PaymentMethodID: 3,
		CustomerID:      50,
		PaymentType:     models.PaymentUPI,
		UPIID:           ptr("jane@upi"),
		IsDefault:       true,
	}

	methods.EXPECT().FindPaymentMethod(gomock.Any(), int64(50), int64(3)).Return(stored, nil)
	methods.EXPECT().UpdatePaymentMethod(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, m models.PaymentMethod) (models.PaymentMethod, error) {
			assert.True(t, m.IsDefault)
			assert.Equal(t, "jane@okbank", *m.UPIID)
			return m, nil
		},
	)

	_, err := svc.UpdatePaymentMethod(context.Background(), 5, models.UpdatePaymentMethod{PaymentMethodID: 3, UPIID: ptr("jane@okbank")})

	require.NoError(t, err)
}

func TestPaymentService_UpdatePaymentMethod_NotOwner(t *testing.T) {
	svc, methods, _ := newTestPaymentService(t)

	methods.EXPECT().FindPaymentMethod(gomock.Any(), int64(50), int64(3)).Return(models.PaymentMethod{}, store.ErrNotOwner)

	_, err := svc.UpdatePaymentMethod(context.Background(), 5, models.UpdatePaymentMethod{PaymentMethodID: 3})

	assert.ErrorIs(t, err, store.ErrNotOwner)
}

func TestPaymentService_UpdatePaymentMethod_MergedResultInvalid(t *testing.T) {
	svc, methods, _ := newTestPaymentService(t)

	stored := models.PaymentMethod{
		PaymentMethodID:    3,
		CustomerID:         50,
		PaymentType:        models.PaymentCard,
		CardNumber:         ptr("4111111111111111"),
		CardExpirationDate: ptr("09/28"),
		CardTypeID:         ptr(int64(1)),
	}

	methods.EXPECT().FindPaymentMethod(gomock.Any(), int64(50), int64(3)).Return(stored, nil)

	_, err := svc.UpdatePaymentMethod(context.Background(), 5, models.UpdatePaymentMethod{PaymentMethodID: 3, CardExpirationDate: ptr("13/28")})

	require.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, validators.ErrInvalidCardExpiry)
}
