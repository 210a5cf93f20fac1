package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/metrics"
	"github.com/MKhiriev/go-shop-keeper/internal/mock"
	"github.com/MKhiriev/go-shop-keeper/internal/store"
	"github.com/MKhiriev/go-shop-keeper/internal/validators"
	"github.com/MKhiriev/go-shop-keeper/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestOrderService(t *testing.T) (OrderService, *mock.MockOrderRepository, *mock.MockProfileRepository, *metrics.Metrics) {
	t.Helper()
	ctrl := gomock.NewController(t)

	orders := mock.NewMockOrderRepository(ctrl)
	profiles := mock.NewMockProfileRepository(ctrl)
	m := metrics.New()

	return NewOrderService(orders, profiles, validators.NewShopValidator(), m, logger.Nop()), orders, profiles, m
}

func validOrderRequest() models.PlaceOrderRequest {
	return models.PlaceOrderRequest{
		Items:             []models.OrderLine{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 1}},
		ShippingAddressID: 10,
		PaymentMethodID:   20,
	}
}

func TestOrderService_PlaceOrder_Success(t *testing.T) {
	svc, orders, profiles, m := newTestOrderService(t)
	ctx := context.Background()

	profiles.EXPECT().FindCustomerByUserID(ctx, int64(5)).Return(models.Customer{CustomerID: 50, UserID: 5}, nil)
	orders.EXPECT().PlaceOrder(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.PlaceOrderRequest) (models.Order, error) {
			assert.Equal(t, int64(50), req.CustomerID, "customer id comes from the caller's profile")
			return models.Order{
				OrderID:     100,
				CustomerID:  req.CustomerID,
				TotalAmount: decimal.RequireFromString("59.97"),
				Status:      models.OrderPending,
			}, nil
		},
	)

	order, err := svc.PlaceOrder(ctx, 5, validOrderRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(100), order.OrderID)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrdersPlaced))
}

func TestOrderService_PlaceOrder_Failures(t *testing.T) {
	tests := []struct {
		name       string
		request    models.PlaceOrderRequest
		setup      func(orders *mock.MockOrderRepository, profiles *mock.MockProfileRepository)
		wantErr    error
		wantReason string
	}{
		{
			name:    "no customer profile",
			request: validOrderRequest(),
			setup: func(_ *mock.MockOrderRepository, profiles *mock.MockProfileRepository) {
				profiles.EXPECT().FindCustomerByUserID(gomock.Any(), int64(5)).Return(models.Customer{}, store.ErrCustomerNotFound)
			},
			wantErr:    ErrProfileNotFound,
			wantReason: metrics.ReasonNotFound,
		},
		{
			name:    "empty order",
			request: models.PlaceOrderRequest{ShippingAddressID: 10, PaymentMethodID: 20},
			setup: func(_ *mock.MockOrderRepository, profiles *mock.MockProfileRepository) {
				profiles.EXPECT().FindCustomerByUserID(gomock.Any(), int64(5)).Return(models.Customer{CustomerID: 50}, nil)
			},
			wantErr:    validators.ErrEmptyOrder,
			wantReason: metrics.ReasonValidation,
		},
		{
			name: "zero quantity",
			request: models.PlaceOrderRequest{
				Items:             []models.OrderLine{{ProductID: 1, Quantity: 0}},
				ShippingAddressID: 10,
				PaymentMethodID:   20,
			},
			setup: func(_ *mock.MockOrderRepository, profiles *mock.MockProfileRepository) {
				profiles.EXPECT().FindCustomerByUserID(gomock.Any(), int64(5)).Return(models.Customer{CustomerID: 50}, nil)
			},
			wantErr:    ErrValidation,
			wantReason: metrics.ReasonValidation,
		},
		{
			name:    "insufficient stock",
			request: validOrderRequest(),
			setup: func(orders *mock.MockOrderRepository, profiles *mock.MockProfileRepository) {
				profiles.EXPECT().FindCustomerByUserID(gomock.Any(), int64(5)).Return(models.Customer{CustomerID: 50}, nil)
				orders.EXPECT().PlaceOrder(gomock.Any(), gomock.Any()).Return(models.Order{}, &store.InsufficientStockError{ProductID: 2})
			},
			wantErr:    store.ErrInsufficientStock,
			wantReason: metrics.ReasonInsufficientStock,
		},
		{
			name:    "unknown discount code",
			request: validOrderRequest(),
			setup: func(orders *mock.MockOrderRepository, profiles *mock.MockProfileRepository) {
				profiles.EXPECT().FindCustomerByUserID(gomock.Any(), int64(5)).Return(models.Customer{CustomerID: 50}, nil)
				orders.EXPECT().PlaceOrder(gomock.Any(), gomock.Any()).Return(models.Order{}, store.ErrDiscountNotFound)
			},
			wantErr:    store.ErrNotFound,
			wantReason: metrics.ReasonNotFound,
		},
		{
			name:    "database failure",
			request: validOrderRequest(),
			setup: func(orders *mock.MockOrderRepository, profiles *mock.MockProfileRepository) {
				profiles.EXPECT().FindCustomerByUserID(gomock.Any(), int64(5)).Return(models.Customer{CustomerID: 50}, nil)
				orders.EXPECT().PlaceOrder(gomock.Any(), gomock.Any()).Return(models.Order{}, store.ErrCommitingTransaction)
			},
			wantErr:    store.ErrCommitingTransaction,
			wantReason: metrics.ReasonInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, orders, profiles, m := newTestOrderService(t)
			tt.setup(orders, profiles)

			_, err := svc.PlaceOrder(context.Background(), 5, tt.request)

			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.OrderFailures.WithLabelValues(tt.wantReason)))
			assert.Equal(t, 0.0, testutil.ToFloat64(m.OrdersPlaced))
		})
	}
}

func TestOrderService_PlaceOrder_InsufficientStockNamesProduct(t *testing.T) {
	svc, orders, profiles, _ := newTestOrderService(t)

	profiles.EXPECT().FindCustomerByUserID(gomock.Any(), gomock.Any()).Return(models.Customer{CustomerID: 50}, nil)
	orders.EXPECT().PlaceOrder(gomock.Any(), gomock.Any()).Return(models.Order{}, &store.InsufficientStockError{ProductID: 2})

	_, err := svc.PlaceOrder(context.Background(), 5, validOrderRequest())

	var stockErr *store.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, int64(2), stockErr.ProductID)
}

func TestOrderService_CancelOrder(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, orders, profiles, _ := newTestOrderService(t)
		ctx := context.Background()

		profiles.EXPECT().FindCustomerByUserID(ctx, int64(5)).Return(models.Customer{CustomerID: 50}, nil)
		orders.EXPECT().CancelOrder(ctx, int64(50), int64(100)).Return(models.Order{OrderID: 100, Status: models.OrderCancelled}, nil)

		order, err := svc.CancelOrder(ctx, 5, 100)

		require.NoError(t, err)
		assert.Equal(t, models.OrderCancelled, order.Status)
	})

	t.Run("not the owner", func(t *testing.T) {
		svc, orders, profiles, _ := newTestOrderService(t)

		profiles.EXPECT().FindCustomerByUserID(gomock.Any(), int64(5)).Return(models.Customer{CustomerID: 50}, nil)
		orders.EXPECT().CancelOrder(gomock.Any(), int64(50), int64(100)).Return(models.Order{}, store.ErrNotOwner)

		_, err := svc.CancelOrder(context.Background(), 5, 100)

		assert.ErrorIs(t, err, store.ErrNotOwner)
	})

	t.Run("already shipped", func(t *testing.T) {
		svc, orders, profiles, _ := newTestOrderService(t)

		profiles.EXPECT().FindCustomerByUserID(gomock.Any(), int64(5)).Return(models.Customer{CustomerID: 50}, nil)
		orders.EXPECT().CancelOrder(gomock.Any(), int64(50), int64(100)).Return(models.Order{}, store.ErrInvalidStatusTransition)

		_, err := svc.CancelOrder(context.Background(), 5, 100)

		assert.ErrorIs(t, err, store.ErrInvalidStatusTransition)
	})
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		setup   func(orders *mock.MockOrderRepository, profiles *mock.MockProfileRepository)
		wantErr error
	}{
		{
			name:   "ship pending order",
			status: "SHIPPED",
			setup: func(orders *mock.MockOrderRepository, profiles *mock.MockProfileRepository) {
				profiles.EXPECT().FindSupplierByUserID(gomock.Any(), int64(8)).Return(models.Supplier{SupplierID: 80}, nil)
				orders.EXPECT().UpdateOrderStatus(gomock.Any(), int64(100), models.OrderShipped).
					Return(models.Order{OrderID: 100, Status: models.OrderShipped}, nil)
			},
		},
		{
			name:    "unknown status",
			status:  "LOST",
			setup:   func(*mock.MockOrderRepository, *mock.MockProfileRepository) {},
			wantErr: ErrValidation,
		},
		{
			name:    "cancel through status update",
			status:  "CANCELLED",
			setup:   func(*mock.MockOrderRepository, *mock.MockProfileRepository) {},
			wantErr: ErrInvalidState,
		},
		{
			name:   "illegal transition",
			status: "PENDING",
			setup: func(orders *mock.MockOrderRepository, profiles *mock.MockProfileRepository) {
				profiles.EXPECT().FindSupplierByUserID(gomock.Any(), int64(8)).Return(models.Supplier{SupplierID: 80}, nil)
				orders.EXPECT().UpdateOrderStatus(gomock.Any(), int64(100), models.OrderPending).
					Return(models.Order{}, store.ErrInvalidStatusTransition)
			},
			wantErr: store.ErrInvalidStatusTransition,
		},
		{
			name:   "no supplier profile",
			status: "DELIVERED",
			setup: func(_ *mock.MockOrderRepository, profiles *mock.MockProfileRepository) {
				profiles.EXPECT().FindSupplierByUserID(gomock.Any(), int64(8)).Return(models.Supplier{}, store.ErrSupplierNotFound)
			},
			wantErr: ErrProfileNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, orders, profiles, _ := newTestOrderService(t)
			tt.setup(orders, profiles)

			order, err := svc.UpdateOrderStatus(context.Background(), 8, models.UpdateOrderStatus{OrderID: 100, Status: tt.status})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, models.OrderStatus(tt.status), order.Status)
		})
	}
}

func TestOrderService_Orders_ScopedToCaller(t *testing.T) {
	svc, orders, profiles, _ := newTestOrderService(t)
	ctx := context.Background()
	page := models.PageRequest{First: 10}

	profiles.EXPECT().FindCustomerByUserID(ctx, int64(5)).Return(models.Customer{CustomerID: 50}, nil)
	orders.EXPECT().ListOrders(ctx, int64(50), page).Return(models.Page[models.Order]{Items: []models.Order{{OrderID: 1}}}, nil)

	got, err := svc.Orders(ctx, 5, page)

	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
}
