package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/MKhiriev/go-shop-keeper/internal/auth"
	"github.com/MKhiriev/go-shop-keeper/internal/config"
	"github.com/MKhiriev/go-shop-keeper/internal/service"
	"github.com/MKhiriev/go-shop-keeper/internal/store"
	"github.com/MKhiriev/go-shop-keeper/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestQuery_PublicOperations(t *testing.T) {
	wantPublic := []string{
		"addressType",
		"cardTypes",
		"categories",
		"discounts",
		"discountsOnProduct",
		"login",
		"products",
		"productsByName",
		"registerUser",
		"reviewsForProduct",
	}

	h, _ := newTestHandler(t, config.Server{})

	var public []string
	for name, op := range h.operations {
		if len(op.roles) == 0 {
			public = append(public, name)
		}
	}
	slices.Sort(public)

	assert.Equal(t, wantPublic, public)
}

func TestQuery_RegisterUser(t *testing.T) {
	h, s := newTestHandler(t, config.Server{})

	s.auth.EXPECT().
		Register(gomock.Any(), models.RegisterUser{Email: "a@b.com", Password: "Str0ng!Pw", Role: models.RoleCustomer}).
		Return(models.AuthUser{UserRole: models.RoleCustomer, Token: "signed"}, nil)

	rec := postQuery(t, h, "", "registerUser", map[string]any{
		"email":    "a@b.com",
		"password": "Str0ng!Pw",
		"role":     "customer",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"userRole":"customer","token":"signed"}`, string(resp.Data["registerUser"]))
}

func TestQuery_GuardedOperationWithoutToken(t *testing.T) {
	h, _ := newTestHandler(t, config.Server{})

	for name, op := range h.operations {
		if len(op.roles) == 0 {
			continue
		}

		t.Run(name, func(t *testing.T) {
			rec := postQuery(t, h, "", name, nil)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			resp := decodeResponse(t, rec)
			require.Len(t, resp.Errors, 1)
			assert.Equal(t, CodeInvalidCredentials, resp.Errors[0].Extensions.Code)
		})
	}
}

func TestQuery_WrongRole(t *testing.T) {
	h, s := newTestHandler(t, config.Server{})

	for name, op := range h.operations {
		if len(op.roles) == 0 || len(op.roles) == len(anyRole) {
			continue
		}

		role := models.RoleCustomer
		if slices.Contains(op.roles, models.RoleCustomer) {
			role = models.RoleSupplier
		}

		t.Run(name, func(t *testing.T) {
			s.auth.EXPECT().Authenticate(gomock.Any(), "tok").Return(claimsFor(42, role), nil)

			rec := postQuery(t, h, "tok", name, nil)

			require.Equal(t, http.StatusForbidden, rec.Code)
			resp := decodeResponse(t, rec)
			require.Len(t, resp.Errors, 1)
			assert.Equal(t, CodeInsufficientPermissions, resp.Errors[0].Extensions.Code)
			require.NotNil(t, resp.Errors[0].Extensions.UserID)
			assert.Equal(t, int64(42), *resp.Errors[0].Extensions.UserID)
		})
	}
}

func TestQuery_Authentication(t *testing.T) {
	tests := []struct {
		name     string
		authErr  error
		wantCode string
	}{
		{name: "expired token", authErr: fmt.Errorf("%w: exp", auth.ErrTokenExpired), wantCode: CodeTokenExpired},
		{name: "bad signature", authErr: auth.ErrInvalidCredentials, wantCode: CodeInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s := newTestHandler(t, config.Server{})
			s.auth.EXPECT().Authenticate(gomock.Any(), "tok").Return(models.Claims{}, tt.authErr)

			rec := postQuery(t, h, "tok", "me", nil)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			resp := decodeResponse(t, rec)
			require.Len(t, resp.Errors, 1)
			assert.Equal(t, tt.wantCode, resp.Errors[0].Extensions.Code)
		})
	}
}

func TestQuery_SubjectMustBeNumeric(t *testing.T) {
	h, s := newTestHandler(t, config.Server{})

	claims := claimsFor(1, models.RoleCustomer)
	claims.Subject = "not-a-number"
	s.auth.EXPECT().Authenticate(gomock.Any(), "tok").Return(claims, nil)

	rec := postQuery(t, h, "tok", "me", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestQuery_PlaceOrder(t *testing.T) {
	h, s := newTestHandler(t, config.Server{})

	request := models.PlaceOrderRequest{
		Items:             []models.OrderLine{{ProductID: 7, Quantity: 2}},
		ShippingAddressID: 3,
		PaymentMethodID:   4,
	}

	gomock.InOrder(
		s.auth.EXPECT().Authenticate(gomock.Any(), "tok").Return(claimsFor(5, models.RoleCustomer), nil),
		s.order.EXPECT().PlaceOrder(gomock.Any(), int64(5), request).Return(models.Order{
			OrderID:     11,
			CustomerID:  9,
			TotalAmount: decimal.RequireFromString("39.98"),
			Status:      models.OrderPending,
		}, nil),
	)

	rec := postQuery(t, h, "tok", "placeOrder", map[string]any{
		"items":             []map[string]any{{"productId": 7, "quantity": 2}},
		"shippingAddressId": 3,
		"paymentMethodId":   4,
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeResponse(t, rec)
	assert.Contains(t, string(resp.Data["placeOrder"]), `"totalAmount":"39.98"`)
}

func TestQuery_InsufficientStock(t *testing.T) {
	h, s := newTestHandler(t, config.Server{})

	s.auth.EXPECT().Authenticate(gomock.Any(), "tok").Return(claimsFor(5, models.RoleCustomer), nil)
	s.order.EXPECT().PlaceOrder(gomock.Any(), int64(5), gomock.Any()).
		Return(models.Order{}, fmt.Errorf("placing order: %w", &store.InsufficientStockError{ProductID: 7}))

	rec := postQuery(t, h, "tok", "placeOrder", map[string]any{
		"items": []map[string]any{{"productId": 7, "quantity": 100}},
	})

	require.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeResponse(t, rec)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, CodeInsufficientStock, resp.Errors[0].Extensions.Code)
	assert.Equal(t, "product:7", resp.Errors[0].Extensions.Resource)
}

func TestQuery_InternalErrorIsHidden(t *testing.T) {
	h, s := newTestHandler(t, config.Server{})

	s.product.EXPECT().Categories(gomock.Any()).Return(nil, errors.New("pq: connection refused"))

	rec := postQuery(t, h, "", "categories", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeResponse(t, rec)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, CodeInternal, resp.Errors[0].Extensions.Code)
	assert.Equal(t, internalErrorMessage, resp.Errors[0].Message)
}

func TestQuery_RejectedRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "operationName=login"},
		{name: "unknown operation", body: `{"operationName":"dropTables"}`},
		{name: "empty operation", body: `{}`},
		{name: "variables of wrong shape", body: `{"operationName":"products","variables":{"page":"first"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(t, config.Server{})

			req := httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Init().ServeHTTP(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeResponse(t, rec)
			require.Len(t, resp.Errors, 1)
			assert.Equal(t, CodeValidation, resp.Errors[0].Extensions.Code)
		})
	}
}

func TestQuery_ServiceValidationError(t *testing.T) {
	h, s := newTestHandler(t, config.Server{})

	s.product.EXPECT().ProductsByName(gomock.Any(), "", models.PageRequest{}).
		Return(models.Page[models.Product]{}, fmt.Errorf("%w: name is required", service.ErrValidation))

	rec := postQuery(t, h, "", "productsByName", map[string]any{"name": ""})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, CodeValidation, resp.Errors[0].Extensions.Code)
	assert.Contains(t, resp.Errors[0].Message, "name is required")
}

func TestQuery_DeleteReturnsTrue(t *testing.T) {
	h, s := newTestHandler(t, config.Server{})

	s.auth.EXPECT().Authenticate(gomock.Any(), "tok").Return(claimsFor(8, models.RoleSupplier), nil)
	s.product.EXPECT().DeleteProduct(gomock.Any(), int64(8), int64(15)).Return(nil)

	rec := postQuery(t, h, "tok", "deleteProduct", map[string]any{"productId": 15})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeResponse(t, rec)
	assert.Equal(t, "true", string(resp.Data["deleteProduct"]))
}

func TestQuery_OrderItems(t *testing.T) {
	h, s := newTestHandler(t, config.Server{})

	s.auth.EXPECT().Authenticate(gomock.Any(), "tok").Return(claimsFor(5, models.RoleCustomer), nil).Times(2)
	s.order.EXPECT().Order(gomock.Any(), int64(5), int64(3)).Return(models.Order{
		OrderID: 3,
		Items:   []models.OrderItem{{OrderItemID: 1, OrderID: 3, ProductID: 7, Quantity: 2, UnitPrice: decimal.RequireFromString("19.99")}},
	}, nil)
	s.order.EXPECT().Order(gomock.Any(), int64(5), int64(4)).Return(models.Order{OrderID: 4}, nil)

	rec := postQuery(t, h, "tok", "orderItems", map[string]any{"orderId": 3})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `[{"orderItemId":1,"orderId":3,"productId":7,"quantity":2,"unitPrice":"19.99"}]`,
		string(decodeResponse(t, rec).Data["orderItems"]))

	rec = postQuery(t, h, "tok", "orderItems", map[string]any{"orderId": 4})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "[]", string(decodeResponse(t, rec).Data["orderItems"]))
}

func TestQuery_LoginRateLimit(t *testing.T) {
	h, s := newTestHandler(t, config.Server{LoginRateLimit: 0.001, LoginRateBurst: 1})

	login := models.LoginUser{Email: "a@b.com", Password: "wrong"}
	s.auth.EXPECT().Login(gomock.Any(), login).Return(models.AuthUser{}, service.ErrInvalidCredentials)

	first := postQuery(t, h, "", "login", login)
	assert.Equal(t, http.StatusUnauthorized, first.Code)

	second := postQuery(t, h, "", "login", login)
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	resp := decodeResponse(t, second)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, CodeRateLimited, resp.Errors[0].Extensions.Code)
}
