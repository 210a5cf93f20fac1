package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-shop-keeper/internal/auth"
	"github.com/MKhiriev/go-shop-keeper/internal/service"
	"github.com/MKhiriev/go-shop-keeper/internal/store"
	"github.com/MKhiriev/go-shop-keeper/internal/validators"
	"github.com/MKhiriev/go-shop-keeper/models"
	"github.com/stretchr/testify/assert"
)

func TestToQueryError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"expired token", fmt.Errorf("%w: %w", auth.ErrInvalidCredentials, auth.ErrTokenExpired), CodeTokenExpired, http.StatusUnauthorized},
		{"invalid token", auth.ErrInvalidCredentials, CodeInvalidCredentials, http.StatusUnauthorized},
		{"wrong password", service.ErrInvalidCredentials, CodeInvalidCredentials, http.StatusUnauthorized},
		{"wrong role", &auth.PermissionError{UserID: 3, Role: models.RoleSupplier}, CodeInsufficientPermissions, http.StatusForbidden},
		{"review without order", service.ErrUnauthorized, CodeUnauthorized, http.StatusForbidden},
		{"foreign row", fmt.Errorf("updating: %w", store.ErrNotOwner), CodeUnauthorized, http.StatusForbidden},
		{"stock", &store.InsufficientStockError{ProductID: 1}, CodeInsufficientStock, http.StatusConflict},
		{"service validation", service.ErrValidation, CodeValidation, http.StatusBadRequest},
		{"validator", fmt.Errorf("%w: email", validators.ErrValidation), CodeValidation, http.StatusBadRequest},
		{"check constraint", store.ErrCheckViolation, CodeValidation, http.StatusBadRequest},
		{"malformed body", ErrMalformedRequest, CodeValidation, http.StatusBadRequest},
		{"unknown operation", ErrUnknownOperation, CodeValidation, http.StatusBadRequest},
		{"missing product", store.ErrProductNotFound, CodeNotFound, http.StatusNotFound},
		{"missing profile", service.ErrProfileNotFound, CodeNotFound, http.StatusNotFound},
		{"duplicate email", store.ErrUserAlreadyExists, CodeConflict, http.StatusConflict},
		{"ordered product deleted", fmt.Errorf("product deletion failed: %w", store.ErrProductReferenced), CodeConflict, http.StatusConflict},
		{"cancel shipped", service.ErrInvalidState, CodeInvalidState, http.StatusConflict},
		{"bad transition", store.ErrInvalidStatusTransition, CodeInvalidState, http.StatusConflict},
		{"rate limited", ErrTooManyRequests, CodeRateLimited, http.StatusTooManyRequests},
		{"anything else", errors.New("dial tcp: refused"), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qe, status := toQueryError(tt.err)

			assert.Equal(t, tt.wantCode, qe.Extensions.Code)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestToQueryError_Extensions(t *testing.T) {
	t.Run("permission error carries user id", func(t *testing.T) {
		qe, _ := toQueryError(fmt.Errorf("op: %w", &auth.PermissionError{UserID: 17, Role: models.RoleCustomer}))

		if assert.NotNil(t, qe.Extensions.UserID) {
			assert.Equal(t, int64(17), *qe.Extensions.UserID)
		}
		assert.Empty(t, qe.Extensions.Resource)
	})

	t.Run("stock error carries resource", func(t *testing.T) {
		qe, _ := toQueryError(&store.InsufficientStockError{ProductID: 12})

		assert.Equal(t, "product:12", qe.Extensions.Resource)
		assert.Nil(t, qe.Extensions.UserID)
	})

	t.Run("internal error hides details", func(t *testing.T) {
		qe, _ := toQueryError(errors.New("password=hunter2"))

		assert.Equal(t, internalErrorMessage, qe.Message)
	})

	t.Run("known error keeps message", func(t *testing.T) {
		qe, _ := toQueryError(fmt.Errorf("%w: quantity must be positive", service.ErrValidation))

		assert.Contains(t, qe.Message, "quantity must be positive")
	})
}
