package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-shop-keeper/internal/auth"
	"github.com/MKhiriev/go-shop-keeper/internal/service"
	"github.com/MKhiriev/go-shop-keeper/internal/store"
	"github.com/MKhiriev/go-shop-keeper/internal/validators"
)

// Error codes carried in extensions.code.
const (
	CodeInvalidCredentials      = "INVALID_CREDENTIALS"
	CodeTokenExpired            = "TOKEN_EXPIRED"
	CodeInsufficientPermissions = "INSUFFICIENT_PERMISSIONS"
	CodeUnauthorized            = "UNAUTHORIZED"
	CodeNotFound                = "NOT_FOUND"
	CodeInsufficientStock       = "INSUFFICIENT_STOCK"
	CodeConflict                = "CONFLICT"
	CodeValidation              = "VALIDATION_ERROR"
	CodeInvalidState            = "INVALID_STATE"
	CodeRateLimited             = "RATE_LIMITED"
	CodeInternal                = "INTERNAL_ERROR"
)

const internalErrorMessage = "internal server error"

type errorKind struct {
	code   string
	status int
}

// errorKinds is checked in order: the first sentinel err matches wins.
// Expiry precedes the generic credential failure and stock precedes the
// not-found family.
var errorKinds = []struct {
	target error
	kind   errorKind
}{
	{auth.ErrTokenExpired, errorKind{CodeTokenExpired, http.StatusUnauthorized}},
	{auth.ErrInvalidCredentials, errorKind{CodeInvalidCredentials, http.StatusUnauthorized}},
	{service.ErrInvalidCredentials, errorKind{CodeInvalidCredentials, http.StatusUnauthorized}},
	{auth.ErrInsufficientPermissions, errorKind{CodeInsufficientPermissions, http.StatusForbidden}},
	{service.ErrUnauthorized, errorKind{CodeUnauthorized, http.StatusForbidden}},
	{store.ErrNotOwner, errorKind{CodeUnauthorized, http.StatusForbidden}},
	{store.ErrInsufficientStock, errorKind{CodeInsufficientStock, http.StatusConflict}},
	{service.ErrValidation, errorKind{CodeValidation, http.StatusBadRequest}},
	{validators.ErrValidation, errorKind{CodeValidation, http.StatusBadRequest}},
	{store.ErrCheckViolation, errorKind{CodeValidation, http.StatusBadRequest}},
	{ErrMalformedRequest, errorKind{CodeValidation, http.StatusBadRequest}},
	{ErrUnknownOperation, errorKind{CodeValidation, http.StatusBadRequest}},
	{store.ErrNotFound, errorKind{CodeNotFound, http.StatusNotFound}},
	{service.ErrProfileNotFound, errorKind{CodeNotFound, http.StatusNotFound}},
	{store.ErrAlreadyExists, errorKind{CodeConflict, http.StatusConflict}},
	{store.ErrReferenced, errorKind{CodeConflict, http.StatusConflict}},
	{service.ErrInvalidState, errorKind{CodeInvalidState, http.StatusConflict}},
	{store.ErrInvalidStatusTransition, errorKind{CodeInvalidState, http.StatusConflict}},
	{ErrTooManyRequests, errorKind{CodeRateLimited, http.StatusTooManyRequests}},
}

// queryError is one entry of the "errors" array of a response.
type queryError struct {
	Message    string          `json:"message"`
	Extensions errorExtensions `json:"extensions"`
}

type errorExtensions struct {
	Code     string `json:"code"`
	UserID   *int64 `json:"userId,omitempty"`
	Resource string `json:"resource,omitempty"`
}

// toQueryError maps err to its wire form and HTTP status. Internal errors
// carry a generic message.
func toQueryError(err error) (queryError, int) {
	kind := errorKind{CodeInternal, http.StatusInternalServerError}
	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			kind = k.kind
			break
		}
	}

	qe := queryError{
		Message:    err.Error(),
		Extensions: errorExtensions{Code: kind.code},
	}
	if kind.code == CodeInternal {
		qe.Message = internalErrorMessage
	}

	var permErr *auth.PermissionError
	if errors.As(err, &permErr) {
		userID := permErr.UserID
		qe.Extensions.UserID = &userID
	}

	var stockErr *store.InsufficientStockError
	if errors.As(err, &stockErr) {
		qe.Extensions.Resource = fmt.Sprintf("product:%d", stockErr.ProductID)
	}

	return qe, kind.status
}
