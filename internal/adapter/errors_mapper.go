package adapter

import (
	"net/http"
	"strings"
)

var codeErrors = map[string]error{
	"INVALID_CREDENTIALS":      ErrInvalidCredentials,
	"TOKEN_EXPIRED":            ErrTokenExpired,
	"INSUFFICIENT_PERMISSIONS": ErrForbidden,
	"UNAUTHORIZED":             ErrForbidden,
	"NOT_FOUND":                ErrNotFound,
	"CONFLICT":                 ErrConflict,
	"INSUFFICIENT_STOCK":       ErrInsufficientStock,
	"VALIDATION_ERROR":         ErrValidation,
	"INVALID_STATE":            ErrInvalidState,
	"RATE_LIMITED":             ErrRateLimited,
	"INTERNAL_ERROR":           ErrInternalServerError,
}

// statusError is the fallback for responses without a known code, e.g. a
// proxy error page.
func statusError(status int) error {
	switch status {
	case http.StatusBadRequest:
		return ErrValidation
	case http.StatusUnauthorized:
		return ErrInvalidCredentials
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return ErrInternalServerError
	}
}

// mapQueryError builds the error of a failed response. body is used as the
// message when the response carried no error envelope.
func mapQueryError(status int, errs []wireError, body string) error {
	if len(errs) == 0 {
		message := strings.TrimSpace(body)
		if message == "" {
			message = http.StatusText(status)
		}
		return &QueryError{Status: status, Message: message}
	}

	first := errs[0]
	return &QueryError{
		Status:   status,
		Code:     first.Extensions.Code,
		Message:  first.Message,
		UserID:   first.Extensions.UserID,
		Resource: first.Extensions.Resource,
	}
}
