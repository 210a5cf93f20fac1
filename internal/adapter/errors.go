package adapter

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrTokenExpired        = errors.New("token expired")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrValidation          = errors.New("validation failed")
	ErrInvalidState        = errors.New("invalid state")
	ErrRateLimited         = errors.New("rate limited")
	ErrInternalServerError = errors.New("internal server error")

	// ErrMalformedResponse is returned when a successful response carries
	// no data for the requested operation.
	ErrMalformedResponse = errors.New("malformed server response")
)

// QueryError is the first entry of a response's errors array.
type QueryError struct {
	Status   int
	Code     string
	Message  string
	UserID   *int64
	Resource string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

func (e *QueryError) Unwrap() error {
	if err, ok := codeErrors[e.Code]; ok {
		return err
	}
	return statusError(e.Status)
}
