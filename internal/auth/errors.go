package auth

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-shop-keeper/models"
)

var (
	// ErrConfiguration is returned when a required secret is unset or a
	// stored hash cannot be decoded.
	ErrConfiguration = errors.New("auth configuration error")
	// ErrMalformedHash wraps ErrConfiguration for undecodable credentials.
	ErrMalformedHash = fmt.Errorf("%w: malformed password hash", ErrConfiguration)

	// ErrInvalidCredentials covers missing, malformed or unverifiable tokens.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTokenExpired is returned for a correctly signed token past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrInsufficientPermissions is returned when a verified role is not
	// allowed to run an operation.
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)

// PermissionError reports which subject was denied. It unwraps to
// [ErrInsufficientPermissions].
type PermissionError struct {
	UserID int64
	Role   models.Role
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("%s: user %d with role %q", ErrInsufficientPermissions, e.UserID, e.Role)
}

func (e *PermissionError) Unwrap() error {
	return ErrInsufficientPermissions
}
