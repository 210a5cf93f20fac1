package service

import "errors"

var (
	// ErrValidation wraps every rejected input, including validator errors.
	ErrValidation = errors.New("validation error")

	// ErrInvalidCredentials is returned by login for an unknown email or a
	// wrong password, and by changePassword for a wrong old password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthorized is returned when the caller may not touch a resource
	// they do not own or are not entitled to (e.g. reviewing a product they
	// never ordered).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidState is returned for requests that are well-formed but not
	// allowed in the current state.
	ErrInvalidState = errors.New("invalid state")

	// ErrProfileNotFound is returned when the caller has no customer or
	// supplier profile yet.
	ErrProfileNotFound = errors.New("profile not found")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
