// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Transport-level errors of the /query endpoint. Callers can match against
// them with [errors.Is].
var (
	// ErrMalformedRequest is returned when the body or the variables of an
	// operation cannot be decoded.
	ErrMalformedRequest = errors.New("malformed request")

	// ErrUnknownOperation is returned for an operationName missing from the
	// operation table.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrTooManyRequests is returned when a client exceeds the login rate.
	ErrTooManyRequests = errors.New("too many requests")
)
