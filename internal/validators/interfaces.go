// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks operation inputs before they reach the
// persistence layer.
//
// A Validator dispatches on the dynamic type of the value and may be scoped
// to a subset of fields. Every rejection wraps [ErrValidation] so the
// transport can map it to a single error code.
package validators

import "context"

// Validator validates the provided input and optionally restricts
// validation to specific named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
