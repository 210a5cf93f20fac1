// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is a Go client for the shop server.
//
// [ShopClient] speaks the POST /query envelope: it sends an operation name
// with its variables, attaches the bearer token kept from the last
// registration or login and decodes either the data entry of the operation
// or the first error. Error codes map to the sentinels in errors.go, so
// callers can match them with [errors.Is] and read the details from
// [*QueryError] with [errors.As].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-shop-keeper/models"
)

// ShopClient talks to one shop server. Implementations are safe for
// concurrent use.
type ShopClient interface {
	// SetToken replaces the bearer token sent with every request. An empty
	// token makes requests anonymous.
	SetToken(token string)

	// Token returns the current bearer token.
	Token() string

	// Query runs operation with variables and decodes its data entry into
	// result. A nil result discards the data.
	Query(ctx context.Context, operation string, variables, result any) error

	// Register creates an account and keeps the returned token.
	Register(ctx context.Context, user models.RegisterUser) (models.AuthUser, error)

	// Login keeps the returned token.
	Login(ctx context.Context, user models.LoginUser) (models.AuthUser, error)

	PlaceOrder(ctx context.Context, request models.PlaceOrderRequest) (models.Order, error)
	CancelOrder(ctx context.Context, orderID int64) (models.Order, error)

	// VerifyEmail follows a verification link token.
	VerifyEmail(ctx context.Context, token string) error
}
