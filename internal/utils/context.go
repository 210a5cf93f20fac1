// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, hashing,
// HTTP response writing, bearer header parsing and id generation.
package utils

import "context"

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// BearerTokenCtxKey stores the raw, not yet verified bearer token taken from
// the Authorization header.
var BearerTokenCtxKey = contextKey("bearerToken")

// WithBearerToken returns a copy of ctx carrying the raw bearer token.
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, BearerTokenCtxKey, token)
}

// GetBearerTokenFromContext returns the raw bearer token, ok == false when
// the request carried none.
func GetBearerTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(BearerTokenCtxKey).(string)
	return token, ok && token != ""
}
