// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestGetBearerTokenFromContext_Success(t *testing.T) {
	ctx := WithBearerToken(context.Background(), "abc")

	token, ok := GetBearerTokenFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if token != "abc" {
		t.Errorf("expected token=abc, got %s", token)
	}
}

func TestGetBearerTokenFromContext_Missing(t *testing.T) {
	if _, ok := GetBearerTokenFromContext(context.Background()); ok {
		t.Fatal("expected ok=false for missing token")
	}
}

func TestGetBearerTokenFromContext_Empty(t *testing.T) {
	ctx := WithBearerToken(context.Background(), "")
	if _, ok := GetBearerTokenFromContext(ctx); ok {
		t.Fatal("expected ok=false for empty token")
	}
}

func TestGetBearerTokenFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), BearerTokenCtxKey, 42)
	if _, ok := GetBearerTokenFromContext(ctx); ok {
		t.Fatal("expected ok=false for wrong type")
	}
}
