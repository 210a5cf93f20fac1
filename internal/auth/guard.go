package auth

import (
	"slices"

	"github.com/MKhiriev/go-shop-keeper/models"
)

// Authorize checks the verified claims' role against the allowed set.
// It must only run after token verification succeeded.
func Authorize(claims models.Claims, allowed ...models.Role) error {
	if slices.Contains(allowed, claims.Role) {
		return nil
	}

	userID, _ := claims.UserID()
	return &PermissionError{UserID: userID, Role: claims.Role}
}
