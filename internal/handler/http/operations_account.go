package http

import (
	"context"

	"github.com/MKhiriev/go-shop-keeper/models"
)

// accountOperations covers registration, sessions and profiles.
func (h *Handler) accountOperations() map[string]operation {
	auth := h.services.AuthService
	profiles := h.services.ProfileService

	return map[string]operation{
		"registerUser": {
			resolve: withVariables(func(ctx context.Context, _ call, in models.RegisterUser) (any, error) {
				return auth.Register(ctx, in)
			}),
		},
		"login": {
			resolve: withVariables(func(ctx context.Context, _ call, in models.LoginUser) (any, error) {
				return auth.Login(ctx, in)
			}),
		},
		"refreshToken": {
			roles: anyRole,
			resolve: func(ctx context.Context, c call) (any, error) {
				return auth.Refresh(ctx, c.token)
			},
		},
		"logout": {
			roles: anyRole,
			resolve: func(ctx context.Context, c call) (any, error) {
				return true, auth.Logout(ctx, c.claims)
			},
		},
		"me": {
			roles: anyRole,
			resolve: func(ctx context.Context, c call) (any, error) {
				return auth.Me(ctx, c.userID)
			},
		},
		"changePassword": {
			roles: anyRole,
			resolve: withVariables(func(ctx context.Context, c call, in models.ChangePassword) (any, error) {
				return true, auth.ChangePassword(ctx, c.userID, in)
			}),
		},
		"sendEmailVerification": {
			roles: anyRole,
			resolve: func(ctx context.Context, c call) (any, error) {
				return true, auth.SendEmailVerification(ctx, c.userID)
			},
		},
		"registerCustomer": {
			roles: customerOnly,
			resolve: withVariables(func(ctx context.Context, c call, in models.RegisterCustomer) (any, error) {
				return profiles.RegisterCustomer(ctx, c.userID, in)
			}),
		},
		"customerProfile": {
			roles: customerOnly,
			resolve: func(ctx context.Context, c call) (any, error) {
				return profiles.CustomerProfile(ctx, c.userID)
			},
		},
		"registerSupplier": {
			roles: supplierOnly,
			resolve: withVariables(func(ctx context.Context, c call, in models.RegisterSupplier) (any, error) {
				return profiles.RegisterSupplier(ctx, c.userID, in)
			}),
		},
		"supplierProfile": {
			roles: supplierOnly,
			resolve: func(ctx context.Context, c call) (any, error) {
				return profiles.SupplierProfile(ctx, c.userID)
			},
		},
	}
}
