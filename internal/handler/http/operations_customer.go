package http

import (
	"context"

	"github.com/MKhiriev/go-shop-keeper/models"
)

// customerOperations covers the customer's addresses, payment methods and
// cart.
func (h *Handler) customerOperations() map[string]operation {
	addresses := h.services.AddressService
	payments := h.services.PaymentService
	carts := h.services.CartService

	type addressIDVariables struct {
		AddressID int64 `json:"addressId"`
	}
	type addressTypeIDVariables struct {
		AddressTypeID int64 `json:"addressTypeId"`
	}

	return map[string]operation{
		"addresses": {
			roles: customerOnly,
			resolve: func(ctx context.Context, c call) (any, error) {
				return addresses.Addresses(ctx, c.userID)
			},
		},
		"registerAddress": {
			roles: customerOnly,
			resolve: withVariables(func(ctx context.Context, c call, in models.RegisterAddress) (any, error) {
				return addresses.RegisterAddress(ctx, c.userID, in)
			}),
		},
		"updateAddress": {
			roles: customerOnly,
			resolve: withVariables(func(ctx context.Context, c call, in models.UpdateAddress) (any, error) {
				return addresses.UpdateAddress(ctx, c.userID, in)
			}),
		},
		"deleteAddress": {
			roles: customerOnly,
			resolve: withVariables(func(ctx context.Context, c call, in addressIDVariables) (any, error) {
				return true, addresses.DeleteAddress(ctx, c.userID, in.AddressID)
			}),
		},
		"addressType": {
			resolve: withVariables(func(ctx context.Context, _ call, in addressTypeIDVariables) (any, error) {
				return addresses.AddressType(ctx, in.AddressTypeID)
			}),
		},
		"updateAddressType": {
			roles: customerOnly,
			resolve: withVariables(func(ctx context.Context, c call, in models.AddressType) (any, error) {
				return addresses.UpdateAddressType(ctx, c.userID, in)
			}),
		},

		"paymentMethods": {
			roles: customerOnly,
			resolve: func(ctx context.Context, c call) (any, error) {
				return payments.PaymentMethods(ctx, c.userID)
			},
		},
		"registerPaymentMethod": {
			roles: customerOnly,
			resolve: withVariables(func(ctx context.Context, c call, in models.RegisterPaymentMethod) (any, error) {
				return payments.RegisterPaymentMethod(ctx, c.userID, in)
			}),
		},
		"updatePaymentMethod": {
			roles: customerOnly,
			resolve: withVariables(func(ctx context.Context, c call, in models.UpdatePaymentMethod) (any, error) {
				return payments.UpdatePaymentMethod(ctx, c.userID, in)
			}),
		},
		"cardTypes": {
			resolve: func(ctx context.Context, _ call) (any, error) {
				return payments.CardTypes(ctx)
			},
		},

		"cartItems": {
			roles: customerOnly,
			resolve: func(ctx context.Context, c call) (any, error) {
				return carts.CartItems(ctx, c.userID)
			},
		},
		"addToCart": {
			roles: customerOnly,
			resolve: withVariables(func(ctx context.Context, c call, in models.CartLine) (any, error) {
				return carts.AddToCart(ctx, c.userID, in)
			}),
		},
		"updateCartItemQuantity": {
			roles: customerOnly,
			resolve: withVariables(func(ctx context.Context, c call, in models.CartLine) (any, error) {
				return carts.UpdateCartItemQuantity(ctx, c.userID, in)
			}),
		},
		"removeFromCart": {
			roles: customerOnly,
			resolve: withVariables(func(ctx context.Context, c call, in productIDVariables) (any, error) {
				return carts.RemoveFromCart(ctx, c.userID, in.ProductID)
			}),
		},
	}
}
