package http

import (
	"context"

	"github.com/MKhiriev/go-shop-keeper/models"
)

// catalogOperations covers products, categories, discounts and reviews.
// Reads are public.
func (h *Handler) catalogOperations() map[string]operation {
	products := h.services.ProductService
	discounts := h.services.DiscountService
	reviews := h.services.ReviewService

	type productsVariables struct {
		Filter models.ProductFilter `json:"filter"`
		Page   models.PageRequest   `json:"page"`
	}
	type productsByNameVariables struct {
		Name string             `json:"name"`
		Page models.PageRequest `json:"page"`
	}
	type reviewsVariables struct {
		ProductID int64              `json:"productId"`
		Page      models.PageRequest `json:"page"`
	}
	type discountIDVariables struct {
		DiscountID int64 `json:"discountId"`
	}
	type reviewIDVariables struct {
		ReviewID int64 `json:"reviewId"`
	}

	return map[string]operation{
		"products": {
			resolve: withVariables(func(ctx context.Context, _ call, in productsVariables) (any, error) {
				return products.Products(ctx, in.Filter, in.Page)
			}),
		},
		"productsByName": {
			resolve: withVariables(func(ctx context.Context, _ call, in productsByNameVariables) (any, error) {
				return products.ProductsByName(ctx, in.Name, in.Page)
			}),
		},
		"categories": {
			resolve: func(ctx context.Context, _ call) (any, error) {
				return products.Categories(ctx)
			},
		},
		"registerProduct": {
			roles: supplierOnly,
			resolve: withVariables(func(ctx context.Context, c call, in models.RegisterProduct) (any, error) {
				return products.RegisterProduct(ctx, c.userID, in)
			}),
		},
		"updateProduct": {
			roles: supplierOnly,
			resolve: withVariables(func(ctx context.Context, c call, in models.UpdateProduct) (any, error) {
				return products.UpdateProduct(ctx, c.userID, in)
			}),
		},
		"deleteProduct": {
			roles: supplierOnly,
			resolve: withVariables(func(ctx context.Context, c call, in productIDVariables) (any, error) {
				return true, products.DeleteProduct(ctx, c.userID, in.ProductID)
			}),
		},

		"discounts": {
			resolve: withVariables(func(ctx context.Context, _ call, in pageVariables) (any, error) {
				return discounts.Discounts(ctx, in.Page)
			}),
		},
		"discountsOnProduct": {
			resolve: withVariables(func(ctx context.Context, _ call, in productIDVariables) (any, error) {
				return discounts.DiscountsOnProduct(ctx, in.ProductID)
			}),
		},
		"registerDiscount": {
			roles: supplierOnly,
			resolve: withVariables(func(ctx context.Context, c call, in models.RegisterDiscount) (any, error) {
				return discounts.RegisterDiscount(ctx, c.userID, in)
			}),
		},
		"updateDiscount": {
			roles: supplierOnly,
			resolve: withVariables(func(ctx context.Context, c call, in models.UpdateDiscount) (any, error) {
				return discounts.UpdateDiscount(ctx, c.userID, in)
			}),
		},
		"deleteDiscount": {
			roles: supplierOnly,
			resolve: withVariables(func(ctx context.Context, c call, in discountIDVariables) (any, error) {
				return true, discounts.DeleteDiscount(ctx, c.userID, in.DiscountID)
			}),
		},

		"reviewsForProduct": {
			resolve: withVariables(func(ctx context.Context, _ call, in reviewsVariables) (any, error) {
				return reviews.ReviewsForProduct(ctx, in.ProductID, in.Page)
			}),
		},
		"registerReview": {
			roles: customerOnly,
			resolve: withVariables(func(ctx context.Context, c call, in models.RegisterReview) (any, error) {
				return reviews.RegisterReview(ctx, c.userID, in)
			}),
		},
		"updateReview": {
			roles: customerOnly,
			resolve: withVariables(func(ctx context.Context, c call, in models.UpdateReview) (any, error) {
				return reviews.UpdateReview(ctx, c.userID, in)
			}),
		},
		"deleteReview": {
			roles: customerOnly,
			resolve: withVariables(func(ctx context.Context, c call, in reviewIDVariables) (any, error) {
				return true, reviews.DeleteReview(ctx, c.userID, in.ReviewID)
			}),
		},
	}
}
