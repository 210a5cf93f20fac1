package http

import (
	"context"

	"github.com/MKhiriev/go-shop-keeper/models"
)

type orderIDVariables struct {
	OrderID int64 `json:"orderId"`
}

func (h *Handler) orderOperations() map[string]operation {
	orders := h.services.OrderService

	return map[string]operation{
		"placeOrder": {
			roles: customerOnly,
			resolve: withVariables(func(ctx context.Context, c call, in models.PlaceOrderRequest) (any, error) {
				return orders.PlaceOrder(ctx, c.userID, in)
			}),
		},
		"cancelOrder": {
			roles: customerOnly,
			resolve: withVariables(func(ctx context.Context, c call, in orderIDVariables) (any, error) {
				return orders.CancelOrder(ctx, c.userID, in.OrderID)
			}),
		},
		"orders": {
			roles: customerOnly,
			resolve: withVariables(func(ctx context.Context, c call, in pageVariables) (any, error) {
				return orders.Orders(ctx, c.userID, in.Page)
			}),
		},
		"order": {
			roles: customerOnly,
			resolve: withVariables(func(ctx context.Context, c call, in orderIDVariables) (any, error) {
				return orders.Order(ctx, c.userID, in.OrderID)
			}),
		},
		"orderItems": {
			roles: customerOnly,
			resolve: withVariables(func(ctx context.Context, c call, in orderIDVariables) (any, error) {
				order, err := orders.Order(ctx, c.userID, in.OrderID)
				if err != nil {
					return nil, err
				}
				if order.Items == nil {
					return []models.OrderItem{}, nil
				}
				return order.Items, nil
			}),
		},
		"updateOrderStatus": {
			roles: supplierOnly,
			resolve: withVariables(func(ctx context.Context, c call, in models.UpdateOrderStatus) (any, error) {
				return orders.UpdateOrderStatus(ctx, c.userID, in)
			}),
		},
	}
}
