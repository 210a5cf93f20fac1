package models

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// MaxQuantity bounds ordered, carted and stocked quantities to what the
// INTEGER columns hold.
const MaxQuantity = math.MaxInt32

// ErrUnknownOrderStatus is returned for a status outside the state machine.
var ErrUnknownOrderStatus = errors.New("unknown order status")

// OrderStatus is a state of the order lifecycle.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// orderTransitions lists, per state, the states it may move to.
// DELIVERED and CANCELLED are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderProcessing, OrderShipped, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered},
	OrderDelivered:  nil,
	OrderCancelled:  nil,
}

// ParseOrderStatus validates s against the known states.
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := orderTransitions[status]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownOrderStatus, s)
	}
	return status, nil
}

// CanTransitionTo reports whether the order may move from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is owned by one customer. TotalAmount is computed once at placement
// from the item snapshots minus the discount and never recomputed.
type Order struct {
	OrderID           int64           `json:"orderId"`
	CustomerID        int64           `json:"customerId"`
	OrderDate         time.Time       `json:"orderDate"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	Status            OrderStatus     `json:"status"`
	ShippingAddressID int64           `json:"shippingAddressId"`
	PaymentMethodID   int64           `json:"paymentMethodId"`
	DiscountID        *int64          `json:"discountId,omitempty"`
	Items             []OrderItem     `json:"items,omitempty"`
}

// OrderItem is a snapshot of a product line at order time. UnitPrice is the
// product's base price when the order was placed, before any discount.
type OrderItem struct {
	OrderItemID int64           `json:"orderItemId"`
	OrderID     int64           `json:"orderId"`
	ProductID   int64           `json:"productId"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// LineTotal returns UnitPrice * Quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderLine is one requested product and quantity.
type OrderLine struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// PlaceOrderRequest is the input of the placeOrder operation. CustomerID is
// resolved from the caller's token, never from the payload.
type PlaceOrderRequest struct {
	CustomerID        int64       `json:"-"`
	Items             []OrderLine `json:"items"`
	DiscountCode      *string     `json:"discountCode,omitempty"`
	ShippingAddressID int64       `json:"shippingAddressId"`
	PaymentMethodID   int64       `json:"paymentMethodId"`
}

// UpdateOrderStatus is the input of the updateOrderStatus operation.
type UpdateOrderStatus struct {
	OrderID int64  `json:"orderId"`
	Status  string `json:"status"`
}
