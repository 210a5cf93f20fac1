package models

import "github.com/shopspring/decimal"

// CartItem is a line of a customer's shopping cart, joined with the
// product's current name and price.
type CartItem struct {
	CartItemID  int64           `json:"cartItemId"`
	CartID      int64           `json:"cartId"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
}

// CartLine is the input of addToCart and updateCartItemQuantity.
type CartLine struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}
