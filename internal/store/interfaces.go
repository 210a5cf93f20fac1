package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-shop-keeper/models"
)

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error
	SetEmailVerified(ctx context.Context, userID int64) error
}

// ProfileRepository stores the customer and supplier profiles attached 1:1
// to users.
type ProfileRepository interface {
	CreateCustomer(ctx context.Context, customer models.Customer) (models.Customer, error)
	FindCustomerByUserID(ctx context.Context, userID int64) (models.Customer, error)
	CreateSupplier(ctx context.Context, supplier models.Supplier) (models.Supplier, error)
	FindSupplierByUserID(ctx context.Context, userID int64) (models.Supplier, error)
}

// ProductRepository stores the catalog. Mutations take the caller's
// supplier id and fail with [ErrNotOwner] on somebody else's product.
type ProductRepository interface {
	ListProducts(ctx context.Context, filter models.ProductFilter, page models.PageRequest) (models.Page[models.Product], error)
	SearchProducts(ctx context.Context, name string, page models.PageRequest) (models.Page[models.Product], error)
	FindProduct(ctx context.Context, productID int64) (models.Product, error)
	CreateProduct(ctx context.Context, product models.Product) (models.Product, error)
	UpdateProduct(ctx context.Context, supplierID int64, update models.UpdateProduct) (models.Product, error)
	DeleteProduct(ctx context.Context, supplierID, productID int64) error
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// DiscountRepository stores discounts. A supplier owns a discount through
// its product.
type DiscountRepository interface {
	ListDiscounts(ctx context.Context, page models.PageRequest) (models.Page[models.Discount], error)
	ListDiscountsOnProduct(ctx context.Context, productID int64) ([]models.Discount, error)
	CreateDiscount(ctx context.Context, supplierID int64, discount models.RegisterDiscount) (models.Discount, error)
	UpdateDiscount(ctx context.Context, supplierID int64, update models.UpdateDiscount) (models.Discount, error)
	DeleteDiscount(ctx context.Context, supplierID, discountID int64) error
}

type ReviewRepository interface {
	ListReviewsForProduct(ctx context.Context, productID int64, page models.PageRequest) (models.Page[models.Review], error)
	HasOrderedProduct(ctx context.Context, customerID, productID int64) (bool, error)
	CreateReview(ctx context.Context, review models.Review) (models.Review, error)
	UpdateReview(ctx context.Context, customerID int64, update models.UpdateReview) (models.Review, error)
	DeleteReview(ctx context.Context, customerID, reviewID int64) error
}

// OrderRepository runs the order workflow. Every mutation is a single
// transaction.
type OrderRepository interface {
	PlaceOrder(ctx context.Context, request models.PlaceOrderRequest) (models.Order, error)
	CancelOrder(ctx context.Context, customerID, orderID int64) (models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) (models.Order, error)
	ListOrders(ctx context.Context, customerID int64, page models.PageRequest) (models.Page[models.Order], error)
	FindOrder(ctx context.Context, customerID, orderID int64) (models.Order, error)
}

// AddressRepository keeps at most one default address per customer.
type AddressRepository interface {
	ListAddresses(ctx context.Context, userID int64) ([]models.Address, error)
	CreateAddress(ctx context.Context, customerID int64, address models.RegisterAddress) (models.Address, error)
	UpdateAddress(ctx context.Context, customerID int64, update models.UpdateAddress) (models.Address, error)
	DeleteAddress(ctx context.Context, customerID, addressID int64) error
	FindAddressType(ctx context.Context, addressTypeID int64) (models.AddressType, error)
	RenameAddressType(ctx context.Context, customerID int64, addressType models.AddressType) (models.AddressType, error)
}

// PaymentMethodRepository keeps at most one default payment method per
// customer.
type PaymentMethodRepository interface {
	ListPaymentMethods(ctx context.Context, customerID int64) ([]models.PaymentMethod, error)
	FindPaymentMethod(ctx context.Context, customerID, paymentMethodID int64) (models.PaymentMethod, error)
	CreatePaymentMethod(ctx context.Context, method models.PaymentMethod) (models.PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, method models.PaymentMethod) (models.PaymentMethod, error)
	FindCardType(ctx context.Context, cardTypeID int64) (models.CardType, error)
	ListCardTypes(ctx context.Context) ([]models.CardType, error)
}

type CartRepository interface {
	ListCartItems(ctx context.Context, customerID int64) ([]models.CartItem, error)
	AddToCart(ctx context.Context, customerID int64, line models.CartLine) (int64, error)
	UpdateCartItemQuantity(ctx context.Context, customerID int64, line models.CartLine) error
	RemoveFromCart(ctx context.Context, customerID, productID int64) error
}

// TokenDenylist remembers revoked token ids until the tokens expire.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
