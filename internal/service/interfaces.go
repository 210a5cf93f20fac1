package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-shop-keeper/models"
)

// AuthService owns accounts, credentials and bearer tokens.
type AuthService interface {
	Register(ctx context.Context, user models.RegisterUser) (models.AuthUser, error)
	Login(ctx context.Context, user models.LoginUser) (models.AuthUser, error)
	Authenticate(ctx context.Context, tokenString string) (models.Claims, error)
	Refresh(ctx context.Context, tokenString string) (models.Token, error)
	Logout(ctx context.Context, claims models.Claims) error
	ChangePassword(ctx context.Context, userID int64, change models.ChangePassword) error
	Me(ctx context.Context, userID int64) (models.User, error)
	SendEmailVerification(ctx context.Context, userID int64) error
	VerifyEmail(ctx context.Context, tokenString string) error
}

type ProfileService interface {
	RegisterCustomer(ctx context.Context, userID int64, customer models.RegisterCustomer) (models.Customer, error)
	CustomerProfile(ctx context.Context, userID int64) (models.Customer, error)
	RegisterSupplier(ctx context.Context, userID int64, supplier models.RegisterSupplier) (models.Supplier, error)
	SupplierProfile(ctx context.Context, userID int64) (models.Supplier, error)
}

type ProductService interface {
	Products(ctx context.Context, filter models.ProductFilter, page models.PageRequest) (models.Page[models.Product], error)
	ProductsByName(ctx context.Context, name string, page models.PageRequest) (models.Page[models.Product], error)
	Categories(ctx context.Context) ([]models.Category, error)
	RegisterProduct(ctx context.Context, userID int64, product models.RegisterProduct) (models.Product, error)
	UpdateProduct(ctx context.Context, userID int64, update models.UpdateProduct) (models.Product, error)
	DeleteProduct(ctx context.Context, userID, productID int64) error
}

type DiscountService interface {
	Discounts(ctx context.Context, page models.PageRequest) (models.Page[models.Discount], error)
	DiscountsOnProduct(ctx context.Context, productID int64) ([]models.Discount, error)
	RegisterDiscount(ctx context.Context, userID int64, discount models.RegisterDiscount) (models.Discount, error)
	UpdateDiscount(ctx context.Context, userID int64, update models.UpdateDiscount) (models.Discount, error)
	DeleteDiscount(ctx context.Context, userID, discountID int64) error
}

type ReviewService interface {
	ReviewsForProduct(ctx context.Context, productID int64, page models.PageRequest) (models.Page[models.Review], error)
	RegisterReview(ctx context.Context, userID int64, review models.RegisterReview) (models.Review, error)
	UpdateReview(ctx context.Context, userID int64, update models.UpdateReview) (models.Review, error)
	DeleteReview(ctx context.Context, userID, reviewID int64) error
}

// OrderService places and tracks orders. Customers place and cancel their
// own orders; suppliers move orders through the fulfilment states.
type OrderService interface {
	PlaceOrder(ctx context.Context, userID int64, request models.PlaceOrderRequest) (models.Order, error)
	CancelOrder(ctx context.Context, userID, orderID int64) (models.Order, error)
	UpdateOrderStatus(ctx context.Context, userID int64, update models.UpdateOrderStatus) (models.Order, error)
	Orders(ctx context.Context, userID int64, page models.PageRequest) (models.Page[models.Order], error)
	Order(ctx context.Context, userID, orderID int64) (models.Order, error)
}

type AddressService interface {
	Addresses(ctx context.Context, userID int64) ([]models.Address, error)
	RegisterAddress(ctx context.Context, userID int64, address models.RegisterAddress) (models.Address, error)
	UpdateAddress(ctx context.Context, userID int64, update models.UpdateAddress) (models.Address, error)
	DeleteAddress(ctx context.Context, userID, addressID int64) error
	AddressType(ctx context.Context, addressTypeID int64) (models.AddressType, error)
	UpdateAddressType(ctx context.Context, userID int64, addressType models.AddressType) (models.AddressType, error)
}

type PaymentService interface {
	PaymentMethods(ctx context.Context, userID int64) ([]models.PaymentMethod, error)
	RegisterPaymentMethod(ctx context.Context, userID int64, method models.RegisterPaymentMethod) (models.PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, userID int64, update models.UpdatePaymentMethod) (models.PaymentMethod, error)
	CardTypes(ctx context.Context) ([]models.CardType, error)
}

type CartService interface {
	CartItems(ctx context.Context, userID int64) ([]models.CartItem, error)
	AddToCart(ctx context.Context, userID int64, line models.CartLine) ([]models.CartItem, error)
	UpdateCartItemQuantity(ctx context.Context, userID int64, line models.CartLine) ([]models.CartItem, error)
	RemoveFromCart(ctx context.Context, userID, productID int64) ([]models.CartItem, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// PasswordHasher derives and checks stored credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// TokenService signs and verifies bearer tokens.
type TokenService interface {
	Issue(userID int64, role models.Role, ttl time.Duration) (models.Token, error)
	Verify(tokenString string) (models.Claims, error)
	Refresh(tokenString string) (models.Token, error)
	IssueEmailVerification(userID int64, role models.Role) (models.Token, error)
	VerifyEmailVerification(tokenString string) (models.Claims, error)
	TTL() time.Duration
}
