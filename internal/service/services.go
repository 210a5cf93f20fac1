package service

import (
	"github.com/MKhiriev/go-shop-keeper/internal/auth"
	"github.com/MKhiriev/go-shop-keeper/internal/config"
	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/mail"
	"github.com/MKhiriev/go-shop-keeper/internal/metrics"
	"github.com/MKhiriev/go-shop-keeper/internal/store"
	"github.com/MKhiriev/go-shop-keeper/internal/utils"
	"github.com/MKhiriev/go-shop-keeper/internal/validators"
	"github.com/MKhiriev/go-shop-keeper/models"
)

type Services struct {
	AuthService     AuthService
	ProfileService  ProfileService
	ProductService  ProductService
	DiscountService DiscountService
	ReviewService   ReviewService
	OrderService    OrderService
	AddressService  AddressService
	PaymentService  PaymentService
	CartService     CartService
	AppInfoService  AppInfoService
}

// NewServices builds every service on top of storages. build carries the
// linker-injected metadata reported by the version endpoint.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, build models.AppBuildInfo, mailer mail.Mailer, m *metrics.Metrics, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, err
	}

	validator := validators.NewShopValidator()
	hasher := auth.NewPasswordHasher(cfg.App.PasswordHashKey)
	tokens := auth.NewTokenService(
		cfg.App.TokenSignKey,
		cfg.App.TokenIssuer,
		cfg.App.TokenDuration,
		cfg.App.EmailTokenDuration,
		utils.NewUUIDGenerator(),
	)

	return &Services{
		AuthService:     NewAuthService(storages.UserRepository, storages.TokenDenylist, hasher, tokens, mailer, validator, cfg.App.BaseURL, logger),
		ProfileService:  NewProfileService(storages.ProfileRepository, validator, logger),
		ProductService:  NewProductService(storages.ProductRepository, storages.ProfileRepository, validator, logger),
		DiscountService: NewDiscountService(storages.DiscountRepository, storages.ProfileRepository, validator, logger),
		ReviewService:   NewReviewService(storages.ReviewRepository, storages.ProfileRepository, validator, logger),
		OrderService:    NewOrderService(storages.OrderRepository, storages.ProfileRepository, validator, m, logger),
		AddressService:  NewAddressService(storages.AddressRepository, storages.ProfileRepository, validator, logger),
		PaymentService:  NewPaymentService(storages.PaymentMethodRepository, storages.ProfileRepository, validator, logger),
		CartService:     NewCartService(storages.CartRepository, storages.ProfileRepository, validator, logger),
		AppInfoService:  appInfo,
	}, nil
}
