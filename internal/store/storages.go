package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-shop-keeper/internal/config"
	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Storages groups every repository behind the shared connections.
type Storages struct {
	UserRepository          UserRepository
	ProfileRepository       ProfileRepository
	ProductRepository       ProductRepository
	DiscountRepository      DiscountRepository
	ReviewRepository        ReviewRepository
	OrderRepository         OrderRepository
	AddressRepository       AddressRepository
	PaymentMethodRepository PaymentMethodRepository
	CartRepository          CartRepository
	TokenDenylist           TokenDenylist

	db    *DB
	redis *redis.Client
}

// NewStorages connects to Postgres, applies migrations and, when an address
// is configured, connects the Redis token denylist.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		db.Close()
		return nil, err
	}

	storages := newStoragesFromDB(db, log)

	if cfg.Redis.Address != "" {
		client, redisErr := NewRedisClient(ctx, cfg.Redis, log)
		if redisErr != nil {
			db.Close()
			return nil, redisErr
		}
		storages.redis = client
		storages.TokenDenylist = NewRedisTokenDenylist(client)
	}

	return storages, nil
}

func newStoragesFromDB(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:          NewUserRepository(db, log),
		ProfileRepository:       NewProfileRepository(db, log),
		ProductRepository:       NewProductRepository(db, log),
		DiscountRepository:      NewDiscountRepository(db, log),
		ReviewRepository:        NewReviewRepository(db, log),
		OrderRepository:         NewOrderRepository(db, log),
		AddressRepository:       NewAddressRepository(db, log),
		PaymentMethodRepository: NewPaymentMethodRepository(db, log),
		CartRepository:          NewCartRepository(db, log),
		TokenDenylist:           NewNopTokenDenylist(),
		db:                      db,
	}
}

// Close releases the database pool and the Redis client.
func (s *Storages) Close() error {
	var errs []error
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing database: %w", err))
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing redis: %w", err))
		}
	}
	return errors.Join(errs...)
}
