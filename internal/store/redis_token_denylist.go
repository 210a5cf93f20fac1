package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-shop-keeper/internal/config"
	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/redis/go-redis/v9"
)

const revokedTokenKeyPrefix = "revoked-token:"

// redisTokenDenylist keeps one key per revoked token id. Keys expire
// together with the token, so the set never outgrows the live tokens.
type redisTokenDenylist struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisClient(ctx context.Context, cfg config.Redis, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisClient").Msg("error connecting redis (ping)")
		return nil, fmt.Errorf("error connecting redis: %w", err)
	}
	log.Info().Str("func", "NewRedisClient").Msg("connected to redis successfully")

	return client, nil
}

func NewRedisTokenDenylist(client *redis.Client) TokenDenylist {
	return &redisTokenDenylist{client: client, now: time.Now}
}

// Revoke stores tokenID until expiresAt. Already expired tokens are
// ignored.
func (d *redisTokenDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(d.now())
	if ttl <= 0 {
		return nil
	}

	if err := d.client.Set(ctx, revokedTokenKeyPrefix+tokenID, 1, ttl).Err(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "redisTokenDenylist.Revoke").Msg("failed to revoke token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (d *redisTokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, revokedTokenKeyPrefix+tokenID).Result()
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "redisTokenDenylist.IsRevoked").Msg("failed to check token")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return n > 0, nil
}

// nopTokenDenylist is used when no Redis is configured: nothing is ever
// revoked.
type nopTokenDenylist struct{}

func NewNopTokenDenylist() TokenDenylist {
	return nopTokenDenylist{}
}

func (nopTokenDenylist) Revoke(context.Context, string, time.Time) error { return nil }

func (nopTokenDenylist) IsRevoked(context.Context, string) (bool, error) { return false, nil }
