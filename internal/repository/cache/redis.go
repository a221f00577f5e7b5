package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/careerbridge/careerbridge-backend/internal/config"
	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

// Redis implements Cache on a Redis client.
type Redis struct {
	rdb     *redis.Client
	timeout time.Duration
}

// NewRedis returns a Redis-backed cache whose calls are bounded by timeout.
func NewRedis(rdb *redis.Client, timeout time.Duration) *Redis {
	return &Redis{rdb: rdb, timeout: timeout}
}

func unavailable(err error) error {
	return fmt.Errorf("%w: redis: %v", model.ErrRemoteUnavailable, err)
}

func (r *Redis) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.rdb.Set(ctx, config.CacheKey.RevokedTokenKey(tokenID), 1, ttl).Err(); err != nil {
		return unavailable(err)
	}
	return nil
}

func (r *Redis) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	err := r.rdb.Get(ctx, config.CacheKey.RevokedTokenKey(tokenID)).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redis.Nil):
		return false, nil
	default:
		return false, unavailable(err)
	}
}

func (r *Redis) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	pipe := r.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, unavailable(err)
	}
	return incr.Val(), nil
}
