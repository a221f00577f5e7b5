package database

import (
	"context"
	"fmt"

	"github.com/careerbridge/careerbridge-backend/internal/config"
	"github.com/careerbridge/careerbridge-backend/internal/repository"
	"github.com/careerbridge/careerbridge-backend/internal/repository/cache"
	"github.com/careerbridge/careerbridge-backend/internal/repository/memory"
	"github.com/careerbridge/careerbridge-backend/internal/repository/mongodb"
	"github.com/careerbridge/careerbridge-backend/internal/repository/postgres"
	"github.com/rs/zerolog"
)

// Backend is the storage selected by configuration.
type Backend struct {
	Stores repository.Stores
	Cache  cache.Cache
	// Checks ping every connected service, keyed by name.
	Checks map[string]func(ctx context.Context) error

	closers []func()
}

// Close releases every connection in reverse order of opening.
func (b *Backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// Open connects the store backend named by STORAGE_BACKEND and the cache.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Backend, error) {
	b := &Backend{Checks: make(map[string]func(ctx context.Context) error)}

	switch cfg.StorageBackend {
	case config.StoragePostgres:
		pool, err := NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, pool.Close)
		b.Checks["postgres"] = pool.Ping
		b.Stores = postgres.New(pool, cfg.StoreTimeout).Stores()

	case config.StorageMongo:
		db, err := NewMongoDatabase(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() { _ = db.Client().Disconnect(context.Background()) })
		b.Checks["mongo"] = func(ctx context.Context) error { return db.Client().Ping(ctx, nil) }

		store := mongodb.New(db, cfg.StoreTimeout)
		if err := store.EnsureIndexes(ctx); err != nil {
			b.Close()
			return nil, fmt.Errorf("ensure mongo indexes: %w", err)
		}
		b.Stores = store.Stores()

	case config.StorageMemory:
		log.Warn().Msg("Using in-memory storage, data is lost on restart")
		b.Stores = memory.New().Stores()

	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	rdb, err := NewRedisClient(ctx, cfg, log)
	if err != nil {
		b.Close()
		return nil, err
	}
	if rdb == nil {
		b.Cache = cache.NewMemory()
		return b, nil
	}
	b.closers = append(b.closers, func() { _ = rdb.Close() })
	b.Checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	b.Cache = cache.NewRedis(rdb, cfg.StoreTimeout)
	return b, nil
}
