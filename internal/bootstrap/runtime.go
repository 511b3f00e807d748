package bootstrap

import (
	"fmt"

	"campusmarket/internal/cache"
	"campusmarket/internal/config"
	"campusmarket/internal/database"
	"campusmarket/internal/seed"
	"campusmarket/internal/storage"
	"campusmarket/internal/storage/gormstore"
	"campusmarket/internal/storage/memstore"

	"github.com/redis/go-redis/v9"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedDemoData bool
}

// OpenStorage builds the storage backend selected by cfg.StorageDriver.
func OpenStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.StorageDriver {
	case "memory":
		return memstore.New(), nil
	case "sqlite":
		db, err := database.ConnectSQLite(cfg)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection failed: %w", err)
		}
		return gormstore.New(db), nil
	case "postgres":
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		return gormstore.New(db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// InitRuntime opens storage and Redis and optionally seeds demo data.
func InitRuntime(cfg *config.Config, opts Options) (storage.Storage, *redis.Client, error) {
	store, err := OpenStorage(cfg)
	if err != nil {
		return nil, nil, err
	}

	// Redis is optional; a nil client means caching and rate limits are skipped.
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemoData {
		if err := seed.DemoData(store); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return store, r, nil
}
