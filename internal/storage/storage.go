package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/warungmanto/storefront/internal/config"
)

// Storage is a string key/value store with browser localStorage semantics.
// GetItem reports ok=false for a missing key; RemoveItem of a missing key is not an error.
type Storage interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	Close() error
}

// Open builds the backend selected by cfg.Driver
func Open(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (Storage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Driver {
	case config.StorageMemory, "":
		return NewMemoryStorage(), nil
	case config.StorageFile:
		return NewFileStorage(cfg.FileDir, logger)
	case config.StorageRedis:
		return NewRedisStorage(ctx, cfg.RedisURL, logger)
	case config.StoragePostgres:
		db, err := NewPostgresConnection(cfg.Database)
		if err != nil {
			return nil, err
		}
		return NewSQLStorage(ctx, db, DialectPostgres, logger)
	case config.StorageSQLite:
		db, err := NewSQLiteConnection(cfg.SQLite)
		if err != nil {
			return nil, err
		}
		return NewSQLStorage(ctx, db, DialectSQLite, logger)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
