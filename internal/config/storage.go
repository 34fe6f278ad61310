package config

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/quizzone/internal/cache"
	"github.com/SAP-F-2025/quizzone/internal/repositories"
	"github.com/SAP-F-2025/quizzone/internal/repositories/memory"
	"github.com/SAP-F-2025/quizzone/internal/repositories/postgres"
	"github.com/SAP-F-2025/quizzone/internal/repositories/sqlite"
	"github.com/SAP-F-2025/quizzone/pkg"
)

// Storage backends
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// CreateKeyValueStore opens the configured storage backend
func (c *Config) CreateKeyValueStore(ctx context.Context, logger *slog.Logger) (repositories.KeyValueStore, error) {
	switch c.StorageBackend {
	case StorageMemory:
		logger.Warn("Using in-memory storage, progress is lost on exit")
		return memory.NewKeyValueMemory(), nil

	case StorageSQLite:
		db, err := pkg.OpenSQLite(c.SQLitePath)
		if err != nil {
			return nil, err
		}
		store, err := sqlite.NewKeyValueSQLite(ctx, db)
		if err != nil {
			db.Close()
			return nil, err
		}
		logger.Info("Using SQLite storage", "path", c.SQLitePath)
		return store, nil

	case StorageRedis:
		client, err := pkg.NewRedisClient(c.RedisURL)
		if err != nil {
			return nil, err
		}
		logger.Info("Using Redis storage", "prefix", cache.DefaultKeyPrefix)
		return cache.NewRedisStore(client, cache.DefaultKeyPrefix, 0, logger), nil

	case StoragePostgres:
		db, err := pkg.InitDatabase(c.DatabaseURL, c.Environment)
		if err != nil {
			return nil, err
		}
		store, err := postgres.NewKeyValuePostgreSQL(db)
		if err != nil {
			return nil, err
		}
		logger.Info("Using PostgreSQL storage")
		return store, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
}

// CreateProgressStore opens the backend and binds the progress record key to it
func (c *Config) CreateProgressStore(ctx context.Context, logger *slog.Logger) (repositories.ProgressRepository, repositories.KeyValueStore, error) {
	store, err := c.CreateKeyValueStore(ctx, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s storage: %w", c.StorageBackend, err)
	}
	return repositories.NewProgressRepository(store, c.ProgressKey), store, nil
}
