package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jwebster45206/animus-mundi/internal/config"
	"github.com/jwebster45206/animus-mundi/pkg/storage"
)

// Open returns the save backend selected by cfg.StorageBackend
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		logger.Warn("Using in-memory storage; progress will not survive a restart")
		return storage.NewMockStorage(), nil

	case config.BackendRedis:
		rs, err := NewRedisStorage(cfg.RedisURL, logger)
		if err != nil {
			return nil, err
		}
		if err := rs.WaitForConnection(ctx, 5, time.Second); err != nil {
			_ = rs.Close()
			return nil, err
		}
		return rs, nil

	case config.BackendSQLite:
		return OpenSQLite(cfg.SQLitePath, logger)

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
