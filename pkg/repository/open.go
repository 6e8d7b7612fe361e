package repository

import (
	"context"
	"fmt"

	"github.com/frizzly/api/pkg/config"
	"go.uber.org/zap"
)

const (
	DriverMongo  = "mongo"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Open connects the driver selected by cfg.Store.Driver. On failure the
// returned store is nil so callers can keep serving in degraded mode.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (DocumentStore, error) {
	switch cfg.Store.Driver {
	case DriverMongo, "":
		mongoCfg, path, err := ResolveMongoConfig(cfg.MongoDB, CredentialSearchPaths(cfg.MongoDB.CredentialsFile))
		if err != nil {
			return nil, err
		}
		if path != "" {
			logger.Info("Loaded store credentials", zap.String("path", path))
		}

		store, err := NewMongoStore(ctx, &mongoCfg, cfg.Store.ConnectTimeout)
		if err != nil {
			return nil, err
		}
		return store, nil

	case DriverRedis:
		store := NewRedisStore(&cfg.Redis)
		pingCtx, cancel := context.WithTimeout(ctx, cfg.Store.ConnectTimeout)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			_ = store.Close(ctx)
			return nil, fmt.Errorf("redis: ping: %w", err)
		}
		return store, nil

	case DriverMemory:
		logger.Warn("Using in-memory document store; data is lost on restart")
		return NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
