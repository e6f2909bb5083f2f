package bootstrap

import (
	"context"
	"log/slog"

	"workshop-booking/internal/infra/cache"
	"workshop-booking/internal/infra/db"
	"workshop-booking/internal/pkg/config"
	"workshop-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewOverrideCache,
	),
)

// NewOverrideCache keeps local creation times in redis when REDIS_ADDR is set,
// otherwise in process memory.
func NewOverrideCache(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.OverrideCache, error) {
	if !cfg.Redis.Enabled() {
		logger.Info("REDIS_ADDR not set, keeping creation overrides in memory")
		return cache.NewMemoryOverrideCache(), nil
	}

	client, cleanup, err := db.ConnectRedis(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	logger.Info("Redis override cache connected", "addr", cfg.Redis.Addr)
	return cache.NewRedisOverrideCache(client, cfg.Redis.KeyPrefix, cfg.Redis.OverrideTTL), nil
}
