package db

import (
	"context"
	"log/slog"

	"workshop-booking/internal/pkg/config"
	"workshop-booking/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

func ConnectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	// Test the connection
	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, errs.Wrapf(err, "failed to ping redis at %s", cfg.Addr)
	}

	cleanup := func() {
		if err := client.Close(); err != nil {
			slog.Error("Error closing redis client", "error", err)
		}
	}

	return client, cleanup, nil
}
