package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/civixa/civixa-backend/internal/config"
	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns a verified Redis client, or nil when no address is
// configured (the callers degrade gracefully without it).
func ConnectRedis(cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		slog.Info("redis not configured, cooldown and status cache disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	slog.Info("redis connected", "addr", cfg.RedisAddr)
	return client, nil
}
