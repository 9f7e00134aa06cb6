package database

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"appledger/internal/config"
	"appledger/internal/logger"
)

// InitRedis connects to Redis when REDIS_ADDR is set. It returns nil when
// Redis is not configured or unreachable; the service runs without it.
func InitRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Get().Warnw("redis connection failed, continuing without cache", "addr", cfg.RedisAddr, "error", err)
		_ = rdb.Close()
		return nil
	}

	logger.Get().Infow("redis connection established", "addr", cfg.RedisAddr)
	return rdb
}
