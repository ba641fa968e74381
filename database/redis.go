package database

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ConnectRedis returns nil when addr is empty or the server does not answer;
// callers treat a nil client as "cache disabled".
func ConnectRedis(ctx context.Context, addr string, log *zap.Logger) *redis.Client {
	if addr == "" {
		log.Info("REDIS_ADDR not set, stats cache disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("could not reach Redis, stats cache disabled", zap.String("addr", addr), zap.Error(err))
		rdb.Close()
		return nil
	}

	log.Info("connected to Redis", zap.String("addr", addr))
	return rdb
}
