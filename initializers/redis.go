package initializers

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var Redis *redis.Client

// ConnectToRedis is non-fatal: the relay, rate limiter and city list all
// degrade to best-effort behavior when redis is unavailable.
func ConnectToRedis() {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	rdb := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		Log.Warn("Redis unavailable, realtime relay and rate limiting degraded", zap.Error(err))
	} else {
		Log.Info("Redis connected", zap.String("addr", os.Getenv("REDIS_ADDR")))
	}

	Redis = rdb
}
