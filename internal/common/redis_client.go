package common

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"lostark-hub/partyfinder/internal/logging"
)

// NewRedisClient returns nil when addr is empty so callers can fall back to
// in-memory stores.
func NewRedisClient(addr, password string) *redis.Client {
	if addr == "" {
		logging.Info("[Redis] No address configured, using in-memory key store")
		return nil
	}

	logging.Info("[Redis] Initializing Redis client", "addr", addr)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// The pool keeps retrying on use.
		logging.Error("[Redis] Failed to ping Redis", "error", err)
		return client
	}

	logging.Info("[Redis] Successfully connected to Redis")
	return client
}
