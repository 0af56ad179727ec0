// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"campusporter/config"

	"github.com/go-redis/redis/v8"
)

// InitCache connects the cache client using the configured Redis DB.
// Unlike the other dependencies Redis is optional, so a failed ping is returned rather than fatal.
func InitCache() (*redis.Client, error) {
	if config.AppConfig.RedisAddr == "" {
		return nil, fmt.Errorf("redis cache disabled: REDIS_ADDR is empty")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis (Cache): %w", err)
	}
	return client, nil
}
