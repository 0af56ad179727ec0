// File: services/intelligence/contextStore.go
package intelligence

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"campusporter/models"
	"campusporter/services/notification"
	"campusporter/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ContentCache stores generated copy so a repeated transition does not call the model again.
type ContentCache interface {
	Get(ctx context.Context, key string) (*models.NotificationContent, error)
	Set(ctx context.Context, key string, content models.NotificationContent) error
}

type RedisContentCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContentCache(client *redis.Client, ttl time.Duration) *RedisContentCache {
	return &RedisContentCache{client: client, ttl: ttl}
}

// Get returns nil, nil on a miss.
func (s *RedisContentCache) Get(ctx context.Context, key string) (*models.NotificationContent, error) {
	data, err := s.client.Get(ctx, utils.NotificationCachePrefix+key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var content models.NotificationContent
	if err := json.Unmarshal([]byte(data), &content); err != nil {
		return nil, err
	}
	return &content, nil
}

func (s *RedisContentCache) Set(ctx context.Context, key string, content models.NotificationContent) error {
	b, err := json.Marshal(content)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, utils.NotificationCachePrefix+key, b, s.ttl).Err()
}

// CachedGenerator is a read-through cache in front of another generator. Cache failures
// are logged and bypassed; generator failures are never cached.
type CachedGenerator struct {
	next   notification.TextGenerator
	cache  ContentCache
	logger *zap.Logger
}

func NewCachedGenerator(next notification.TextGenerator, cache ContentCache, logger *zap.Logger) *CachedGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedGenerator{next: next, cache: cache, logger: logger}
}

func (g *CachedGenerator) Generate(ctx context.Context, in models.NotificationInput) (models.NotificationContent, error) {
	key := cacheKey(in)
	if cached, err := g.cache.Get(ctx, key); err != nil {
		g.logger.Warn("notification cache read failed", zap.String("key", key), zap.Error(err))
	} else if cached != nil {
		return *cached, nil
	}

	content, err := g.next.Generate(ctx, in)
	if err != nil {
		return content, err
	}
	if err := g.cache.Set(ctx, key, content); err != nil {
		g.logger.Warn("notification cache write failed", zap.String("key", key), zap.Error(err))
	}
	return content, nil
}

// cacheKey covers every input field that can change the generated copy.
func cacheKey(in models.NotificationInput) string {
	return strings.Join([]string{
		in.RequestID,
		string(in.Status),
		in.PorterName,
		in.ETA,
	}, ":")
}
