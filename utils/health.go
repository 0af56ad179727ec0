package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Redis     *bool     `json:"redis,omitempty"` // nil when the cache is disabled
	Gemini    bool      `json:"gemini"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

func setHealth(h HealthStatus) {
	mu.Lock()
	currentHealth = h
	mu.Unlock()
}

// StartHealthMonitor records an initial snapshot and then re-checks Redis every interval
// until ctx is done. redisClient may be nil.
func StartHealthMonitor(ctx context.Context, redisClient *redis.Client, geminiEnabled bool, interval time.Duration) {
	check := func() {
		h := HealthStatus{Gemini: geminiEnabled, CheckedAt: time.Now()}
		if redisClient != nil {
			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			ok := redisClient.Ping(pingCtx).Err() == nil
			cancel()
			h.Redis = &ok
		}
		setHealth(h)
	}
	check()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				check()
			}
		}
	}()
}
