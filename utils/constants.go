// File: utils/constants.go
package utils

import "time"

// NotificationCachePrefix is the prefix used for Redis notification content keys.
const NotificationCachePrefix = "notif:ctx:"

// HealthCheckInterval is how often the Redis health probe runs.
const HealthCheckInterval = 60 * time.Second

// Gin context keys set by the actor middleware.
const (
	ActorNameKey = "actorName"
	ActorRoleKey = "role"
)
