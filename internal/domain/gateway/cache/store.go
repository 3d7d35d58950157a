package cache

import (
	"context"
	"time"

	"weather-api/internal/domain/model"
)

// Store is the shared key/value cache with store-managed expiry.
// Values are JSON documents; the last write to a key wins.
type Store interface {
	// Get decodes the value under key into dest. found is false on a miss or after expiry.
	Get(ctx context.Context, key string, dest any) (found bool, err error)

	// Set stores value under key for ttl, overwriting any previous value
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// HealthGateway reports the cache store health
type HealthGateway interface {
	Health(ctx context.Context) model.ComponentHealthStatus
}
