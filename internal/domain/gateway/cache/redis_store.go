package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"weather-api/internal/domain/model"
	"weather-api/pkg/redis"
)

// redisStore implements Store over pkg/redis
type redisStore struct {
	cache *redis.Cache
}

// NewRedisStore creates a Store backed by the given redis client, keys are used verbatim
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{
		cache: redis.NewCache(client, redis.NewCacheOptions()),
	}
}

func (s *redisStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	err := s.cache.Get(ctx, key, dest)
	if errors.Is(err, redis.ErrCacheMiss) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	return true, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if err := s.cache.SetWithTTL(ctx, key, value, ttl); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// RedisHealthGateway adapts the redis health checker to the health model
type RedisHealthGateway struct {
	checker *redis.HealthChecker
}

func NewRedisHealthGateway(client *redis.Client) *RedisHealthGateway {
	return &RedisHealthGateway{checker: redis.NewHealthChecker(client)}
}

func (gateway *RedisHealthGateway) Health(ctx context.Context) model.ComponentHealthStatus {
	check := gateway.checker.HealthCheck(ctx)

	details := make(map[string]string, len(check.Details)+len(check.LockStatus))
	for k, v := range check.Details {
		details[k] = v
	}
	for lock, held := range check.LockStatus {
		details["lock_"+lock] = strconv.FormatBool(held)
	}

	status := model.StatusDown
	if check.Status == redis.StatusUp {
		status = model.StatusUp
	}

	return model.ComponentHealthStatus{
		Status:  status,
		Details: details,
	}
}
