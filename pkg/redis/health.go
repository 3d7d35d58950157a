package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// RedisHealthCheck represents the health check response for Redis
type RedisHealthCheck struct {
	Status     HealthStatus      `json:"status"`
	Details    map[string]string `json:"details"`
	LockStatus map[string]bool   `json:"lock_status,omitempty"`
}

// HealthChecker provides Redis health checking functionality
type HealthChecker struct {
	client  *Client
	timeout time.Duration
}

// NewHealthChecker creates a new Redis health checker
func NewHealthChecker(client *Client) *HealthChecker {
	return &HealthChecker{
		client:  client,
		timeout: 3 * time.Second,
	}
}

// HealthCheck pings the server and round-trips a probe key
func (h *HealthChecker) HealthCheck(ctx context.Context) RedisHealthCheck {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	err := h.testPing(ctx)
	if err == nil {
		err = h.testBasicOperations(ctx)
	}

	stats := h.client.Stats()
	details := map[string]string{
		"address":     h.client.Addr(),
		"latency":     time.Since(start).String(),
		"total_conns": strconv.FormatUint(uint64(stats.TotalConns), 10),
		"idle_conns":  strconv.FormatUint(uint64(stats.IdleConns), 10),
	}

	status := StatusUp
	if err != nil {
		status = StatusDown
		details["error"] = err.Error()
	}

	return RedisHealthCheck{
		Status:     status,
		Details:    details,
		LockStatus: GetLockStatus(),
	}
}

func (h *HealthChecker) testPing(ctx context.Context) error {
	if err := h.client.Ping(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}

func (h *HealthChecker) testBasicOperations(ctx context.Context) error {
	testKey := "health_check_test"
	testValue := strconv.FormatInt(time.Now().UnixNano(), 10)

	if err := h.client.Set(ctx, testKey, testValue, time.Minute); err != nil {
		return fmt.Errorf("set operation failed: %w", err)
	}

	value, err := h.client.Get(ctx, testKey)
	if err != nil {
		return fmt.Errorf("get operation failed: %w", err)
	}
	if value != testValue {
		return fmt.Errorf("value mismatch: expected %s, got %s", testValue, value)
	}

	if err := h.client.Delete(ctx, testKey); err != nil {
		return fmt.Errorf("delete operation failed: %w", err)
	}
	return nil
}
