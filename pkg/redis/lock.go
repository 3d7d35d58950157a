package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrLockNotHeld is returned when unlocking or refreshing a lock owned by someone else.
var ErrLockNotHeld = errors.New("lock was not held by this client")

// ErrLockTaken is returned when every acquisition attempt found the lock held.
var ErrLockTaken = errors.New("lock already held")

const unlockScript = `
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`

const refreshScript = `
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("PEXPIRE", KEYS[1], ARGV[2])
	else
		return 0
	end
`

// LockOptions represents options for distributed locking
type LockOptions struct {
	// TTL is the lock expiration time
	TTL time.Duration
	// RetryDelay is the delay between retry attempts
	RetryDelay time.Duration
	// MaxRetries is the maximum number of retry attempts
	MaxRetries int
	// RefreshInterval is the interval for refreshing the lock
	RefreshInterval time.Duration
	// LockNamespace is the namespace for organizing locks
	LockNamespace string
}

// NewLockOptions creates a new lock options with default values
func NewLockOptions() *LockOptions {
	return &LockOptions{
		TTL:             30 * time.Second,
		RetryDelay:      100 * time.Millisecond,
		MaxRetries:      10,
		RefreshInterval: 10 * time.Second,
		LockNamespace:   "",
	}
}

// Lock represents a distributed lock
type Lock struct {
	client *Client
	key    string
	value  string
	opts   *LockOptions
}

// NewLock creates a new distributed lock
func NewLock(client *Client, key string, opts *LockOptions) *Lock {
	if opts == nil {
		opts = NewLockOptions()
	}
	return &Lock{
		client: client,
		key:    key,
		value:  uuid.NewString(),
		opts:   opts,
	}
}

// NewScheduledTaskLock creates a lock for a scheduler that must run on a single replica.
// It makes a single acquisition attempt and is meant to be kept alive with AutoRefresh.
func NewScheduledTaskLock(client *Client, key string, ttl, refreshInterval time.Duration, namespace string) *Lock {
	return NewLock(client, key, &LockOptions{
		TTL:             ttl,
		MaxRetries:      0,
		RefreshInterval: refreshInterval,
		LockNamespace:   namespace,
	})
}

// buildLockKey constructs the full lock key using LockNamespace::lockKey format
func (l *Lock) buildLockKey() string {
	if l.opts.LockNamespace != "" {
		return l.opts.LockNamespace + "::" + l.key
	}
	return l.key
}

// Lock attempts to acquire the lock
func (l *Lock) Lock(ctx context.Context) error {
	fullKey := l.buildLockKey()
	for attempt := 0; attempt <= l.opts.MaxRetries; attempt++ {
		acquired, err := l.client.GetClient().SetNX(ctx, fullKey, l.value, l.opts.TTL).Result()
		if err != nil {
			return fmt.Errorf("failed to acquire lock: %w", err)
		}

		if acquired {
			registerLock(fullKey, true)
			return nil
		}

		if attempt == l.opts.MaxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.opts.RetryDelay):
		}
	}

	registerLock(fullKey, false)
	return fmt.Errorf("%w: %s after %d attempts", ErrLockTaken, fullKey, l.opts.MaxRetries+1)
}

// Unlock releases the lock
func (l *Lock) Unlock(ctx context.Context) error {
	fullKey := l.buildLockKey()
	result, err := l.client.GetClient().Eval(ctx, unlockScript, []string{fullKey}, l.value).Int64()
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}

	registerLock(fullKey, false)
	if result == 0 {
		return ErrLockNotHeld
	}
	return nil
}

// Refresh extends the lock's TTL
func (l *Lock) Refresh(ctx context.Context) error {
	fullKey := l.buildLockKey()
	result, err := l.client.GetClient().Eval(ctx, refreshScript, []string{fullKey}, l.value, l.opts.TTL.Milliseconds()).Int64()
	if err != nil {
		return fmt.Errorf("failed to refresh lock: %w", err)
	}

	if result == 0 {
		registerLock(fullKey, false)
		return ErrLockNotHeld
	}
	return nil
}

// IsLocked checks if the lock is currently held by this client
func (l *Lock) IsLocked(ctx context.Context) (bool, error) {
	value, err := l.client.Get(ctx, l.buildLockKey())
	if err != nil {
		return false, err
	}
	return value == l.value, nil
}

// AutoRefresh refreshes the lock every RefreshInterval until ctx ends or a refresh fails.
// The returned channel receives nil on cancellation, the refresh error otherwise.
// The lock is released on cancellation.
func (l *Lock) AutoRefresh(ctx context.Context) <-chan error {
	errChan := make(chan error, 1)

	interval := l.opts.RefreshInterval
	if interval <= 0 {
		interval = l.opts.TTL / 2
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				_ = l.Unlock(releaseCtx)
				cancel()
				errChan <- nil
				return
			case <-ticker.C:
				if err := l.Refresh(ctx); err != nil {
					if ctx.Err() != nil {
						continue
					}
					errChan <- err
					return
				}
			}
		}
	}()

	return errChan
}

var (
	lockStatusMu sync.RWMutex
	lockStatus   = map[string]bool{}
)

func registerLock(key string, held bool) {
	lockStatusMu.Lock()
	defer lockStatusMu.Unlock()
	lockStatus[key] = held
}

// GetLockStatus reports which locks this process tried to take and whether it holds them.
func GetLockStatus() map[string]bool {
	lockStatusMu.RLock()
	defer lockStatusMu.RUnlock()

	status := make(map[string]bool, len(lockStatus))
	for k, v := range lockStatus {
		status[k] = v
	}
	return status
}
