package http

import (
	"math"
	"time"
)

// BackoffConfig controls exponential backoff between retries.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// NewBackoffConfig returns a policy retrying maxRetries times starting at 200ms, capped at 2s.
func NewBackoffConfig(maxRetries int) *BackoffConfig {
	return &BackoffConfig{
		MaxRetries:      maxRetries,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     2 * time.Second,
	}
}

func (b *BackoffConfig) maxRetries() int {
	if b == nil || b.MaxRetries < 0 {
		return 0
	}
	return b.MaxRetries
}

// delay returns the wait before retry number attempt+1
func (b *BackoffConfig) delay(attempt int) time.Duration {
	initial := b.InitialInterval
	if initial <= 0 {
		initial = 100 * time.Millisecond
	}

	d := initial * time.Duration(math.Pow(2, float64(attempt)))
	if b.MaxInterval > 0 && d > b.MaxInterval {
		return b.MaxInterval
	}
	return d
}
