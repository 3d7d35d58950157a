package api

import (
	"context"

	"weather-api/internal/domain/entity"
)

// SelfGateway calls this service's own public endpoints
type SelfGateway interface {
	// WarmWeather requests GET /weather for the city so the response lands in the cache.
	// It returns the HTTP status received.
	WarmWeather(ctx context.Context, city entity.City, dayOffset int) (int, error)
}
