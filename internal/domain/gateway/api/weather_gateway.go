package api

import (
	"context"

	"weather-api/internal/domain/model/external"
)

// ForecastQuery selects the forecast of one point
type ForecastQuery struct {
	Latitude  float64
	Longitude float64
	// Days is the number of daily rows requested, starting today
	Days int
}

// WeatherGateway defines the interface for the forecast provider calls
type WeatherGateway interface {
	// SearchCity looks a city up by name, restricted to Brazil
	SearchCity(ctx context.Context, name string) ([]external.GeocodingResult, error)

	// GetForecast gets daily aggregates, hourly precipitation and the current reading for a point
	GetForecast(ctx context.Context, query ForecastQuery) (*external.ForecastResponse, error)
}
