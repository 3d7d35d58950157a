package weather

import (
	"context"

	"weather-api/internal/domain/entity"
	"weather-api/internal/domain/model"
)

type UseCase interface {
	// GetDailyForecast returns the cached summary for the query, fetching and caching it on a miss
	GetDailyForecast(ctx context.Context, query model.WeatherQuery) (*entity.DailyForecastSummary, error)

	// GetMany looks several cities up concurrently; failed cities are reported, not fatal
	GetMany(ctx context.Context, cities entity.Cities, dayOffset int) (*model.BatchWeatherResponse, error)

	// GetTicker returns today's summary for every seed city that could be fetched
	GetTicker(ctx context.Context) ([]entity.DailyForecastSummary, error)

	// SeedCities returns the static list of tracked cities
	SeedCities() entity.Cities
}
