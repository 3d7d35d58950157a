package weather

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"weather-api/internal/domain/entity"
	"weather-api/internal/domain/gateway/cache"
	"weather-api/internal/domain/model"
	"weather-api/internal/infra/metrics"
	"weather-api/pkg/log"
	"weather-api/pkg/msg"
)

const (
	cacheNameWeather = "weather"
	cacheNameTicker  = "ticker"
)

// Config holds the tuning of the weather use case
type Config struct {
	WeatherTTL   time.Duration
	TickerTTL    time.Duration
	FanoutLimit  int
	MaxDayOffset int
	SeedCities   entity.Cities
}

type weatherUseCase struct {
	fetcher Fetcher
	store   cache.Store
	config  Config
}

func NewWeatherUseCase(fetcher Fetcher, store cache.Store, config Config) UseCase {
	if config.FanoutLimit <= 0 {
		config.FanoutLimit = 8
	}
	return &weatherUseCase{
		fetcher: fetcher,
		store:   store,
		config:  config,
	}
}

// GetDailyForecast is cache-first: a hit is returned as stored, a miss is fetched and stored before returning
func (uc *weatherUseCase) GetDailyForecast(ctx context.Context, query model.WeatherQuery) (*entity.DailyForecastSummary, error) {
	if strings.TrimSpace(query.City) == "" || strings.TrimSpace(query.State) == "" {
		return nil, ErrMissingLocation
	}
	if query.DayOffset < 0 || query.DayOffset > uc.config.MaxDayOffset {
		return nil, fmt.Errorf("%w: must be between 0 and %d", ErrDayOffsetRange, uc.config.MaxDayOffset)
	}

	key := CacheKey(query.City, query.State, query.DayOffset)

	var cached entity.DailyForecastSummary
	found, err := uc.store.Get(ctx, key, &cached)
	if err != nil {
		return nil, fmt.Errorf("failed to read weather cache: %w", err)
	}
	metrics.RecordCacheLookup(cacheNameWeather, found)
	if found {
		log.Debug(msg.GetMessage("weather.cache-hit", key), zap.String("key", key))
		return &cached, nil
	}

	log.Debug(msg.GetMessage("weather.cache-miss", key), zap.String("key", key))
	city := query.CityOf()
	summary, err := uc.fetcher.Fetch(ctx, city, query.DayOffset)
	if err != nil {
		log.Warn(msg.GetMessage("weather.fetch-failed", city.Name, city.StateCode, err), zap.String("key", key), zap.Error(err))
		return nil, &DataUnavailableError{City: city.Name, State: city.StateCode, Err: err}
	}

	if err := uc.store.Set(ctx, key, summary, uc.config.WeatherTTL); err != nil {
		return nil, fmt.Errorf("failed to write weather cache: %w", err)
	}
	log.Debug(msg.GetMessage("weather.cache-stored", key), zap.String("key", key))

	return summary, nil
}

// GetMany fans lookups out with bounded concurrency. Results keep the request order.
func (uc *weatherUseCase) GetMany(ctx context.Context, cities entity.Cities, dayOffset int) (*model.BatchWeatherResponse, error) {
	cities = cities.Distinct()
	if len(cities) == 0 {
		return nil, ErrNoCities
	}
	if dayOffset < 0 || dayOffset > uc.config.MaxDayOffset {
		return nil, fmt.Errorf("%w: must be between 0 and %d", ErrDayOffsetRange, uc.config.MaxDayOffset)
	}

	summaries := uc.fanOut(ctx, cities, func(gCtx context.Context, city entity.City) (*entity.DailyForecastSummary, error) {
		return uc.GetDailyForecast(gCtx, model.WeatherQuery{
			City:      city.Name,
			State:     city.StateCode,
			DayOffset: dayOffset,
			Latitude:  city.Latitude,
			Longitude: city.Longitude,
		})
	})

	response := &model.BatchWeatherResponse{
		Results: make([]entity.DailyForecastSummary, 0, len(cities)),
		Failed:  make([]string, 0),
	}
	for i, summary := range summaries {
		if summary == nil {
			response.Failed = append(response.Failed, cities[i].Label())
			continue
		}
		response.Results = append(response.Results, *summary)
	}

	return response, nil
}

// GetTicker is cache-first on TickerKey; a miss fetches day 0 of every seed city
func (uc *weatherUseCase) GetTicker(ctx context.Context) ([]entity.DailyForecastSummary, error) {
	var cached []entity.DailyForecastSummary
	found, err := uc.store.Get(ctx, TickerKey, &cached)
	if err != nil {
		return nil, fmt.Errorf("failed to read ticker cache: %w", err)
	}
	metrics.RecordCacheLookup(cacheNameTicker, found)
	if found {
		log.Debug(msg.GetMessage("weather.cache-hit", TickerKey))
		return cached, nil
	}

	summaries := uc.fanOut(ctx, uc.config.SeedCities, func(gCtx context.Context, city entity.City) (*entity.DailyForecastSummary, error) {
		return uc.fetcher.Fetch(gCtx, city, 0)
	})

	ticker := make([]entity.DailyForecastSummary, 0, len(summaries))
	for _, summary := range summaries {
		if summary != nil {
			ticker = append(ticker, *summary)
		}
	}
	log.Info(msg.GetMessage("weather.ticker-partial", len(ticker), len(uc.config.SeedCities)))

	if len(ticker) == 0 {
		return nil, ErrTickerUnavailable
	}

	if err := uc.store.Set(ctx, TickerKey, ticker, uc.config.TickerTTL); err != nil {
		log.Error(msg.GetMessage("weather.ticker-store-failed", err), zap.Error(err))
	}

	return ticker, nil
}

func (uc *weatherUseCase) SeedCities() entity.Cities {
	return append(entity.Cities(nil), uc.config.SeedCities...)
}

// fanOut runs lookup for every city with at most FanoutLimit in flight.
// A failed lookup leaves a nil entry and never cancels its siblings.
func (uc *weatherUseCase) fanOut(ctx context.Context, cities entity.Cities, lookup func(context.Context, entity.City) (*entity.DailyForecastSummary, error)) []*entity.DailyForecastSummary {
	summaries := make([]*entity.DailyForecastSummary, len(cities))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(uc.config.FanoutLimit)

	for i, city := range cities {
		i, city := i, city
		g.Go(func() error {
			summary, err := lookup(gCtx, city)
			if err != nil {
				log.Warn(msg.GetMessage("weather.batch-failed", city.Label(), err), zap.Error(err))
				return nil
			}
			summaries[i] = summary
			return nil
		})
	}

	// lookups never return errors
	_ = g.Wait()

	return summaries
}
