package weather

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"weather-api/internal/domain/entity"
	"weather-api/internal/domain/gateway/api"
	"weather-api/internal/domain/model/external"
	"weather-api/pkg/log"
	"weather-api/pkg/msg"
	"weather-api/pkg/util/numberutils"
)

const hourlyTimeLayout = "2006-01-02T15:04"

// Fetcher turns provider payloads into a DailyForecastSummary.
// Every failure wraps ErrNoData.
type Fetcher interface {
	Fetch(ctx context.Context, city entity.City, dayOffset int) (*entity.DailyForecastSummary, error)
}

type forecastFetcher struct {
	gateway         api.WeatherGateway
	minForecastDays int
}

// NewFetcher creates a Fetcher requesting at least minForecastDays daily rows per call
func NewFetcher(gateway api.WeatherGateway, minForecastDays int) Fetcher {
	return &forecastFetcher{
		gateway:         gateway,
		minForecastDays: minForecastDays,
	}
}

// Fetch geocodes the city when it has no coordinates, then reads the forecast for dayOffset
func (f *forecastFetcher) Fetch(ctx context.Context, city entity.City, dayOffset int) (*entity.DailyForecastSummary, error) {
	if dayOffset < 0 {
		return nil, ErrDayOutOfRange
	}

	latitude, longitude, err := f.resolveCoordinates(ctx, city)
	if err != nil {
		return nil, err
	}

	forecast, err := f.gateway.GetForecast(ctx, api.ForecastQuery{
		Latitude:  latitude,
		Longitude: longitude,
		Days:      numberutils.MaxInt(dayOffset+1, f.minForecastDays),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoData, err)
	}

	return Summarize(forecast, DisplayLabel(city.Name, city.StateCode), dayOffset, latitude, longitude)
}

func (f *forecastFetcher) resolveCoordinates(ctx context.Context, city entity.City) (float64, float64, error) {
	if city.HasCoordinates() {
		return *city.Latitude, *city.Longitude, nil
	}

	results, err := f.gateway.SearchCity(ctx, city.Name)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrNoData, err)
	}
	if len(results) == 0 {
		log.Warn(msg.GetMessage("weather.geocode-empty", city.Name, city.StateCode), zap.String("city", city.Label()))
		return 0, 0, fmt.Errorf("%w: no geocoding results for %s", ErrNoData, city.Label())
	}

	selected := results[0]
	for _, result := range results {
		if matchesState(result.Admin1, city.StateCode) {
			selected = result
			break
		}
	}

	return selected.Latitude, selected.Longitude, nil
}

// Summarize selects daily row dayOffset and hourly samples [dayOffset*24, dayOffset*24+24)
// from an Open-Meteo forecast.
func Summarize(forecast *external.ForecastResponse, label string, dayOffset int, latitude, longitude float64) (*entity.DailyForecastSummary, error) {
	if forecast == nil {
		return nil, fmt.Errorf("%w: empty forecast payload", ErrNoData)
	}

	daily := forecast.Daily
	if dayOffset < 0 || !hasIndex(dayOffset, daily.Temperature2mMax, daily.Temperature2mMin) {
		return nil, fmt.Errorf("%w: requested day %d, provider returned %d", ErrDayOutOfRange, dayOffset, len(daily.Temperature2mMax))
	}

	maxTemp := daily.Temperature2mMax[dayOffset]
	minTemp := daily.Temperature2mMin[dayOffset]
	if maxTemp == nil || minTemp == nil {
		return nil, fmt.Errorf("%w: missing temperatures for day %d", ErrNoData, dayOffset)
	}

	summary := &entity.DailyForecastSummary{
		Label:         label,
		MaxTempC:      numberutils.RoundToInt(*maxTemp),
		MinTempC:      numberutils.RoundToInt(*minTemp),
		TotalRainMm:   numberutils.RoundTo(valueAt(daily.PrecipitationSum, dayOffset), 2),
		WindKph:       numberutils.RoundTo(valueAt(daily.WindSpeed10mMax, dayOffset), 2),
		ConditionCode: int(valueAt(daily.WeatherCode, dayOffset)),
		HourlyRain:    hourlyRain(forecast.Hourly, dayOffset),
		Latitude:      &latitude,
		Longitude:     &longitude,
	}
	summary.Condition = entity.ConditionDescription(summary.ConditionCode)

	if summary.MaxTempC < summary.MinTempC {
		summary.MaxTempC, summary.MinTempC = summary.MinTempC, summary.MaxTempC
	}

	if hasIndex(dayOffset, daily.PrecipitationProbabilityMax) && daily.PrecipitationProbabilityMax[dayOffset] != nil {
		probability := numberutils.RoundToInt(*daily.PrecipitationProbabilityMax[dayOffset])
		summary.RainProbabilityPct = &probability
	}

	if dayOffset == 0 && forecast.Current != nil && forecast.Current.Temperature2m != nil {
		current := numberutils.RoundToInt(*forecast.Current.Temperature2m)
		summary.CurrentTempC = &current
	}

	return summary, nil
}

// hourlyRain maps the day's hourly samples onto 24 hour buckets, absent samples stay at 0
func hourlyRain(series external.HourlySeries, dayOffset int) []entity.HourlyRain {
	hours := entity.NewHourlyRain()

	start := dayOffset * entity.HoursPerDay
	end := start + entity.HoursPerDay
	if end > len(series.Precipitation) {
		end = len(series.Precipitation)
	}

	for i := start; i < end; i++ {
		sample := series.Precipitation[i]
		if sample == nil {
			continue
		}

		hour := i - start
		if i < len(series.Time) {
			if t, err := time.Parse(hourlyTimeLayout, series.Time[i]); err == nil {
				hour = t.Hour()
			}
		}
		hours[hour].RainMm = numberutils.RoundTo(*sample, 2)
	}

	return hours
}

func hasIndex(i int, series ...[]*float64) bool {
	for _, s := range series {
		if i >= len(s) {
			return false
		}
	}
	return true
}

func valueAt(series []*float64, i int) float64 {
	if i < 0 || i >= len(series) || series[i] == nil {
		return 0
	}
	return *series[i]
}
