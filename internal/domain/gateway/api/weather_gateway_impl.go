package api

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"weather-api/internal/domain/model/external"
	"weather-api/internal/infra/metrics"
	"weather-api/pkg/http"
)

const (
	upstreamGeocoding = "geocoding"
	upstreamForecast  = "forecast"

	dailyFields  = "temperature_2m_max,temperature_2m_min,precipitation_sum,precipitation_probability_max,wind_speed_10m_max,weather_code"
	hourlyFields = "precipitation"
	currentField = "temperature_2m"
)

// weatherGatewayImpl implements the WeatherGateway interface over Open-Meteo
type weatherGatewayImpl struct {
	geocodingClient *http.Client
	forecastClient  *http.Client
	apiKey          string
}

// NewWeatherGateway creates a new instance of WeatherGateway with one HTTP client per upstream.
// apiKey is optional and only sent when set.
func NewWeatherGateway(geocodingBaseUrl string, geocodingOptions http.ClientOptions, forecastBaseUrl string, forecastOptions http.ClientOptions, apiKey string) WeatherGateway {
	return &weatherGatewayImpl{
		geocodingClient: http.NewHttpClient(geocodingBaseUrl, geocodingOptions),
		forecastClient:  http.NewHttpClient(forecastBaseUrl, forecastOptions),
		apiKey:          apiKey,
	}
}

// SearchCity looks a city up by name, restricted to Brazil
func (w *weatherGatewayImpl) SearchCity(ctx context.Context, name string) ([]external.GeocodingResult, error) {
	start := time.Now()

	successResp, errResp, _, err := w.geocodingClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath("/v1/search").
		WithQueryParams(w.withAPIKey(map[string]string{
			"name":        name,
			"count":       "10",
			"language":    "pt",
			"format":      "json",
			"countryCode": "BR",
		})).
		WithSuccessResp(&external.GeocodingResponse{}).
		WithErrorResp(&external.OpenMeteoError{}).
		Execute()

	metrics.RecordUpstream(upstreamGeocoding, err, time.Since(start))

	if err == nil {
		return successResp.(*external.GeocodingResponse).Results, nil
	}

	return nil, upstreamError(upstreamGeocoding, errResp, err)
}

// GetForecast gets daily aggregates, hourly precipitation and the current reading for a point
func (w *weatherGatewayImpl) GetForecast(ctx context.Context, query ForecastQuery) (*external.ForecastResponse, error) {
	start := time.Now()

	successResp, errResp, _, err := w.forecastClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath("/v1/forecast").
		WithQueryParams(w.withAPIKey(map[string]string{
			"latitude":      strconv.FormatFloat(query.Latitude, 'f', -1, 64),
			"longitude":     strconv.FormatFloat(query.Longitude, 'f', -1, 64),
			"daily":         dailyFields,
			"hourly":        hourlyFields,
			"current":       currentField,
			"timezone":      "auto",
			"forecast_days": strconv.Itoa(query.Days),
		})).
		WithSuccessResp(&external.ForecastResponse{}).
		WithErrorResp(&external.OpenMeteoError{}).
		Execute()

	metrics.RecordUpstream(upstreamForecast, err, time.Since(start))

	if err == nil {
		return successResp.(*external.ForecastResponse), nil
	}

	return nil, upstreamError(upstreamForecast, errResp, err)
}

func (w *weatherGatewayImpl) withAPIKey(params map[string]string) map[string]string {
	if w.apiKey != "" {
		params["apikey"] = w.apiKey
	}
	return params
}

func upstreamError(upstream string, errResp any, err error) error {
	if errorResponse, ok := errResp.(*external.OpenMeteoError); ok && errorResponse.Reason != "" {
		return fmt.Errorf("%s: %s: %w", upstream, errorResponse.Reason, err)
	}
	return fmt.Errorf("%s: %w", upstream, err)
}
