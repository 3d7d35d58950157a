package model

import "weather-api/internal/domain/entity"

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Message string `json:"message"`
}

// WeatherQuery identifies one city/day forecast lookup
type WeatherQuery struct {
	City      string
	State     string
	DayOffset int
	Latitude  *float64
	Longitude *float64
}

// CityOf returns the city the query refers to
func (q WeatherQuery) CityOf() entity.City {
	return entity.NewCity(q.City, q.State, q.Latitude, q.Longitude)
}

// BatchWeatherRequest asks for the forecast of several cities for the same day
type BatchWeatherRequest struct {
	Cities    []entity.City `json:"cities" validate:"required,min=1,dive"`
	DayOffset int           `json:"dayOffset" validate:"min=0"`
}

// BatchWeatherResponse holds the summaries found, in request order, and the labels that failed
type BatchWeatherResponse struct {
	Results []entity.DailyForecastSummary `json:"results"`
	Failed  []string                      `json:"failed"`
}
