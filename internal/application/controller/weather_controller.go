package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"weather-api/internal/domain/model"
	"weather-api/internal/domain/usecase/weather"
	"weather-api/pkg/msg"
	"weather-api/pkg/util/numberutils"
)

type WeatherController struct {
	api          *echo.Group
	useCase      weather.UseCase
	maxDayOffset int
}

func NewWeatherController(api *echo.Group, useCase weather.UseCase, maxDayOffset int) *WeatherController {
	return &WeatherController{api: api, useCase: useCase, maxDayOffset: maxDayOffset}
}

// InitWeatherRoutes initializes weather routes
func (controller *WeatherController) InitWeatherRoutes() {
	controller.api.GET("/weather", controller.GetDailyForecast)
	controller.api.POST("/weather/batch", controller.GetMany)
	controller.api.GET("/ticker", controller.GetTicker)
}

// GetDailyForecast godoc
// @Summary Get the daily forecast of a city
// @Description Return the forecast summary of a city for today plus dayOffset days, served from the cache when fresh
// @Tags weather
// @Produce json
// @Param city query string true "City name"
// @Param state query string true "State code"
// @Param dayOffset query int false "Days after today" default(0)
// @Param lat query number false "Latitude, skips geocoding together with lon"
// @Param lon query number false "Longitude, skips geocoding together with lat"
// @Success 200 {object} entity.DailyForecastSummary
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /weather [get]
func (controller *WeatherController) GetDailyForecast(c echo.Context) error {
	city := strings.TrimSpace(c.QueryParam("city"))
	state := strings.TrimSpace(c.QueryParam("state"))
	if city == "" || state == "" {
		return errorJSON(c, http.StatusBadRequest, msg.GetMessage("weather.error.required"))
	}

	dayOffset, err := numberutils.ToIntInRange(c.QueryParam("dayOffset"), 0, 0, controller.maxDayOffset)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, msg.GetMessage("weather.error.day-offset", controller.maxDayOffset))
	}

	lat, latErr := numberutils.ToOptionalFloat(c.QueryParam("lat"))
	lon, lonErr := numberutils.ToOptionalFloat(c.QueryParam("lon"))
	if latErr != nil || lonErr != nil {
		return errorJSON(c, http.StatusBadRequest, msg.GetMessage("weather.error.coordinates"))
	}

	summary, err := controller.useCase.GetDailyForecast(c.Request().Context(), model.WeatherQuery{
		City:      city,
		State:     state,
		DayOffset: dayOffset,
		Latitude:  lat,
		Longitude: lon,
	})
	if err != nil {
		return controller.handleError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// GetMany godoc
// @Summary Get the daily forecast of several cities
// @Description Look several cities up concurrently; cities that fail are listed in failed
// @Tags weather
// @Accept json
// @Produce json
// @Param request body model.BatchWeatherRequest true "Cities and day offset"
// @Success 200 {object} model.BatchWeatherResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /weather/batch [post]
func (controller *WeatherController) GetMany(c echo.Context) error {
	var request model.BatchWeatherRequest
	if err := c.Bind(&request); err != nil {
		return errorJSON(c, http.StatusBadRequest, msg.GetMessage("weather.error.invalid-body"))
	}
	if len(request.Cities) == 0 {
		return errorJSON(c, http.StatusBadRequest, msg.GetMessage("weather.error.batch-empty"))
	}
	if err := c.Validate(&request); err != nil {
		return errorJSON(c, http.StatusBadRequest, msg.GetMessage("weather.error.batch-invalid", err))
	}

	response, err := controller.useCase.GetMany(c.Request().Context(), request.Cities, request.DayOffset)
	if err != nil {
		return controller.handleError(c, err)
	}
	return c.JSON(http.StatusOK, response)
}

// GetTicker godoc
// @Summary Get today's forecast of every tracked city
// @Description Return today's summary for the tracked cities, served from the cache when fresh
// @Tags weather
// @Produce json
// @Success 200 {array} entity.DailyForecastSummary
// @Failure 500 {object} model.ErrorResponse
// @Router /ticker [get]
func (controller *WeatherController) GetTicker(c echo.Context) error {
	summaries, err := controller.useCase.GetTicker(c.Request().Context())
	if err != nil {
		if errors.Is(err, weather.ErrTickerUnavailable) {
			return errorJSON(c, http.StatusInternalServerError, msg.GetMessage("weather.error.ticker"))
		}
		logFailure(c, err)
		return errorJSON(c, http.StatusInternalServerError, msg.GetMessage("weather.error.internal"))
	}
	return c.JSON(http.StatusOK, summaries)
}

func (controller *WeatherController) handleError(c echo.Context, err error) error {
	var unavailable *weather.DataUnavailableError

	switch {
	case errors.Is(err, weather.ErrMissingLocation):
		return errorJSON(c, http.StatusBadRequest, msg.GetMessage("weather.error.required"))
	case errors.Is(err, weather.ErrNoCities):
		return errorJSON(c, http.StatusBadRequest, msg.GetMessage("weather.error.batch-empty"))
	case errors.Is(err, weather.ErrDayOffsetRange):
		return errorJSON(c, http.StatusBadRequest, msg.GetMessage("weather.error.day-offset", controller.maxDayOffset))
	case errors.Is(err, weather.ErrInvalidQuery):
		return errorJSON(c, http.StatusBadRequest, msg.GetMessage("weather.error.invalid-query", err))
	case errors.As(err, &unavailable):
		return errorJSON(c, http.StatusInternalServerError, msg.GetMessage("weather.error.unavailable", unavailable.City, unavailable.State))
	default:
		logFailure(c, err)
		return errorJSON(c, http.StatusInternalServerError, msg.GetMessage("weather.error.internal"))
	}
}
