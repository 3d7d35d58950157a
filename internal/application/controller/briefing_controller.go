package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"weather-api/internal/domain/model"
	"weather-api/internal/domain/usecase/briefing"
	"weather-api/pkg/msg"
	"weather-api/pkg/util/numberutils"
)

type BriefingController struct {
	api     *echo.Group
	useCase briefing.UseCase
}

func NewBriefingController(api *echo.Group, useCase briefing.UseCase) *BriefingController {
	return &BriefingController{api: api, useCase: useCase}
}

// InitBriefingRoutes initializes briefing routes
func (controller *BriefingController) InitBriefingRoutes() {
	controller.api.POST("/aiagent", controller.Generate)
}

// Generate godoc
// @Summary Generate an operational briefing
// @Description Write a pt-BR logistics briefing for the given forecast summaries, trying each configured model in order
// @Tags briefing
// @Accept json
// @Produce json
// @Param request body model.BriefingRequest true "Forecast summaries and day offset"
// @Success 200 {object} model.BriefingResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Failure 503 {object} model.ErrorResponse
// @Router /aiagent [post]
func (controller *BriefingController) Generate(c echo.Context) error {
	var request model.BriefingRequest
	if err := c.Bind(&request); err != nil {
		return errorJSON(c, http.StatusBadRequest, msg.GetMessage("briefing.error.invalid-body"))
	}

	dayOffset := numberutils.ToIntWithDefault(string(request.DayOffset), 0)
	if dayOffset < 0 {
		dayOffset = 0
	}

	result, err := controller.useCase.Generate(c.Request().Context(), request.WeatherData, dayOffset)
	if err != nil {
		switch {
		case errors.Is(err, briefing.ErrEmptyBatch):
			return errorJSON(c, http.StatusBadRequest, msg.GetMessage("briefing.error.empty"))
		case errors.Is(err, briefing.ErrAIUnavailable):
			return errorJSON(c, http.StatusServiceUnavailable, msg.GetMessage("briefing.error.unavailable"))
		default:
			logFailure(c, err)
			return errorJSON(c, http.StatusInternalServerError, msg.GetMessage("briefing.error.internal"))
		}
	}

	return c.JSON(http.StatusOK, model.BriefingResponse{Summary: result.Text, ModelUsed: result.ModelUsed})
}
