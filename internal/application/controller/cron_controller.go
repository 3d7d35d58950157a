package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"weather-api/internal/domain/model"
	"weather-api/internal/domain/usecase/warmup"
	"weather-api/pkg/msg"
)

type CronController struct {
	api     *echo.Group
	useCase warmup.UseCase
	auth    echo.MiddlewareFunc
}

func NewCronController(api *echo.Group, useCase warmup.UseCase, auth echo.MiddlewareFunc) *CronController {
	return &CronController{api: api, useCase: useCase, auth: auth}
}

// InitCronRoutes initializes the cache warm-up trigger
func (controller *CronController) InitCronRoutes() {
	controller.api.GET("/cron", controller.WarmUp, controller.auth)
}

// WarmUp godoc
// @Summary Warm the forecast cache
// @Description Request today's forecast of every tracked city so that the cache is fresh
// @Tags cron
// @Produce json
// @Param Authorization header string false "Bearer CRON_SECRET, required in production"
// @Success 200 {object} model.CronResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.CronResponse
// @Router /cron [get]
func (controller *CronController) WarmUp(c echo.Context) error {
	report, err := controller.useCase.WarmUp(c.Request().Context())
	if err != nil {
		logFailure(c, err)
		return c.JSON(http.StatusInternalServerError, model.CronResponse{
			Success: false,
			Message: msg.GetMessage("cron.failed"),
		})
	}

	return c.JSON(http.StatusOK, model.CronResponse{
		Success: true,
		Message: msg.GetMessage("cron.done"),
		Results: report.Results,
	})
}
