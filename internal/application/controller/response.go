package controller

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"weather-api/internal/domain/model"
	"weather-api/pkg/log"
	"weather-api/pkg/msg"
)

func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, model.ErrorResponse{Message: message})
}

// logFailure records the cause of a 5xx whose body hides it
func logFailure(c echo.Context, err error) {
	request := c.Request()
	log.Error(msg.GetMessage("app.handler-error", request.Method, request.URL.Path, err),
		zap.String("method", request.Method),
		zap.String("uri", request.URL.Path),
		zap.Error(err))
}
