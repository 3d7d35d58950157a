package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"weather-api/internal/domain/model"
	"weather-api/pkg/msg"
)

// CronAuth requires "Authorization: Bearer <secret>" when enforce is true.
// An empty secret rejects every request.
func CronAuth(enforce bool, secret string) echo.MiddlewareFunc {
	return echomw.KeyAuthWithConfig(echomw.KeyAuthConfig{
		KeyLookup:  "header:" + echo.HeaderAuthorization,
		AuthScheme: "Bearer",
		Skipper: func(echo.Context) bool {
			return !enforce
		},
		Validator: func(key string, c echo.Context) (bool, error) {
			if secret == "" {
				return false, nil
			}
			return subtle.ConstantTimeCompare([]byte(key), []byte(secret)) == 1, nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			return c.JSON(http.StatusUnauthorized, model.ErrorResponse{Message: msg.GetMessage("cron.unauthorized")})
		},
	})
}
