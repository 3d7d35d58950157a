package middleware

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator plugs go-playground/validator into echo.Context.Validate
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

func (rv *RequestValidator) Validate(i any) error {
	return rv.validate.Struct(i)
}

// SetupValidator installs the request validator on e
func SetupValidator(e *echo.Echo) {
	e.Validator = NewRequestValidator()
}
