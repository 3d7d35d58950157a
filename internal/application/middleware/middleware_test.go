package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-api/internal/domain/entity"
	"weather-api/internal/domain/model"
)

func serveCron(t *testing.T, enforce bool, secret, header string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.GET("/cron", func(c echo.Context) error {
		return c.String(http.StatusOK, "ran")
	}, CronAuth(enforce, secret))

	req := httptest.NewRequest(http.MethodGet, "/cron", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCronAuth(t *testing.T) {
	tests := []struct {
		name     string
		enforce  bool
		secret   string
		header   string
		expected int
	}{
		{"not enforced without header", false, "s3cret", "", http.StatusOK},
		{"valid bearer", true, "s3cret", "Bearer s3cret", http.StatusOK},
		{"wrong secret", true, "s3cret", "Bearer nope", http.StatusUnauthorized},
		{"missing header", true, "s3cret", "", http.StatusUnauthorized},
		{"wrong scheme", true, "s3cret", "Basic s3cret", http.StatusUnauthorized},
		{"empty secret rejects", true, "", "Bearer ", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveCron(t, tt.enforce, tt.secret, tt.header)

			assert.Equal(t, tt.expected, rec.Code)
			if tt.expected == http.StatusUnauthorized {
				assert.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
			}
		})
	}
}

func TestRequestValidator(t *testing.T) {
	rv := NewRequestValidator()
	lat := -27.1

	valid := model.BatchWeatherRequest{Cities: []entity.City{{Name: "Chapeco", StateCode: "SC", Latitude: &lat}}}
	require.NoError(t, rv.Validate(valid))

	assert.Error(t, rv.Validate(model.BatchWeatherRequest{}))
	assert.Error(t, rv.Validate(model.BatchWeatherRequest{Cities: []entity.City{{Name: "Chapeco"}}}))
	assert.Error(t, rv.Validate(model.BatchWeatherRequest{Cities: valid.Cities, DayOffset: -1}))

	badLat := 123.0
	assert.Error(t, rv.Validate(model.BatchWeatherRequest{Cities: []entity.City{{Name: "Chapeco", StateCode: "SC", Latitude: &badLat}}}))
}
