package resource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveEnvVariable(t *testing.T) {
	t.Setenv("WEATHER_TEST_PORT", "9090")

	value, ok := resolveEnvVariable("${WEATHER_TEST_PORT:8080}")
	assert.True(t, ok)
	assert.Equal(t, "9090", value)

	value, ok = resolveEnvVariable("${WEATHER_TEST_UNSET:8080}")
	assert.True(t, ok)
	assert.Equal(t, "8080", value)

	value, ok = resolveEnvVariable("${WEATHER_TEST_UNSET:}")
	assert.True(t, ok)
	assert.Empty(t, value)

	_, ok = resolveEnvVariable("plain value")
	assert.False(t, ok)
}

func TestEmbeddedDefaults(t *testing.T) {
	assert.Equal(t, 30*time.Minute, GetDuration("app.cache.weather-ttl"))
	assert.Equal(t, "gemini-2.5-flash", GetStringSlice("app.briefing.models")[0])
	assert.Equal(t, "https://api.open-meteo.com", GetString("app.http.forecast.base-url"))

	var cities []struct {
		Name  string  `mapstructure:"name"`
		State string  `mapstructure:"state"`
		Lat   float64 `mapstructure:"latitude"`
	}
	assert.NoError(t, UnmarshalKey("app.cities", &cities))
	assert.Len(t, cities, 11)
	assert.Equal(t, "Chapeco", cities[0].Name)
	assert.InDelta(t, -27.10, cities[0].Lat, 0.001)
}
