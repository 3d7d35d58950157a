package configs

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvConfig holds secrets and deployment values read from the environment.
// It is built once at startup and never mutated afterwards.
type EnvConfig struct {
	ApplicationName string
	AppEnv          string
	Port            string
	ContextPath     string
	WeatherAPIKey   string
	GoogleAPIKey    string
	RedisURL        string
	RedisToken      string
	CronSecret      string
	DeploymentURL   string
}

var Env *EnvConfig

func init() {
	// a missing .env is the normal case outside local development
	_ = godotenv.Load()

	Env = Load(viper.New())
}

// Load reads EnvConfig from the process environment through v.
func Load(v *viper.Viper) *EnvConfig {
	v.AutomaticEnv()

	return &EnvConfig{
		ApplicationName: getStringOrDefault(v, "APPLICATION_NAME", "weather-api"),
		AppEnv:          getStringOrDefault(v, "APP_ENV", "development"),
		Port:            getStringOrDefault(v, "PORT", "8080"),
		ContextPath:     v.GetString("CONTEXT_PATH"),
		WeatherAPIKey:   v.GetString("WEATHER_API_KEY"),
		GoogleAPIKey:    v.GetString("GOOGLE_API_KEY"),
		RedisURL:        getStringOrDefault(v, "REDIS_URL", "redis://localhost:6379"),
		RedisToken:      v.GetString("REDIS_TOKEN"),
		CronSecret:      v.GetString("CRON_SECRET"),
		DeploymentURL:   getStringOrDefault(v, "DEPLOYMENT_URL", v.GetString("VERCEL_URL")),
	}
}

// IsProduction reports whether the process runs with APP_ENV=production.
func (e *EnvConfig) IsProduction() bool {
	return strings.EqualFold(e.AppEnv, "production")
}

func getStringOrDefault(v *viper.Viper, key, defaultValue string) string {
	value := strings.TrimSpace(v.GetString(key))
	if value == "" {
		return defaultValue
	}
	return value
}
