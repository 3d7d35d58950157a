package main

import (
	"context"
	"errors"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"weather-api/configs"
	_ "weather-api/docs"
	"weather-api/internal/application/controller"
	"weather-api/internal/application/middleware"
	"weather-api/internal/application/schedule"
	"weather-api/internal/domain/entity"
	"weather-api/internal/domain/gateway/api"
	"weather-api/internal/domain/gateway/cache"
	"weather-api/internal/domain/usecase/briefing"
	"weather-api/internal/domain/usecase/health"
	"weather-api/internal/domain/usecase/warmup"
	"weather-api/internal/domain/usecase/weather"
	"weather-api/internal/infra/metrics"
	"weather-api/pkg/http"
	"weather-api/pkg/log"
	"weather-api/pkg/msg"
	"weather-api/pkg/redis"
	"weather-api/pkg/resource"
)

// @title weather-api
// @version 1.0
// @description Weather dashboard backend: cached daily forecasts, city ticker, operational AI briefing and cache warm-up.
// @BasePath /
func main() {
	log.Info(msg.GetMessage("app.start"))
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := configs.Env
	port := resource.GetString("app.server.port")
	contextPath := resource.GetString("app.server.context-path")

	// Init infra
	redisClient, err := redis.NewClient(redisConfig(env))
	if err != nil {
		log.Fatal(msg.GetMessage("app.redis-failed", err), zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	middleware.SetupRequestLogger(e)
	middleware.SetupValidator(e)
	apiGroup := e.Group(contextPath)

	seedCities, err := loadSeedCities()
	if err != nil {
		log.Fatal(msg.GetMessage("app.config-invalid", "app.cities", err), zap.Error(err))
	}

	location, err := time.LoadLocation(resource.GetString("app.timezone"))
	if err != nil {
		log.Warn(msg.GetMessage("app.config-invalid", "app.timezone", err))
		location = time.UTC
	}

	// Init Gateways
	store := cache.NewRedisStore(redisClient)
	cacheHealthGateway := cache.NewRedisHealthGateway(redisClient)
	weatherGateway := api.NewWeatherGateway(
		resource.GetString("app.http.geocoding.base-url"), clientOptions("geocoding", true),
		resource.GetString("app.http.forecast.base-url"), clientOptions("forecast", true),
		env.WeatherAPIKey,
	)
	generativeGateway := api.NewGenerativeGateway(
		resource.GetString("app.http.generative.base-url"), clientOptions("generative", false),
		env.GoogleAPIKey,
		resource.GetDuration("app.briefing.model-timeout"),
	)
	selfGateway := api.NewSelfGateway(
		api.ResolveSelfBaseURL(env.DeploymentURL, port, contextPath), clientOptions("self", false),
	)

	// Init UseCase
	fanoutLimit := resource.GetInt("app.fanout.limit")
	maxDayOffset := resource.GetInt("app.weather.max-day-offset")

	healthUseCase := health.NewHealthUseCase(cacheHealthGateway)
	weatherUseCase := weather.NewWeatherUseCase(
		weather.NewFetcher(weatherGateway, resource.GetInt("app.weather.min-forecast-days")),
		store,
		weather.Config{
			WeatherTTL:   resource.GetDuration("app.cache.weather-ttl"),
			TickerTTL:    resource.GetDuration("app.cache.ticker-ttl"),
			FanoutLimit:  fanoutLimit,
			MaxDayOffset: maxDayOffset,
			SeedCities:   seedCities,
		},
	)
	briefingUseCase := briefing.NewBriefingUseCase(generativeGateway, store, briefing.Config{
		TTL:      resource.GetDuration("app.cache.briefing-ttl"),
		Models:   resource.GetStringSlice("app.briefing.models"),
		Location: location,
	})
	warmUpUseCase := warmup.NewWarmUpUseCase(selfGateway, seedCities, fanoutLimit)

	// Init Controller
	healthController := controller.NewHealthController(apiGroup, healthUseCase)
	weatherController := controller.NewWeatherController(apiGroup, weatherUseCase, maxDayOffset)
	briefingController := controller.NewBriefingController(apiGroup, briefingUseCase)
	cronController := controller.NewCronController(apiGroup, warmUpUseCase, middleware.CronAuth(env.IsProduction(), env.CronSecret))

	// Init Routes
	healthController.InitHealthRoutes()
	weatherController.InitWeatherRoutes()
	briefingController.InitBriefingRoutes()
	cronController.InitCronRoutes()
	apiGroup.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	apiGroup.GET("/swagger/*", echoSwagger.WrapHandler)

	// Init Schedule
	if resource.GetBool("app.warmup.enabled") {
		warmUpScheduler := schedule.NewWarmUpScheduler(warmUpUseCase, redisClient, schedule.WarmUpSchedulerConfig{
			CronExpression:  resource.GetString("app.warmup.cron"),
			LockTTL:         resource.GetDuration("app.warmup.lock-ttl"),
			RefreshInterval: resource.GetDuration("app.warmup.refresh-interval"),
			RetryInterval:   resource.GetDuration("app.warmup.retry-interval"),
			RunTimeout:      resource.GetDuration("app.warmup.run-timeout"),
		})
		warmUpScheduler.InitWarmUpScheduleTasks(ctx)
	}

	// Start Routes
	go func() {
		log.Info(msg.GetMessage("app.started", port))
		if err := e.Start(":" + port); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatal(msg.GetMessage("app.server-failed", err), zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info(msg.GetMessage("app.stopping"))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error(msg.GetMessage("app.server-failed", err), zap.Error(err))
	}
}

func redisConfig(env *configs.EnvConfig) *redis.Config {
	return redis.NewRedisConfig().
		WithURL(env.RedisURL).
		WithPassword(env.RedisToken).
		WithDatabase(resource.GetInt("app.redis.database")).
		WithPool(
			resource.GetInt("app.redis.min-idle-conns"),
			resource.GetInt("app.redis.max-idle-conns"),
			resource.GetInt("app.redis.max-active"),
		).
		WithMaxRetries(resource.GetInt("app.redis.max-retries")).
		WithTimeouts(
			resource.GetDuration("app.redis.dial-timeout"),
			resource.GetDuration("app.redis.read-timeout"),
			resource.GetDuration("app.redis.write-timeout"),
			resource.GetDuration("app.redis.pool-timeout"),
		)
}

// clientOptions reads app.http.<name>.* into the outbound client options
func clientOptions(name string, withBreaker bool) http.ClientOptions {
	prefix := "app.http." + name
	opts := http.ClientOptions{
		ReadTimeout:       resource.GetDuration(prefix + ".read-timeout"),
		ConnectionTimeout: resource.GetDuration(prefix + ".connection-timeout"),
		Backoff:           http.NewBackoffConfig(resource.GetInt(prefix + ".max-retries")),
		Logger:            http.ZapLogger{Upstream: name},
	}
	if withBreaker {
		opts.CircuitBreaker = &http.CircuitBreakerConfig{
			Name:                name,
			MaxRequests:         1,
			Timeout:             30 * time.Second,
			ConsecutiveFailures: 5,
		}
	}
	return opts
}

type seedCity struct {
	Name      string   `mapstructure:"name"`
	State     string   `mapstructure:"state"`
	Latitude  *float64 `mapstructure:"latitude"`
	Longitude *float64 `mapstructure:"longitude"`
}

func loadSeedCities() (entity.Cities, error) {
	var raw []seedCity
	if err := resource.UnmarshalKey("app.cities", &raw); err != nil {
		return nil, err
	}

	cities := make(entity.Cities, 0, len(raw))
	for _, c := range raw {
		cities = append(cities, entity.NewCity(c.Name, c.State, c.Latitude, c.Longitude))
	}
	return cities.Distinct(), nil
}
