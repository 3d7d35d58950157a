package health

import (
	"context"

	"weather-api/internal/domain/gateway/cache"
	"weather-api/internal/domain/model"
	"weather-api/pkg/log"
	"weather-api/pkg/msg"
)

type healthUseCase struct {
	cacheGateway cache.HealthGateway
}

func NewHealthUseCase(cacheGateway cache.HealthGateway) UseCase {
	return &healthUseCase{
		cacheGateway: cacheGateway,
	}
}

func (useCase *healthUseCase) CheckHealth(ctx context.Context) model.HealthResponse {
	cacheHealth := useCase.cacheGateway.Health(ctx)

	overallStatus := model.StatusUp
	if cacheHealth.Status != model.StatusUp {
		overallStatus = model.StatusDown
		log.Warn(msg.GetMessage("health.cache-down", cacheHealth.Details["error"]))
	}

	return model.HealthResponse{
		Status: overallStatus,
		Cache:  cacheHealth,
	}
}
