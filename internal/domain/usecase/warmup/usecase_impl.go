package warmup

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"weather-api/internal/domain/entity"
	"weather-api/internal/domain/gateway/api"
	"weather-api/internal/domain/model"
	"weather-api/internal/infra/metrics"
	"weather-api/pkg/log"
	"weather-api/pkg/msg"
)

type warmUpUseCase struct {
	gateway     api.SelfGateway
	cities      entity.Cities
	fanoutLimit int
}

func NewWarmUpUseCase(gateway api.SelfGateway, cities entity.Cities, fanoutLimit int) UseCase {
	if fanoutLimit <= 0 {
		fanoutLimit = 1
	}
	return &warmUpUseCase{
		gateway:     gateway,
		cities:      cities,
		fanoutLimit: fanoutLimit,
	}
}

func (uc *warmUpUseCase) WarmUp(ctx context.Context) (*model.WarmUpReport, error) {
	if len(uc.cities) == 0 {
		return nil, ErrNoCities
	}

	runID := uuid.NewString()
	log.Info(msg.GetMessage("cron.start", len(uc.cities), runID), zap.String("runId", runID))

	results := make([]model.WarmUpResult, len(uc.cities))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(uc.fanoutLimit)

	for i, city := range uc.cities {
		i, city := i, city
		group.Go(func() error {
			results[i] = uc.warm(groupCtx, city)
			return nil
		})
	}
	_ = group.Wait()

	report := &model.WarmUpReport{RunID: runID, Results: results}
	for _, result := range results {
		if result.Success {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}

	log.Info(msg.GetMessage("cron.finished", report.Succeeded, report.Failed, runID),
		zap.String("runId", runID),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed))

	return report, nil
}

func (uc *warmUpUseCase) warm(ctx context.Context, city entity.City) model.WarmUpResult {
	result := model.WarmUpResult{City: city.Name, State: city.StateCode}

	status, err := uc.gateway.WarmWeather(ctx, city, 0)
	result.Status = status
	switch {
	case err != nil:
		result.Error = err.Error()
	case status != http.StatusOK:
		result.Error = fmt.Sprintf("unexpected status %d", status)
	default:
		result.Success = true
	}

	metrics.RecordWarmUp(result.Success)
	if result.Success {
		log.Debug(msg.GetMessage("cron.city-ok", city.Name, city.StateCode, status))
	} else {
		log.Warn(msg.GetMessage("cron.city-failed", city.Name, city.StateCode, result.Error))
	}
	return result
}
