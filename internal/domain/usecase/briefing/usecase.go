package briefing

import (
	"context"
	"errors"

	"weather-api/internal/domain/entity"
)

var (
	// ErrEmptyBatch is returned when no summary is given
	ErrEmptyBatch = errors.New("no weather data provided")
	// ErrAIUnavailable is returned when every model of the fallback list failed
	ErrAIUnavailable = errors.New("generative service unavailable")
)

type UseCase interface {
	// Generate returns the cached briefing for the batch and day, generating and caching it on a miss
	Generate(ctx context.Context, summaries []entity.DailyForecastSummary, dayOffset int) (*entity.Briefing, error)
}
