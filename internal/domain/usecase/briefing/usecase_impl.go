package briefing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"weather-api/internal/domain/entity"
	"weather-api/internal/domain/gateway/api"
	"weather-api/internal/domain/gateway/cache"
	"weather-api/internal/infra/metrics"
	"weather-api/pkg/log"
	"weather-api/pkg/msg"
)

const cacheNameBriefing = "briefing"

// Config holds the tuning of the briefing use case
type Config struct {
	TTL      time.Duration
	Models   []string
	Location *time.Location
	// Now defaults to time.Now
	Now func() time.Time
}

// GenerationAttempt is the outcome of one model call
type GenerationAttempt struct {
	Model string
	Text  string
	Err   error
}

// Succeeded reports whether the attempt produced text
func (a GenerationAttempt) Succeeded() bool {
	return a.Err == nil && a.Text != ""
}

type briefingUseCase struct {
	gateway api.GenerativeGateway
	store   cache.Store
	config  Config
}

func NewBriefingUseCase(gateway api.GenerativeGateway, store cache.Store, config Config) UseCase {
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.Location == nil {
		config.Location = time.UTC
	}
	return &briefingUseCase{
		gateway: gateway,
		store:   store,
		config:  config,
	}
}

// Generate serves the briefing from the cache or walks the model list until one answers
func (uc *briefingUseCase) Generate(ctx context.Context, summaries []entity.DailyForecastSummary, dayOffset int) (*entity.Briefing, error) {
	if len(summaries) == 0 {
		return nil, ErrEmptyBatch
	}

	key := CacheKey(dayOffset, summaries)

	var cached entity.Briefing
	found, err := uc.store.Get(ctx, key, &cached)
	if err != nil {
		return nil, fmt.Errorf("failed to read briefing cache: %w", err)
	}
	metrics.RecordCacheLookup(cacheNameBriefing, found)
	if found {
		log.Debug(msg.GetMessage("briefing.cache-hit", key), zap.String("key", key))
		return &cached, nil
	}

	prompt, err := BuildPrompt(DayName(uc.config.Now(), uc.config.Location, dayOffset), summaries)
	if err != nil {
		return nil, err
	}

	attempts, err := uc.runFallback(ctx, prompt)
	if err != nil {
		return nil, err
	}

	last := attempts[len(attempts)-1]
	briefing := &entity.Briefing{Text: last.Text, ModelUsed: last.Model}

	if err := uc.store.Set(ctx, key, briefing, uc.config.TTL); err != nil {
		log.Error(msg.GetMessage("briefing.store-failed", key, err), zap.Error(err))
	}

	return briefing, nil
}

// runFallback tries each model in order and stops at the first success, which is then the last attempt.
func (uc *briefingUseCase) runFallback(ctx context.Context, prompt string) ([]GenerationAttempt, error) {
	attempts := make([]GenerationAttempt, 0, len(uc.config.Models))
	var errs []error

	for _, model := range uc.config.Models {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		log.Debug(msg.GetMessage("briefing.model-try", model))
		attempt := uc.attempt(ctx, model, prompt)
		attempts = append(attempts, attempt)
		metrics.RecordModelAttempt(model, attempt.Err)

		if attempt.Succeeded() {
			log.Info(msg.GetMessage("briefing.model-success", model), zap.String("model", model))
			return attempts, nil
		}
		if errors.Is(attempt.Err, api.ErrMissingAPIKey) {
			return attempts, attempt.Err
		}

		log.Warn(msg.GetMessage("briefing.model-failed", model, attempt.Err), zap.String("model", model))
		errs = append(errs, attempt.Err)
	}

	log.Error(msg.GetMessage("briefing.exhausted"))
	return attempts, fmt.Errorf("%w: %w", ErrAIUnavailable, errors.Join(errs...))
}

func (uc *briefingUseCase) attempt(ctx context.Context, model, prompt string) GenerationAttempt {
	text, err := uc.gateway.Generate(ctx, model, prompt)
	if err == nil && text == "" {
		err = api.ErrEmptyGeneration
	}
	return GenerationAttempt{Model: model, Text: text, Err: err}
}
