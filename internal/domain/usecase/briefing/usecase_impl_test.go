package briefing

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-api/internal/domain/entity"
	"weather-api/internal/domain/gateway/api"
)

var defaultModels = []string{
	"gemini-2.5-flash",
	"gemini-2.5-flash-lite",
	"gemini-2.0-flash",
	"gemini-2.0-flash-lite",
	"gemini-1.5-flash",
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration
	getErr  error
	setErr  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (s *memoryStore) Get(_ context.Context, key string, dest any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return false, s.getErr
	}
	data, ok := s.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (s *memoryStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.entries[key] = data
	s.ttls[key] = ttl
	return nil
}

// scriptedGateway answers per model; models without a script fail
type scriptedGateway struct {
	answers map[string]string
	errs    map[string]error
	calls   []string
	prompts []string
}

func (g *scriptedGateway) Generate(_ context.Context, model string, prompt string) (string, error) {
	g.calls = append(g.calls, model)
	g.prompts = append(g.prompts, prompt)
	if err, ok := g.errs[model]; ok {
		return "", err
	}
	if text, ok := g.answers[model]; ok {
		return text, nil
	}
	return "", errors.New("model not found")
}

func summaries(labels ...string) []entity.DailyForecastSummary {
	out := make([]entity.DailyForecastSummary, len(labels))
	for i, label := range labels {
		out[i] = entity.DailyForecastSummary{Label: label, MaxTempC: 25, MinTempC: 15, HourlyRain: entity.NewHourlyRain()}
	}
	return out
}

func newTestUseCase(gateway api.GenerativeGateway, store *memoryStore) UseCase {
	loc, _ := time.LoadLocation("America/Sao_Paulo")
	return NewBriefingUseCase(gateway, store, Config{
		TTL:      1800 * time.Second,
		Models:   defaultModels,
		Location: loc,
		Now:      func() time.Time { return time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC) },
	})
}

func TestGenerateFirstModelSucceeds(t *testing.T) {
	gateway := &scriptedGateway{answers: map[string]string{"gemini-2.5-flash": "Olá! Para hoje, tudo tranquilo."}}
	store := newMemoryStore()
	uc := newTestUseCase(gateway, store)

	briefing, err := uc.Generate(context.Background(), summaries("Lages, SC"), 0)

	require.NoError(t, err)
	assert.Equal(t, "Olá! Para hoje, tudo tranquilo.", briefing.Text)
	assert.Equal(t, "gemini-2.5-flash", briefing.ModelUsed)
	assert.Equal(t, []string{"gemini-2.5-flash"}, gateway.calls)
	assert.Contains(t, gateway.prompts[0], "Olá! Para hoje, temos a seguinte situação:")
	assert.Contains(t, gateway.prompts[0], `"label": "Lages, SC"`)
}

func TestGenerateFallsBackInOrder(t *testing.T) {
	gateway := &scriptedGateway{
		answers: map[string]string{"gemini-2.0-flash": "briefing", "gemini-1.5-flash": "later"},
		errs: map[string]error{
			"gemini-2.5-flash":      errors.New("quota exceeded"),
			"gemini-2.5-flash-lite": api.ErrEmptyGeneration,
		},
	}
	uc := newTestUseCase(gateway, newMemoryStore())

	briefing, err := uc.Generate(context.Background(), summaries("Lages, SC"), 0)

	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", briefing.ModelUsed)
	assert.Equal(t, []string{"gemini-2.5-flash", "gemini-2.5-flash-lite", "gemini-2.0-flash"}, gateway.calls)
}

func TestGenerateEmptyTextIsFailure(t *testing.T) {
	gateway := &scriptedGateway{answers: map[string]string{
		"gemini-2.5-flash":      "",
		"gemini-2.5-flash-lite": "ok",
	}}
	uc := newTestUseCase(gateway, newMemoryStore())

	briefing, err := uc.Generate(context.Background(), summaries("Lages, SC"), 0)

	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash-lite", briefing.ModelUsed)
}

func TestGenerateAllModelsFail(t *testing.T) {
	gateway := &scriptedGateway{}
	store := newMemoryStore()
	uc := newTestUseCase(gateway, store)

	briefing, err := uc.Generate(context.Background(), summaries("Lages, SC"), 0)

	assert.Nil(t, briefing)
	assert.ErrorIs(t, err, ErrAIUnavailable)
	assert.Equal(t, defaultModels, gateway.calls)
	assert.Empty(t, store.entries)
}

func TestGenerateMissingKeyStopsFallback(t *testing.T) {
	gateway := &scriptedGateway{errs: map[string]error{"gemini-2.5-flash": api.ErrMissingAPIKey}}
	uc := newTestUseCase(gateway, newMemoryStore())

	_, err := uc.Generate(context.Background(), summaries("Lages, SC"), 0)

	assert.ErrorIs(t, err, api.ErrMissingAPIKey)
	assert.NotErrorIs(t, err, ErrAIUnavailable)
	assert.Len(t, gateway.calls, 1)
}

func TestGenerateEmptyBatch(t *testing.T) {
	gateway := &scriptedGateway{}
	uc := newTestUseCase(gateway, newMemoryStore())

	_, err := uc.Generate(context.Background(), nil, 0)

	assert.ErrorIs(t, err, ErrEmptyBatch)
	assert.Empty(t, gateway.calls)
}

func TestGenerateCachedBriefingSkipsProvider(t *testing.T) {
	gateway := &scriptedGateway{answers: map[string]string{"gemini-2.5-flash": "first"}}
	store := newMemoryStore()
	uc := newTestUseCase(gateway, store)

	first, err := uc.Generate(context.Background(), summaries("Lages, SC", "Erechim, RS"), 1)
	require.NoError(t, err)

	key := CacheKey(1, summaries("Erechim, RS", "Lages, SC"))
	assert.Equal(t, 1800*time.Second, store.ttls[key])

	gateway.answers["gemini-2.5-flash"] = "second"
	again, err := uc.Generate(context.Background(), summaries("Erechim, RS", "Lages, SC"), 1)

	require.NoError(t, err)
	assert.Equal(t, first, again)
	assert.Len(t, gateway.calls, 1)
}

func TestGenerateDayOffsetIsPartOfKey(t *testing.T) {
	gateway := &scriptedGateway{answers: map[string]string{"gemini-2.5-flash": "text"}}
	uc := newTestUseCase(gateway, newMemoryStore())

	_, err := uc.Generate(context.Background(), summaries("Lages, SC"), 0)
	require.NoError(t, err)
	_, err = uc.Generate(context.Background(), summaries("Lages, SC"), 1)
	require.NoError(t, err)

	assert.Len(t, gateway.calls, 2)
	assert.Contains(t, gateway.prompts[1], "Olá! Para amanhã, temos a seguinte situação:")
}

func TestGenerateCacheReadError(t *testing.T) {
	gateway := &scriptedGateway{}
	store := newMemoryStore()
	store.getErr = errors.New("connection refused")
	uc := newTestUseCase(gateway, store)

	_, err := uc.Generate(context.Background(), summaries("Lages, SC"), 0)

	assert.ErrorContains(t, err, "connection refused")
	assert.Empty(t, gateway.calls)
}

func TestGenerateCacheWriteErrorStillReturnsBriefing(t *testing.T) {
	gateway := &scriptedGateway{answers: map[string]string{"gemini-2.5-flash": "text"}}
	store := newMemoryStore()
	store.setErr = errors.New("read only")
	uc := newTestUseCase(gateway, store)

	briefing, err := uc.Generate(context.Background(), summaries("Lages, SC"), 0)

	require.NoError(t, err)
	assert.Equal(t, "text", briefing.Text)
}
