package warmup

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-api/internal/domain/entity"
)

type fakeSelfGateway struct {
	mu       sync.Mutex
	statuses map[string]int
	errs     map[string]error
	warmed   []string
	offsets  []int
	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (g *fakeSelfGateway) WarmWeather(_ context.Context, city entity.City, dayOffset int) (int, error) {
	current := g.inFlight.Add(1)
	defer g.inFlight.Add(-1)
	for {
		peak := g.peak.Load()
		if current <= peak || g.peak.CompareAndSwap(peak, current) {
			break
		}
	}
	time.Sleep(g.delay)

	g.mu.Lock()
	g.warmed = append(g.warmed, city.Label())
	g.offsets = append(g.offsets, dayOffset)
	g.mu.Unlock()

	if err := g.errs[city.Label()]; err != nil {
		return 0, err
	}
	if status, ok := g.statuses[city.Label()]; ok {
		return status, nil
	}
	return http.StatusOK, nil
}

func seed() entity.Cities {
	return entity.Cities{
		entity.NewCity("Chapeco", "SC", nil, nil),
		entity.NewCity("Lages", "SC", nil, nil),
		entity.NewCity("Erechim", "RS", nil, nil),
		entity.NewCity("Vacaria", "RS", nil, nil),
	}
}

func TestWarmUpAllSucceed(t *testing.T) {
	gateway := &fakeSelfGateway{}
	uc := NewWarmUpUseCase(gateway, seed(), 4)

	report, err := uc.WarmUp(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 4, report.Succeeded)
	assert.Equal(t, 0, report.Failed)
	assert.ElementsMatch(t, []string{"Chapeco, SC", "Lages, SC", "Erechim, RS", "Vacaria, RS"}, gateway.warmed)
	assert.Equal(t, []int{0, 0, 0, 0}, gateway.offsets)
}

func TestWarmUpFailuresAreIsolated(t *testing.T) {
	gateway := &fakeSelfGateway{
		errs:     map[string]error{"Lages, SC": errors.New("connection reset")},
		statuses: map[string]int{"Erechim, RS": http.StatusInternalServerError},
	}
	uc := NewWarmUpUseCase(gateway, seed(), 2)

	report, err := uc.WarmUp(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 2, report.Failed)
	require.Len(t, report.Results, 4)

	// results keep the seed order
	assert.Equal(t, "Chapeco", report.Results[0].City)
	assert.True(t, report.Results[0].Success)
	assert.Equal(t, "Lages", report.Results[1].City)
	assert.False(t, report.Results[1].Success)
	assert.Equal(t, "connection reset", report.Results[1].Error)
	assert.Equal(t, http.StatusInternalServerError, report.Results[2].Status)
	assert.Equal(t, "unexpected status 500", report.Results[2].Error)
	assert.True(t, report.Results[3].Success)
}

func TestWarmUpRespectsFanoutLimit(t *testing.T) {
	gateway := &fakeSelfGateway{delay: 20 * time.Millisecond}
	uc := NewWarmUpUseCase(gateway, seed(), 2)

	_, err := uc.WarmUp(context.Background())

	require.NoError(t, err)
	assert.LessOrEqual(t, gateway.peak.Load(), int32(2))
}

func TestWarmUpNoCities(t *testing.T) {
	uc := NewWarmUpUseCase(&fakeSelfGateway{}, nil, 2)

	_, err := uc.WarmUp(context.Background())

	assert.ErrorIs(t, err, ErrNoCities)
}
