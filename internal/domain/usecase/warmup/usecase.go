package warmup

import (
	"context"
	"errors"

	"weather-api/internal/domain/model"
)

// ErrNoCities is returned when there is nothing to warm
var ErrNoCities = errors.New("no seed cities configured")

type UseCase interface {
	// WarmUp requests today's forecast of every seed city through the public endpoint.
	// Per-city failures are reported in the result and never abort the run.
	WarmUp(ctx context.Context) (*model.WarmUpReport, error)
}
