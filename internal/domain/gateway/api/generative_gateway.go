package api

import (
	"context"
	"errors"
)

var (
	// ErrMissingAPIKey is returned when the generative provider key is not configured
	ErrMissingAPIKey = errors.New("generative API key is not configured")
	// ErrEmptyGeneration is returned when a model answers without any text
	ErrEmptyGeneration = errors.New("generative model returned no text")
)

// GenerativeGateway defines the interface for the generative-text provider
type GenerativeGateway interface {
	// Generate sends prompt to model and returns the generated text.
	// An empty answer is reported as ErrEmptyGeneration.
	Generate(ctx context.Context, model string, prompt string) (string, error)
}
