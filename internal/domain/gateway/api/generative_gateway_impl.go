package api

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"weather-api/internal/domain/model/external"
	"weather-api/internal/infra/metrics"
	"weather-api/pkg/http"
)

const upstreamGenerative = "generative"

// generativeGatewayImpl implements GenerativeGateway over the Gemini REST API
type generativeGatewayImpl struct {
	httpClient   *http.Client
	apiKey       string
	modelTimeout time.Duration
}

// NewGenerativeGateway creates a new instance of GenerativeGateway. modelTimeout bounds each Generate call
// so a hanging model leaves time for the next one in the fallback list; zero disables it.
func NewGenerativeGateway(baseUrl string, clientOptions http.ClientOptions, apiKey string, modelTimeout time.Duration) GenerativeGateway {
	return &generativeGatewayImpl{
		httpClient:   http.NewHttpClient(baseUrl, clientOptions),
		apiKey:       apiKey,
		modelTimeout: modelTimeout,
	}
}

// Generate sends prompt to model and returns the generated text
func (g *generativeGatewayImpl) Generate(ctx context.Context, model string, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	start := time.Now()
	body := external.GenerateContentRequest{
		Contents: []external.Content{{
			Role:  "user",
			Parts: []external.Part{{Text: prompt}},
		}},
	}

	successResp, errResp, _, err := g.httpClient.Request().
		WithContext(ctx).
		WithTimeout(g.modelTimeout).
		WithMethod(http.POST).
		WithPath(fmt.Sprintf("/v1beta/models/%s:generateContent", url.PathEscape(model))).
		WithHeader("x-goog-api-key", g.apiKey).
		WithBody(body).
		WithSuccessResp(&external.GenerateContentResponse{}).
		WithErrorResp(&external.GeminiErrorResponse{}).
		Execute()

	metrics.RecordUpstream(upstreamGenerative, err, time.Since(start))

	if err != nil {
		if errorResponse, ok := errResp.(*external.GeminiErrorResponse); ok && errorResponse.Error.Message != "" {
			return "", fmt.Errorf("%s %s: %s: %w", upstreamGenerative, model, errorResponse.Error.Message, err)
		}
		return "", fmt.Errorf("%s %s: %w", upstreamGenerative, model, err)
	}

	response := successResp.(*external.GenerateContentResponse)
	text := response.Text()
	if text == "" {
		if response.PromptFeedback != nil && response.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: blocked (%s)", ErrEmptyGeneration, response.PromptFeedback.BlockReason)
		}
		return "", ErrEmptyGeneration
	}

	return text, nil
}
