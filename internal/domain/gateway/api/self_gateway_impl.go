package api

import (
	"context"
	"strconv"
	"strings"
	"time"

	"weather-api/internal/domain/entity"
	"weather-api/internal/infra/metrics"
	"weather-api/pkg/http"
)

const upstreamSelf = "self"

// selfGatewayImpl implements SelfGateway over HTTP
type selfGatewayImpl struct {
	httpClient *http.Client
}

// NewSelfGateway creates a new instance of SelfGateway
func NewSelfGateway(baseUrl string, clientOptions http.ClientOptions) SelfGateway {
	return &selfGatewayImpl{
		httpClient: http.NewHttpClient(baseUrl, clientOptions),
	}
}

// ResolveSelfBaseURL returns https://deploymentURL when a deployment URL is known (an explicit scheme is kept),
// otherwise the local listener. The context path is appended in both cases.
func ResolveSelfBaseURL(deploymentURL, port, contextPath string) string {
	contextPath = strings.Trim(strings.TrimSpace(contextPath), "/")
	if contextPath != "" {
		contextPath = "/" + contextPath
	}

	deploymentURL = strings.TrimRight(strings.TrimSpace(deploymentURL), "/")
	if deploymentURL != "" {
		if !strings.HasPrefix(deploymentURL, "http://") && !strings.HasPrefix(deploymentURL, "https://") {
			deploymentURL = "https://" + deploymentURL
		}
		return deploymentURL + contextPath
	}

	return "http://localhost:" + port + contextPath
}

// WarmWeather requests GET /weather for the city
func (s *selfGatewayImpl) WarmWeather(ctx context.Context, city entity.City, dayOffset int) (int, error) {
	request := s.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath("/weather").
		WithQueryParam("city", city.Name).
		WithQueryParam("state", city.StateCode).
		WithQueryParam("dayOffset", strconv.Itoa(dayOffset))
	if city.HasCoordinates() {
		request.
			WithQueryParam("lat", strconv.FormatFloat(*city.Latitude, 'f', -1, 64)).
			WithQueryParam("lon", strconv.FormatFloat(*city.Longitude, 'f', -1, 64))
	}

	start := time.Now()
	_, _, status, err := request.Execute()

	metrics.RecordUpstream(upstreamSelf, err, time.Since(start))

	return status, err
}
