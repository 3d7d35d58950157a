package http

import (
	"net/url"

	"go.uber.org/zap"

	"weather-api/pkg/log"
	"weather-api/pkg/msg"
)

// HTTPLogger interface defines methods for logging HTTP requests and responses
type HTTPLogger interface {
	// LogRequest is called before the request is sent with all request data formed
	LogRequest(method, url string, headers map[string]string, body string)

	// LogResponseSuccess is called immediately after receiving a successful response (non-error HTTP status)
	LogResponseSuccess(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64)

	// LogResponseError is called immediately after receiving an error response (error HTTP status)
	LogResponseError(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64, err error)

	// LogRequestRetry is called when backoff exists and a retry attempt is about to be made
	LogRequestRetry(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64, err error, retryCount, maxRetries int)
}

// ZapLogger writes outbound calls to pkg/log. Query strings are dropped since they may carry API keys.
type ZapLogger struct {
	Upstream string
}

func (l ZapLogger) LogRequest(method, rawURL string, _ map[string]string, _ string) {
	log.Debug(msg.GetMessage("http.request", method, redact(rawURL)), zap.String("upstream", l.Upstream))
}

func (l ZapLogger) LogResponseSuccess(method, rawURL string, _ map[string]string, _ string, httpStatus int, _ string, latency int64) {
	log.Debug(msg.GetMessage("http.response-success", method, redact(rawURL), httpStatus, latency),
		zap.String("upstream", l.Upstream),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency))
}

func (l ZapLogger) LogResponseError(method, rawURL string, _ map[string]string, _ string, httpStatus int, _ string, latency int64, err error) {
	log.Warn(msg.GetMessage("http.response-error", method, redact(rawURL), httpStatus, latency, errString(err)),
		zap.String("upstream", l.Upstream),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency))
}

func (l ZapLogger) LogRequestRetry(method, rawURL string, _ map[string]string, _ string, httpStatus int, _ string, _ int64, err error, retryCount, maxRetries int) {
	log.Warn(msg.GetMessage("http.retry", method, redact(rawURL), retryCount, maxRetries, httpStatus, errString(err)),
		zap.String("upstream", l.Upstream))
}

func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.RawQuery = ""
	return u.String()
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
