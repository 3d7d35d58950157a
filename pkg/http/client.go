package http

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	charsetpkg "golang.org/x/net/html/charset"
)

// ErrCircuitOpen is returned while the client's circuit breaker rejects calls.
var ErrCircuitOpen = errors.New("circuit breaker open")

// StatusError is returned when the server answers with a non 2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http error: status %d", e.StatusCode)
}

// Client represents an HTTP client with configuration options.
type Client struct {
	baseURL            string
	client             *http.Client
	dismiss404         bool
	defaultHeaders     map[string]string
	defaultContentType string
	backoff            *BackoffConfig
	breaker            *gobreaker.CircuitBreaker
	logger             HTTPLogger
}

// ClientOptions represents the configuration options for the HTTP client.
type ClientOptions struct {
	FollowRedirect      bool
	Dismiss404          bool
	DefaultHeaders      map[string]string
	DefaultContentType  string
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
	ConnectionTimeout   time.Duration
	ReadTimeout         time.Duration
	// Backoff is the default retry policy, overridable per request
	Backoff *BackoffConfig
	// CircuitBreaker enables a breaker shared by every request of the client
	CircuitBreaker *CircuitBreakerConfig
	// Logger receives request/response events, nil disables logging
	Logger HTTPLogger
	// Transport replaces the default transport, mostly for tests
	Transport http.RoundTripper
}

// CircuitBreakerConfig configures the client circuit breaker.
type CircuitBreakerConfig struct {
	Name string
	// MaxRequests allowed while half-open
	MaxRequests uint32
	// Interval clears the closed state counts, zero never clears
	Interval time.Duration
	// Timeout is how long the breaker stays open
	Timeout time.Duration
	// ConsecutiveFailures trips the breaker
	ConsecutiveFailures uint32
}

// NewHttpClient creates a new HTTP client with the given base URL and configuration options.
func NewHttpClient(baseURL string, opts ClientOptions) *Client {
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = 200
	}
	if opts.MaxIdleConnsPerHost == 0 {
		opts.MaxIdleConnsPerHost = 20
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 10 * time.Second
	}
	if opts.ConnectionTimeout == 0 {
		opts.ConnectionTimeout = 5 * time.Second
	}
	if opts.DefaultContentType == "" {
		opts.DefaultContentType = "application/json"
	}

	transport := opts.Transport
	if transport == nil {
		transport = &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        opts.MaxIdleConns,
			MaxIdleConnsPerHost: opts.MaxIdleConnsPerHost,
			IdleConnTimeout:     opts.IdleConnTimeout,
			DialContext: (&net.Dialer{
				Timeout: opts.ConnectionTimeout,
			}).DialContext,
		}
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   opts.ReadTimeout,
	}

	if !opts.FollowRedirect {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return &Client{
		baseURL:            strings.TrimRight(baseURL, "/"),
		client:             client,
		dismiss404:         opts.Dismiss404,
		defaultHeaders:     opts.DefaultHeaders,
		defaultContentType: opts.DefaultContentType,
		backoff:            opts.Backoff,
		breaker:            newCircuitBreaker(opts.CircuitBreaker),
		logger:             opts.Logger,
	}
}

func newCircuitBreaker(cfg *CircuitBreakerConfig) *gobreaker.CircuitBreaker {
	if cfg == nil {
		return nil
	}

	failures := cfg.ConsecutiveFailures
	if failures == 0 {
		failures = 5
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
	})
}

// BaseURL returns the normalized base URL of the client.
func (hc *Client) BaseURL() string {
	return hc.baseURL
}

// Request creates a new Request object for the client.
func (hc *Client) Request() *Request {
	return NewHttpClientRequest(hc)
}

// Get sends a GET request to the specified path with optional query parameters, headers, and response types.
// It returns the success response, error response, status code, and error if any.
func (hc *Client) Get(ctx context.Context, path string, queryParams map[string]string, headers map[string]string, successResp any, errorResp any) (any, any, int, error) {
	return hc.doRequestWithBackoff(ctx, http.MethodGet, path, queryParams, headers, nil, successResp, errorResp, nil)
}

// Post sends a POST request to the specified path with optional query parameters, headers, and response types.
// It returns the success response, error response, status code, and error if any.
func (hc *Client) Post(ctx context.Context, path string, queryParams map[string]string, headers map[string]string, body any, successResp any, errorResp any) (any, any, int, error) {
	return hc.doRequestWithBackoff(ctx, http.MethodPost, path, queryParams, headers, body, successResp, errorResp, nil)
}

// rawResponse is what a single attempt produced before decoding
type rawResponse struct {
	status      int
	body        []byte
	contentType string
}

// doRequestWithBackoff sends the request, retrying transport failures, 429 and 5xx answers
// according to the backoff policy, and decodes the final answer into successResp or errorResp.
func (hc *Client) doRequestWithBackoff(ctx context.Context, method, path string, queryParams map[string]string, headers map[string]string, body any, successResp any, errorResp any, backoff *BackoffConfig) (any, any, int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if backoff == nil {
		backoff = hc.backoff
	}

	fullURL := hc.buildURL(path)
	if len(queryParams) > 0 {
		fullURL += "?" + buildQueryString(queryParams)
	}

	payload, contentType, err := hc.encodeBody(body)
	if err != nil {
		return nil, nil, 0, err
	}

	reqHeaders := hc.mergeHeaders(headers, contentType)
	maxRetries := backoff.maxRetries()

	var raw *rawResponse
	for attempt := 0; ; attempt++ {
		if hc.logger != nil {
			hc.logger.LogRequest(method, fullURL, reqHeaders, string(payload))
		}

		start := time.Now()
		raw, err = hc.execute(ctx, method, fullURL, reqHeaders, payload)
		latency := time.Since(start).Milliseconds()

		if !shouldRetry(raw, err) || attempt >= maxRetries || ctx.Err() != nil {
			hc.logOutcome(method, fullURL, reqHeaders, payload, raw, latency, err)
			break
		}

		if hc.logger != nil {
			status, respBody := 0, ""
			if raw != nil {
				status, respBody = raw.status, string(raw.body)
			}
			hc.logger.LogRequestRetry(method, fullURL, reqHeaders, string(payload), status, respBody, latency, err, attempt+1, maxRetries)
		}

		timer := time.NewTimer(backoff.delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, nil, 0, ctx.Err()
		case <-timer.C:
		}
	}

	if err != nil {
		return nil, nil, 0, err
	}

	return hc.decode(raw, successResp, errorResp)
}

// execute runs one attempt through the circuit breaker when one is configured
func (hc *Client) execute(ctx context.Context, method, fullURL string, headers map[string]string, payload []byte) (*rawResponse, error) {
	if hc.breaker == nil {
		return hc.roundTrip(ctx, method, fullURL, headers, payload)
	}

	// 4xx answers are returned through the breaker as successes so they do not trip it.
	result, err := hc.breaker.Execute(func() (interface{}, error) {
		raw, err := hc.roundTrip(ctx, method, fullURL, headers, payload)
		if err != nil {
			return nil, err
		}
		if raw.status == http.StatusTooManyRequests || raw.status >= 500 {
			return raw, &StatusError{StatusCode: raw.status, Body: string(raw.body)}
		}
		return raw, nil
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return result.(*rawResponse), nil
	}
	if err != nil {
		return nil, err
	}
	return result.(*rawResponse), nil
}

func (hc *Client) roundTrip(ctx context.Context, method, fullURL string, headers map[string]string, payload []byte) (*rawResponse, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := hc.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &rawResponse{
		status:      resp.StatusCode,
		body:        bodyBytes,
		contentType: resp.Header.Get("Content-Type"),
	}, nil
}

// decode unmarshals the final answer into the success or error target
func (hc *Client) decode(raw *rawResponse, successResp any, errorResp any) (any, any, int, error) {
	respContentType := raw.contentType
	if respContentType == "" {
		respContentType = hc.defaultContentType
	}

	if raw.status >= 200 && raw.status < 300 {
		if successResp != nil {
			if err := hc.unmarshalResponse(raw.body, respContentType, successResp); err != nil {
				return nil, nil, raw.status, fmt.Errorf("failed to decode response: %w", err)
			}
		}
		return successResp, nil, raw.status, nil
	}

	if raw.status == http.StatusNotFound && hc.dismiss404 {
		return nil, nil, raw.status, nil
	}

	statusErr := &StatusError{StatusCode: raw.status, Body: string(raw.body)}
	if errorResp != nil && len(raw.body) > 0 {
		if err := hc.unmarshalResponse(raw.body, respContentType, errorResp); err != nil {
			return nil, nil, raw.status, statusErr
		}
		return nil, errorResp, raw.status, statusErr
	}

	return nil, nil, raw.status, statusErr
}

func (hc *Client) logOutcome(method, fullURL string, headers map[string]string, payload []byte, raw *rawResponse, latency int64, err error) {
	if hc.logger == nil {
		return
	}

	if err != nil {
		hc.logger.LogResponseError(method, fullURL, headers, string(payload), 0, "", latency, err)
		return
	}
	if raw.status >= 200 && raw.status < 300 {
		hc.logger.LogResponseSuccess(method, fullURL, headers, string(payload), raw.status, string(raw.body), latency)
		return
	}
	hc.logger.LogResponseError(method, fullURL, headers, string(payload), raw.status, string(raw.body), latency,
		&StatusError{StatusCode: raw.status})
}

// encodeBody serializes the request body according to its type and the client content type
func (hc *Client) encodeBody(body any) ([]byte, string, error) {
	if body == nil {
		return nil, "", nil
	}

	switch b := body.(type) {
	case string:
		return []byte(b), "text/plain", nil
	case []byte:
		return b, "application/octet-stream", nil
	}

	switch hc.defaultContentType {
	case "application/xml":
		xmlBody, err := xml.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal request body to XML: %w", err)
		}
		return xmlBody, "application/xml", nil
	default:
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal request body to JSON: %w", err)
		}
		return jsonBody, "application/json", nil
	}
}

func (hc *Client) mergeHeaders(headers map[string]string, contentType string) map[string]string {
	merged := make(map[string]string, len(hc.defaultHeaders)+len(headers)+1)
	if contentType != "" {
		merged["Content-Type"] = contentType
	}
	for k, v := range hc.defaultHeaders {
		merged[k] = v
	}
	for k, v := range headers {
		merged[k] = v
	}
	return merged
}

// unmarshalResponse unmarshals response body based on content type
func (hc *Client) unmarshalResponse(bodyBytes []byte, contentType string, target any) error {
	mainContentType := strings.TrimSpace(strings.Split(contentType, ";")[0])

	switch mainContentType {
	case "application/xml", "text/xml":
		dec := xml.NewDecoder(bytes.NewReader(bodyBytes))
		dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
			return charsetpkg.NewReaderLabel(charset, input)
		}
		return dec.Decode(target)
	case "text/plain":
		if strPtr, ok := target.(*string); ok {
			*strPtr = string(bodyBytes)
			return nil
		}
		return json.Unmarshal(bodyBytes, target)
	default:
		return json.Unmarshal(bodyBytes, target)
	}
}

// buildURL builds a normalized URL by properly handling baseURL and path
func (hc *Client) buildURL(path string) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return hc.baseURL + path
}

// buildQueryString builds an escaped query string from parameters, sorted by key
func buildQueryString(params map[string]string) string {
	values := url.Values{}
	for key, value := range params {
		values.Set(key, value)
	}
	return values.Encode()
}

func shouldRetry(raw *rawResponse, err error) bool {
	if err != nil {
		return !errors.Is(err, ErrCircuitOpen) && !errors.Is(err, context.Canceled)
	}
	return raw.status == http.StatusTooManyRequests || raw.status >= 500
}
