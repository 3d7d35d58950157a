package http

import (
	"context"
	"encoding/json"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoResponse struct {
	Name string `json:"name"`
}

type apiError struct {
	Reason string `json:"reason"`
}

func TestRequestDecodesSuccess(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/v1/search", r.URL.Path)
		assert.Equal(t, "Passo Fundo", r.URL.Query().Get("name"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(echoResponse{Name: r.URL.Query().Get("name")})
	}))
	defer server.Close()

	client := NewHttpClient(server.URL+"/", ClientOptions{})
	successResp, errResp, status, err := client.Request().
		WithContext(context.Background()).
		WithPath("v1/search").
		WithQueryParams(map[string]string{"name": "Passo Fundo"}).
		WithSuccessResp(&echoResponse{}).
		Execute()

	require.NoError(t, err)
	assert.Nil(t, errResp)
	assert.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "Passo Fundo", successResp.(*echoResponse).Name)
}

func TestRequestReturnsErrorResponse(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(nethttp.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(apiError{Reason: "latitude out of range"})
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{})
	_, errResp, status, err := client.Request().
		WithSuccessResp(&echoResponse{}).
		WithErrorResp(&apiError{}).
		Execute()

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, nethttp.StatusBadRequest, statusErr.StatusCode)
	assert.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, "latitude out of range", errResp.(*apiError).Reason)
}

func TestRequestRetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(nethttp.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(echoResponse{Name: "ok"})
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{
		Backoff: &BackoffConfig{MaxRetries: 2, InitialInterval: time.Millisecond},
	})
	successResp, _, _, err := client.Request().WithSuccessResp(&echoResponse{}).Execute()

	require.NoError(t, err)
	assert.Equal(t, "ok", successResp.(*echoResponse).Name)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRequestDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(nethttp.StatusNotFound)
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{Backoff: NewBackoffConfig(3)})
	_, _, status, err := client.Request().Execute()

	assert.Error(t, err)
	assert.Equal(t, nethttp.StatusNotFound, status)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCircuitBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls int32
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(nethttp.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{
		CircuitBreaker: &CircuitBreakerConfig{Name: "test", ConsecutiveFailures: 2, Timeout: time.Minute},
	})

	for i := 0; i < 2; i++ {
		_, _, status, err := client.Request().Execute()
		assert.Error(t, err)
		assert.Equal(t, nethttp.StatusServiceUnavailable, status)
	}

	_, _, _, err := client.Request().Execute()
	assert.True(t, errors.Is(err, ErrCircuitOpen))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestBuildQueryStringEscapes(t *testing.T) {
	got := buildQueryString(map[string]string{"q": "Joaçaba SC", "count": "1"})
	assert.Equal(t, "count=1&q=Joa%C3%A7aba+SC", got)
}

func TestBackoffDelayIsCapped(t *testing.T) {
	b := &BackoffConfig{InitialInterval: 100 * time.Millisecond, MaxInterval: 300 * time.Millisecond}
	assert.Equal(t, 100*time.Millisecond, b.delay(0))
	assert.Equal(t, 200*time.Millisecond, b.delay(1))
	assert.Equal(t, 300*time.Millisecond, b.delay(2))
}

func TestRequestMergesHeadersAndQueryParams(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "weather-api", r.Header.Get("X-Client"))
		assert.Equal(t, "Lages", r.URL.Query().Get("city"))
		assert.Equal(t, "SC", r.URL.Query().Get("state"))
		assert.Equal(t, "1", r.URL.Query().Get("dayOffset"))
		w.WriteHeader(nethttp.StatusNoContent)
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{})
	_, _, status, err := client.Request().
		WithHeaders(map[string]string{"X-Client": "weather-api"}).
		WithHeader("x-goog-api-key", "key").
		WithQueryParams(map[string]string{"city": "Lages", "dayOffset": "0"}).
		WithQueryParam("state", "SC").
		WithQueryParam("dayOffset", "1").
		Execute()

	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusNoContent, status)
}

func TestRequestTimeoutBoundsTheCall(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewHttpClient(server.URL, ClientOptions{ReadTimeout: 5 * time.Second})
	start := time.Now()
	_, _, _, err := client.Request().
		WithTimeout(50 * time.Millisecond).
		Execute()

	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestRequestRejectsIncompleteRequest(t *testing.T) {
	_, _, _, err := NewHttpClientRequest(nil).Execute()
	assert.ErrorIs(t, err, ErrInvalidRequest)

	client := NewHttpClient("http://127.0.0.1:1", ClientOptions{})
	_, _, _, err = client.Request().WithPath("").Execute()
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, _, _, err = client.Request().WithMethod("").Execute()
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
