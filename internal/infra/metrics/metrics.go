package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_api_requests_total",
			Help: "Total requests by route, method and status.",
		},
		[]string{"route", "method", "status"},
	)

	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_api_cache_lookups_total",
			Help: "Cache lookups by cache name and result (hit or miss).",
		},
		[]string{"cache", "result"},
	)

	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_api_upstream_requests_total",
			Help: "Outbound calls by upstream and outcome.",
		},
		[]string{"upstream", "outcome"},
	)

	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weather_api_upstream_latency_seconds",
			Help:    "Outbound call latency by upstream.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"upstream"},
	)

	ModelAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_api_generative_attempts_total",
			Help: "Generative model attempts by model and outcome.",
		},
		[]string{"model", "outcome"},
	)

	WarmUpCities = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_api_warmup_cities_total",
			Help: "Cities warmed by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(RequestCounter, CacheLookups, UpstreamRequests, UpstreamLatency, ModelAttempts, WarmUpCities)
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordRequest counts a served request
func RecordRequest(route, method string, status int) {
	RequestCounter.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
}

// RecordCacheLookup counts a hit or a miss on the named cache
func RecordCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(cache, result).Inc()
}

// RecordUpstream counts an outbound call and observes its latency
func RecordUpstream(upstream string, err error, elapsed time.Duration) {
	UpstreamRequests.WithLabelValues(upstream, outcome(err)).Inc()
	UpstreamLatency.WithLabelValues(upstream).Observe(elapsed.Seconds())
}

// RecordModelAttempt counts one generative model call
func RecordModelAttempt(model string, err error) {
	ModelAttempts.WithLabelValues(model, outcome(err)).Inc()
}

// RecordWarmUp counts one warmed city
func RecordWarmUp(success bool) {
	if success {
		WarmUpCities.WithLabelValues(OutcomeSuccess).Inc()
		return
	}
	WarmUpCities.WithLabelValues(OutcomeFailure).Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
