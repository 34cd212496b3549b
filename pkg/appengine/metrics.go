package appengine

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsStartTimeKey = "start_time"

// Metrics holds the Prometheus collectors for API calls.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMetrics creates the request collectors and registers them with reg.
// Collectors already registered by an earlier client are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "appengine_client",
		Name:      "requests_total",
		Help:      "Number of App Engine Admin API calls by operation and status code.",
	}, []string{"operation", "code"})

	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "appengine_client",
		Name:      "request_duration_seconds",
		Help:      "Latency of App Engine Admin API calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	var err error

	requests, err = register(reg, requests)
	if err != nil {
		return nil, err
	}

	latency, err = register(reg, latency)
	if err != nil {
		return nil, err
	}

	return &Metrics{requests: requests, latency: latency}, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, collector T) (T, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var alreadyRegistered prometheus.AlreadyRegisteredError
	if errors.As(err, &alreadyRegistered) {
		if existing, ok := alreadyRegistered.ExistingCollector.(T); ok {
			return existing, nil
		}
	}

	return collector, fmt.Errorf("registering metrics: %w", err)
}

// Requests exposes the request counter.
func (m *Metrics) Requests() *prometheus.CounterVec {
	return m.requests
}

// Latency exposes the latency histogram.
func (m *Metrics) Latency() *prometheus.HistogramVec {
	return m.latency
}

// MetricsRequestInterceptor records the request start time.
func MetricsRequestInterceptor(_ *Metrics) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Metadata == nil {
			req.Metadata = make(map[string]interface{})
		}

		req.Metadata[metricsStartTimeKey] = time.Now()

		return nil
	}
}

// MetricsResponseInterceptor records the call count and latency. Calls that
// never produced a status are counted under code "error".
func MetricsResponseInterceptor(metrics *Metrics) ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		code := "error"
		if resp.StatusCode > 0 {
			code = strconv.Itoa(resp.StatusCode)
		}

		metrics.requests.WithLabelValues(req.Operation, code).Inc()

		if startTime, ok := req.Metadata[metricsStartTimeKey].(time.Time); ok {
			metrics.latency.WithLabelValues(req.Operation).Observe(time.Since(startTime).Seconds())
		}

		return nil
	}
}
