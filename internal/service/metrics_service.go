package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the backend.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	parseDuration   *prometheus.HistogramVec
	parseTotal      *prometheus.CounterVec
	floorplanHits   prometheus.Counter
	floorplanMisses prometheus.Counter
	cleanupTotal    prometheus.Counter
}

// NewMetricsService registers the backend's Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	parseDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "schedule_parse_duration_seconds",
		Help:    "Duration of schedule parsing by ingestion source",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})

	parseTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_parse_total",
		Help: "Total schedule parse attempts by ingestion source and outcome",
	}, []string{"source", "outcome"})

	floorplanHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "floorplan_resolutions_total",
		Help: "Occurrences resolved to a floorplan asset",
	})

	floorplanMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "floorplan_misses_total",
		Help: "Occurrences with no matching floorplan asset",
	})

	cleanupTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "session_cleanups_total",
		Help: "Per-tab cleanup requests handled",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, parseDuration, parseTotal, floorplanHits, floorplanMisses, cleanupTotal, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		parseDuration:   parseDuration,
		parseTotal:      parseTotal,
		floorplanHits:   floorplanHits,
		floorplanMisses: floorplanMisses,
		cleanupTotal:    cleanupTotal,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveParse records one schedule parse attempt.
func (m *MetricsService) ObserveParse(source string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.parseDuration.WithLabelValues(source).Observe(duration.Seconds())
	m.parseTotal.WithLabelValues(source, outcome).Inc()
}

// RecordFloorplanResolution counts a floorplan lookup result.
func (m *MetricsService) RecordFloorplanResolution(found bool) {
	if m == nil {
		return
	}
	if found {
		m.floorplanHits.Inc()
	} else {
		m.floorplanMisses.Inc()
	}
}

// RecordCleanup counts a handled cleanup request.
func (m *MetricsService) RecordCleanup() {
	if m == nil {
		return
	}
	m.cleanupTotal.Inc()
}
