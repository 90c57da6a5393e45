package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/igorsal/api-console/internal/interfaces"
)

const namespace = "api_console"

// PrometheusCollector implements the MetricsCollector interface using Prometheus
type PrometheusCollector struct {
	factory    promauto.Factory
	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec
	gauges     map[string]*prometheus.GaugeVec
}

// NewPrometheusCollector creates a collector registering on reg. Pass
// prometheus.DefaultRegisterer to expose metrics through promhttp.Handler.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	collector := &PrometheusCollector{
		factory:    promauto.With(reg),
		counters:   make(map[string]*prometheus.CounterVec),
		histograms: make(map[string]*prometheus.HistogramVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
	}

	collector.initializeMetrics()

	return collector
}

var _ interfaces.MetricsCollector = (*PrometheusCollector)(nil)

func (p *PrometheusCollector) initializeMetrics() {
	// HTTP request metrics
	p.RegisterCustomCounter("http_requests_total", "Total number of HTTP requests",
		[]string{"method", "endpoint", "status_code"})
	p.RegisterCustomHistogram("http_request_duration_seconds", "HTTP request duration in seconds",
		[]string{"method", "endpoint", "status_code"}, nil)

	// Upstream calls
	p.RegisterCustomCounter("upstream_requests_total", "Total number of upstream calls",
		[]string{"method", "outcome"})
	p.RegisterCustomHistogram("upstream_request_duration_seconds", "Upstream call duration in seconds",
		[]string{"method", "outcome"}, []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0})

	// Bulk import
	p.RegisterCustomCounter("bulk_items_total", "Bulk import items processed",
		[]string{"kind", "status"})
	p.RegisterCustomHistogram("bulk_run_duration_seconds", "Bulk import run duration in seconds",
		[]string{"kind"}, []float64{1.0, 5.0, 15.0, 30.0, 60.0, 300.0, 900.0})
	p.RegisterCustomGauge("bulk_progress_ratio", "Fraction of the current bulk run completed",
		[]string{"kind"})

	// Circuit breaker metrics
	p.RegisterCustomGauge("circuit_breaker_state", "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		[]string{"name"})
}

// IncrementCounter increments a counter metric
func (p *PrometheusCollector) IncrementCounter(name string, labels map[string]string) {
	counter, exists := p.counters[name]
	if !exists {
		return
	}

	counter.With(labels).Inc()
}

// RecordDuration records a duration in a histogram
func (p *PrometheusCollector) RecordDuration(name string, duration float64, labels map[string]string) {
	histogram, exists := p.histograms[name]
	if !exists {
		return
	}

	histogram.With(labels).Observe(duration)
}

// SetGauge sets a gauge value
func (p *PrometheusCollector) SetGauge(name string, value float64, labels map[string]string) {
	gauge, exists := p.gauges[name]
	if !exists {
		return
	}

	gauge.With(labels).Set(value)
}

// RegisterCustomCounter registers a new counter metric
func (p *PrometheusCollector) RegisterCustomCounter(name, help string, labels []string) {
	if _, exists := p.counters[name]; exists {
		return
	}

	p.counters[name] = p.factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

// RegisterCustomHistogram registers a new histogram metric
func (p *PrometheusCollector) RegisterCustomHistogram(name, help string, labels []string, buckets []float64) {
	if _, exists := p.histograms[name]; exists {
		return
	}

	if buckets == nil {
		buckets = prometheus.DefBuckets
	}

	p.histograms[name] = p.factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
}

// RegisterCustomGauge registers a new gauge metric
func (p *PrometheusCollector) RegisterCustomGauge(name, help string, labels []string) {
	if _, exists := p.gauges[name]; exists {
		return
	}

	p.gauges[name] = p.factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}
