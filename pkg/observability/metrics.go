package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsConfig configures the metrics provider
type MetricsConfig struct {
	// Service identification
	ServiceName    string
	ServiceVersion string
	Environment    string

	// Prometheus configuration
	MetricsPath string // HTTP path for metrics endpoint (default: /metrics)
	MetricsPort int    // Port for metrics server (default: 9090)

	// Metric options
	Namespace        string    // Prometheus namespace (default: capkit)
	Subsystem        string    // Prometheus subsystem
	HistogramBuckets []float64 // Custom histogram buckets for latency

	// Labels to add to all metrics
	ConstLabels prometheus.Labels

	// Registerer receives the collectors; defaults to the global registerer
	Registerer prometheus.Registerer
}

// MetricsProvider records registry and dispatch metrics
type MetricsProvider interface {
	// RecordDispatch records one completed dispatch with its outcome status
	RecordDispatch(ctx context.Context, capability, status string, duration time.Duration)

	// RecordValidationFailure records a pre-execution validation failure by kind
	RecordValidationFailure(ctx context.Context, capability, kind string)

	// RecordRegistration records a registration attempt outcome
	RecordRegistration(ctx context.Context, status string)

	// DispatchStarted and DispatchFinished track in-flight dispatches
	DispatchStarted(ctx context.Context)
	DispatchFinished(ctx context.Context)

	// Management
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// PrometheusMetricsProvider implements MetricsProvider using Prometheus
type PrometheusMetricsProvider struct {
	config MetricsConfig
	server *http.Server

	dispatchDuration       *prometheus.HistogramVec
	dispatchTotal          *prometheus.CounterVec
	validationFailureTotal *prometheus.CounterVec
	registrationTotal      *prometheus.CounterVec
	activeDispatches       prometheus.Gauge
}

// NewMetricsProvider creates a new Prometheus metrics provider
func NewMetricsProvider(config MetricsConfig) (MetricsProvider, error) {
	// Set defaults
	if config.Namespace == "" {
		config.Namespace = "capkit"
	}
	if config.MetricsPath == "" {
		config.MetricsPath = "/metrics"
	}
	if config.MetricsPort == 0 {
		config.MetricsPort = 9090
	}
	if config.HistogramBuckets == nil {
		// Default buckets for milliseconds
		config.HistogramBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000}
	}
	if config.Registerer == nil {
		config.Registerer = prometheus.DefaultRegisterer
	}

	// Add service labels to const labels
	if config.ConstLabels == nil {
		config.ConstLabels = prometheus.Labels{}
	}
	if config.ServiceName != "" {
		config.ConstLabels["service"] = config.ServiceName
	}
	if config.ServiceVersion != "" {
		config.ConstLabels["version"] = config.ServiceVersion
	}
	if config.Environment != "" {
		config.ConstLabels["environment"] = config.Environment
	}

	provider := &PrometheusMetricsProvider{
		config: config,
	}

	provider.initializeMetrics()

	if err := provider.registerMetrics(); err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	return provider, nil
}

// initializeMetrics creates all metric collectors
func (p *PrometheusMetricsProvider) initializeMetrics() {
	p.dispatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   p.config.Namespace,
			Subsystem:   p.config.Subsystem,
			Name:        "dispatch_duration_milliseconds",
			Help:        "Duration of capability dispatches in milliseconds",
			Buckets:     p.config.HistogramBuckets,
			ConstLabels: p.config.ConstLabels,
		},
		[]string{"capability", "status"},
	)

	p.dispatchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   p.config.Namespace,
			Subsystem:   p.config.Subsystem,
			Name:        "dispatch_total",
			Help:        "Total number of capability dispatches",
			ConstLabels: p.config.ConstLabels,
		},
		[]string{"capability", "status"},
	)

	p.validationFailureTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   p.config.Namespace,
			Subsystem:   p.config.Subsystem,
			Name:        "validation_failure_total",
			Help:        "Total number of argument validation failures by kind",
			ConstLabels: p.config.ConstLabels,
		},
		[]string{"capability", "kind"},
	)

	p.registrationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   p.config.Namespace,
			Subsystem:   p.config.Subsystem,
			Name:        "registration_total",
			Help:        "Total number of capability registration attempts",
			ConstLabels: p.config.ConstLabels,
		},
		[]string{"status"},
	)

	p.activeDispatches = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   p.config.Namespace,
			Subsystem:   p.config.Subsystem,
			Name:        "active_dispatches",
			Help:        "Number of dispatches currently in flight",
			ConstLabels: p.config.ConstLabels,
		},
	)
}

// registerMetrics registers all metrics with Prometheus
func (p *PrometheusMetricsProvider) registerMetrics() error {
	collectors := []prometheus.Collector{
		p.dispatchDuration,
		p.dispatchTotal,
		p.validationFailureTotal,
		p.registrationTotal,
		p.activeDispatches,
	}

	for _, collector := range collectors {
		if err := p.config.Registerer.Register(collector); err != nil {
			// Check if already registered
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}

	return nil
}

// RecordDispatch records one completed dispatch
func (p *PrometheusMetricsProvider) RecordDispatch(ctx context.Context, capability, status string, duration time.Duration) {
	ms := float64(duration.Milliseconds())
	p.dispatchDuration.WithLabelValues(capability, status).Observe(ms)
	p.dispatchTotal.WithLabelValues(capability, status).Inc()
}

// RecordValidationFailure records a pre-execution validation failure
func (p *PrometheusMetricsProvider) RecordValidationFailure(ctx context.Context, capability, kind string) {
	p.validationFailureTotal.WithLabelValues(capability, kind).Inc()
}

// RecordRegistration records a registration attempt outcome
func (p *PrometheusMetricsProvider) RecordRegistration(ctx context.Context, status string) {
	p.registrationTotal.WithLabelValues(status).Inc()
}

// DispatchStarted increments the in-flight dispatch gauge
func (p *PrometheusMetricsProvider) DispatchStarted(ctx context.Context) {
	p.activeDispatches.Inc()
}

// DispatchFinished decrements the in-flight dispatch gauge
func (p *PrometheusMetricsProvider) DispatchFinished(ctx context.Context) {
	p.activeDispatches.Dec()
}

// Start starts the metrics HTTP server
func (p *PrometheusMetricsProvider) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle(p.config.MetricsPath, promhttp.Handler())

	p.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", p.config.MetricsPort),
		Handler: mux,
	}

	go func() {
		_ = p.server.ListenAndServe()
	}()

	return nil
}

// Shutdown gracefully shuts down the metrics server
func (p *PrometheusMetricsProvider) Shutdown(ctx context.Context) error {
	if p.server != nil {
		return p.server.Shutdown(ctx)
	}
	return nil
}
