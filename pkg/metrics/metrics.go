package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const defaultNamespace = "simulator"

// Recorder exports simulator telemetry to Prometheus. A nil Recorder drops everything.
type Recorder struct {
	projections        prometheus.Counter
	projectionDuration prometheus.Histogram
	cacheHits          prometheus.Counter
	validationFailures *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec
	wsConnections      prometheus.Gauge
}

// NewRecorder registers the simulator collectors with reg.
func NewRecorder(namespace string, reg prometheus.Registerer) (*Recorder, error) {
	if namespace == "" {
		namespace = defaultNamespace
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	r := &Recorder{
		projections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "projections_total",
			Help:      "Number of projections computed by the engine.",
		}),
		projectionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "projection_duration_seconds",
			Help:      "Time spent computing a single projection.",
			Buckets:   []float64{1e-6, 5e-6, 1e-5, 5e-5, 1e-4, 5e-4, 1e-3},
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "projection_cache_hits_total",
			Help:      "Projections served from the result cache.",
		}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Inputs rejected before reaching the engine.",
		}, []string{"source"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		wsConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_connections",
			Help:      "Open simulation sockets.",
		}),
	}

	collectors := []prometheus.Collector{
		r.projections, r.projectionDuration, r.cacheHits,
		r.validationFailures, r.httpRequests, r.wsConnections,
	}
	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("register simulator metric: %w", err)
		}
	}
	return r, nil
}

func (r *Recorder) ObserveProjection(duration time.Duration) {
	if r == nil {
		return
	}
	r.projections.Inc()
	r.projectionDuration.Observe(duration.Seconds())
}

func (r *Recorder) CacheHit() {
	if r == nil {
		return
	}
	r.cacheHits.Inc()
}

// ValidationFailed counts a rejected input by entry point ("http", "websocket", "scenario").
func (r *Recorder) ValidationFailed(source string) {
	if r == nil {
		return
	}
	r.validationFailures.WithLabelValues(source).Inc()
}

func (r *Recorder) ObserveRequest(method, route string, status int) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func (r *Recorder) ConnectionOpened() {
	if r == nil {
		return
	}
	r.wsConnections.Inc()
}

func (r *Recorder) ConnectionClosed() {
	if r == nil {
		return
	}
	r.wsConnections.Dec()
}
