// Package metrics provides Prometheus instrumentation for the dashboard.
//
// Inbound HTTP metrics come from the middleware; the WooCommerce gateway
// records every outbound store call. Wire it up once in the route setup:
//
//	r.Use(metrics.Middleware())
//	r.HandleFunc("/metrics", metrics.Handler())
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestDuration tracks how long each inbound HTTP request takes.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "almacen",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts all inbound HTTP requests.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "almacen",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// RequestInFlight tracks how many requests are currently being served.
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "almacen",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	// StoreRequestTotal counts outbound WooCommerce API calls.
	StoreRequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "almacen",
			Subsystem: "woocommerce",
			Name:      "requests_total",
			Help:      "Total outbound WooCommerce API requests.",
		},
		[]string{"endpoint", "method", "status"},
	)

	// StoreRequestDuration tracks outbound WooCommerce call latency.
	StoreRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "almacen",
			Subsystem: "woocommerce",
			Name:      "request_duration_seconds",
			Help:      "Duration of outbound WooCommerce API requests in seconds.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint", "method"},
	)

	// LoginTotal counts login attempts by outcome.
	LoginTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "almacen",
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Total login attempts.",
		},
		[]string{"outcome"}, // "success" | "failed" | "locked"
	)
)

// DefaultRegistry is the Prometheus registry used by the dashboard.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		StoreRequestTotal,
		StoreRequestDuration,
		LoginTotal,
	)
}

// MustRegister adds custom collectors to the registry; panics on conflict.
func MustRegister(c ...prometheus.Collector) {
	DefaultRegistry.MustRegister(c...)
}

// ObserveStoreRequest records one outbound WooCommerce call.
//
//	defer metrics.ObserveStoreRequest("orders", "GET", status, time.Now())
func ObserveStoreRequest(endpoint, method string, status int, start time.Time) {
	StoreRequestTotal.WithLabelValues(endpoint, method, strconv.Itoa(status)).Inc()
	StoreRequestDuration.WithLabelValues(endpoint, method).Observe(time.Since(start).Seconds())
}

// responseRecorder wraps http.ResponseWriter to capture the status code.
type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records Prometheus metrics for every inbound request.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := r.URL.Path

			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rr, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(rr.status)

			RequestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
			RequestTotal.WithLabelValues(r.Method, path, status).Inc()
		})
	}
}

// Handler exposes the Prometheus metrics page. Mount on GET /metrics.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return h.ServeHTTP
}
