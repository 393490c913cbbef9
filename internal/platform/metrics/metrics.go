// Package metrics carries the transport-level Prometheus metrics and the
// middleware that records them. Domain metrics live next to their services.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP holds the request-level metrics.
type HTTP struct {
	RequestsTotal     *prometheus.CounterVec
	RequestDurationMs prometheus.Histogram
}

// NewHTTP creates and registers the request-level metrics.
func NewHTTP() *HTTP {
	return &HTTP{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "schwifty_http_requests_total",
			Help: "Total HTTP requests by method and status",
		}, []string{"method", "status"}),
		RequestDurationMs: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "schwifty_http_request_duration_ms",
			Help:    "Latency of HTTP requests in milliseconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250},
		}),
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware records one observation per request.
func (m *HTTP) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		m.RequestsTotal.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
		m.RequestDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	})
}
