// Package http assembles the service's HTTP surface: the shared middleware
// chain, operational endpoints, and the mounted API handlers.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"schwifty/internal/platform/metrics"
	"schwifty/internal/platform/middleware"
)

// requestTimeout bounds every request; validation is CPU-bound and fast, the
// headroom is for directory lookups against slow backends.
const requestTimeout = 10 * time.Second

// Registrar mounts a handler group onto the router.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter builds the full router with the standard middleware chain,
// /healthz, and /metrics. A nil httpMetrics skips request-level metrics.
func NewRouter(logger *slog.Logger, httpMetrics *metrics.HTTP, handlers ...Registrar) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	if httpMetrics != nil {
		r.Use(httpMetrics.Middleware)
	}
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.ContentTypeJSON)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	for _, h := range handlers {
		h.Register(r)
	}
	return r
}
