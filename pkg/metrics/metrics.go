package metrics

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
	"github.com/mchmarny/churnpulse/pkg/customer"
	"github.com/mchmarny/churnpulse/pkg/view"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace      = "churnpulse"
	unmatchedRoute = "unmatched"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	predictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Rendered predictions by model and risk tier",
		},
		[]string{"model", "tier"},
	)

	rejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Rejected submissions by failure kind and field",
		},
		[]string{"kind", "field"},
	)
)

// Handler serves the registered metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records latency and count of every request, labeled with the
// matched route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)

		path := r.Pattern
		if path == "" {
			path = unmatchedRoute
		}
		status := strconv.Itoa(m.Code)

		httpRequestDuration.WithLabelValues(r.Method, path, status).Observe(m.Duration.Seconds())
		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()

		slog.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", m.Code,
			"duration", m.Duration,
		)
	})
}

// Observer counts submission outcomes.
type Observer struct{}

func (Observer) Predicted(m view.Model) {
	for _, c := range m.Predictions {
		predictionsTotal.WithLabelValues(string(c.Model), c.Tier.Class()).Inc()
	}
}

func (Observer) Rejected(err *customer.ValidationError) {
	rejectionsTotal.WithLabelValues(string(err.Kind), err.Field).Inc()
}
