package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipeshare_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipeshare_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	authAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipeshare_auth_attempts_total",
			Help: "Signup and login attempts by outcome",
		},
		[]string{"op", "outcome"},
	)

	recipeMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipeshare_recipe_mutations_total",
			Help: "Successful recipe creates, updates and deletes",
		},
		[]string{"op"},
	)
)

// Metrics returns a middleware that records Prometheus request metrics.
func Metrics() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			path := routePattern(r)
			httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(status)).Inc()
			httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}

// routePattern keeps label cardinality bounded by using the matched chi
// pattern instead of the raw path.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// RecordAuthAttempt counts a signup or login attempt. A nil err counts as
// success.
func RecordAuthAttempt(op string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	authAttemptsTotal.WithLabelValues(op, outcome).Inc()
}

// RecordRecipeMutation counts a successful create, update or delete.
func RecordRecipeMutation(op string) {
	recipeMutationsTotal.WithLabelValues(op).Inc()
}
