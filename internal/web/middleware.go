package web

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/vadimtrunov/MovieBuddy/internal/config"
	"github.com/vadimtrunov/MovieBuddy/internal/metrics"
)

// RequestIDHeader carries the per-request id back to the client.
const RequestIDHeader = "X-Request-ID"

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rr *statusRecorder) WriteHeader(status int) {
	rr.status = status
	rr.ResponseWriter.WriteHeader(status)
}

// requestLogger tags each request with an id, stores a scoped logger in the
// context and logs status and latency once the handler returns.
// Handlers retrieve the logger with config.LoggerFromContext.
func requestLogger(base *slog.Logger, m *metrics.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()

		logger := base.With(
			slog.String("request_id", requestID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
		w.Header().Set(RequestIDHeader, requestID)

		r = r.WithContext(config.ContextWithLogger(r.Context(), logger))
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		logger.Info("request completed",
			slog.Int("status", rec.status),
			slog.Duration("elapsed", elapsed),
		)

		// The mux fills in Pattern on the request it was handed; unmatched
		// paths share one label to keep cardinality bounded.
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(r.Method, route, strconv.Itoa(rec.status), elapsed)
	})
}
