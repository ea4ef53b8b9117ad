// Package middleware contains HTTP middleware for the learner API.
package middleware

import (
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/phrazzld/medfluent/internal/api/shared"
	"github.com/phrazzld/medfluent/internal/platform/logger"
)

var validTraceID = regexp.MustCompile(`^[A-Za-z0-9-]{8,64}$`)

// NewTraceMiddleware tags every request with a trace ID and a request-scoped
// logger carrying it. A well-formed X-Trace-ID header from the caller is
// reused; the ID is echoed on the response.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(shared.TraceIDHeader)
			if !validTraceID.MatchString(traceID) {
				traceID = shared.NewTraceID()
			}

			log := base.With(slog.String("trace_id", traceID))
			ctx := logger.WithLogger(shared.WithTraceID(r.Context(), traceID), log)
			w.Header().Set(shared.TraceIDHeader, traceID)

			start := time.Now()
			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))

			log.Debug("request finished",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		})
	}
}
