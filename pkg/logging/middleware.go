package logging

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestIDMiddleware adds a request ID to each HTTP request and logs
// request start and completion.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return NewRequestMiddleware()(next)
}

// NewRequestMiddleware is RequestIDMiddleware with a set of path prefixes
// whose successful requests are logged at TRACE instead of INFO. Pointer
// events arrive many times per second and would drown everything else.
func NewRequestMiddleware(quietPrefixes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.New().String()
			}

			ctx := WithRequestID(r.Context(), requestID)
			r = r.WithContext(ctx)
			w.Header().Set("X-Request-ID", requestID)

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			okLevel := slog.LevelInfo
			for _, prefix := range quietPrefixes {
				if strings.HasPrefix(r.URL.Path, prefix) {
					okLevel = LevelTrace
					break
				}
			}

			start := time.Now()
			current().Log(ctx, okLevel, "request started", withRequestID(ctx, []any{
				"method", r.Method,
				"path", r.URL.Path,
				"remoteAddr", r.RemoteAddr,
			})...)

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			attrs := withRequestID(ctx, []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.statusCode,
				"durationMs", duration.Milliseconds(),
			})
			switch {
			case wrapped.statusCode >= 500:
				current().Log(ctx, slog.LevelError, "request failed", attrs...)
			case wrapped.statusCode >= 400:
				current().Log(ctx, slog.LevelWarn, "request rejected", attrs...)
			default:
				current().Log(ctx, okLevel, "request completed", attrs...)
			}
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Flush implements http.Flusher for SSE support
func (rw *responseWriter) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
