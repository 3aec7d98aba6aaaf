package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// statusWriter captures the response status code for logging. It
// defaults to 200 OK, which net/http sends when a handler writes the
// body without an explicit WriteHeader call.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// AccessLogConfig configures the AccessLog middleware.
type AccessLogConfig struct {
	// Logger receives one record per request. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// AccessLog returns a middleware that logs one record per request with
// the method, path, response status, and duration.
func AccessLog(cfg AccessLogConfig) Middleware {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration", time.Since(start))
		})
	}
}
