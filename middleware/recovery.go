package middleware

import (
	"log/slog"
	"net/http"

	"github.com/srittau/rouver/html"
	"github.com/srittau/rouver/respond"
)

// RecoveryConfig configures the Recovery middleware.
type RecoveryConfig struct {
	// Logger receives a record for every recovered panic. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Recovery returns a middleware that recovers from panics in downstream
// handlers, logs them, and responds with a 500 status page. A router
// with error handling enabled does this on its own; Recovery is for
// fronting foreign handlers, such as sub-applications mounted next to a
// router.
func Recovery(cfg RecoveryConfig) Middleware {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					logger.Error("panic while handling request",
						"method", r.Method, "path", r.URL.Path, "error", v)
					respond.WithHTML(w, http.StatusInternalServerError,
						html.StatusPage(http.StatusInternalServerError, "Internal server error."))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
