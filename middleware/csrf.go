package middleware

import (
	"log/slog"
	"net/http"

	"filippo.io/csrf/gorilla"
)

// CSRF rejects cross-origin form posts using Fetch metadata headers. trustedOrigins are
// host[:port] values, not URLs. rejected renders the failure page; nil means plain 403.
func CSRF(key []byte, trustedOrigins []string, rejected http.Handler, logger *slog.Logger) func(http.Handler) http.Handler {
	if rejected == nil {
		rejected = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Forbidden - CSRF validation failed", http.StatusForbidden)
		})
	}
	opts := []csrf.Option{
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reason := "unknown"
			if err := csrf.FailureReason(r); err != nil {
				reason = err.Error()
			}
			logger.Warn("CSRF validation failed",
				"reason", reason,
				"method", r.Method,
				"path", r.URL.Path,
				"origin", r.Header.Get("Origin"),
				"sec_fetch_site", r.Header.Get("Sec-Fetch-Site"),
			)
			rejected.ServeHTTP(w, r)
		})),
	}
	if len(trustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(trustedOrigins))
	}
	return csrf.Protect(key, opts...)
}
