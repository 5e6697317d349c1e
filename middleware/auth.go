package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/kevinaaaquil/portfolio/backend/auth"
)

type contextKey string

const identityKey contextKey = "identity"

// SessionCookie holds the signed session token.
const SessionCookie = "session"

// SessionResolver is the part of auth.Gateway the session middleware needs.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*auth.Identity, error)
	Anonymous(ctx context.Context) (*auth.Session, error)
}

// Session resolves the session cookie into an identity. Requests without a valid cookie get
// a fresh anonymous session so reads work before login; when anonymous sign-in is disabled
// the request simply carries no identity.
func Session(gw SessionResolver, secure bool, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
				id, err := gw.Resolve(r.Context(), c.Value)
				if err == nil {
					next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
					return
				}
				logger.Debug("discarding session cookie", "error", err)
			}

			sess, err := gw.Anonymous(r.Context())
			if err != nil {
				logger.Debug("anonymous session unavailable", "error", err)
				ClearSessionCookie(w, secure)
				next.ServeHTTP(w, r)
				return
			}
			SetSessionCookie(w, sess, secure)
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), &sess.Identity)))
		})
	}
}

func SetSessionCookie(w http.ResponseWriter, sess *auth.Session, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func WithIdentity(ctx context.Context, id *auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns nil when the request has no session.
func IdentityFromContext(ctx context.Context) *auth.Identity {
	id, _ := ctx.Value(identityKey).(*auth.Identity)
	return id
}
