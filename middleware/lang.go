package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/kevinaaaquil/portfolio/backend/locale"
)

const langKey contextKey = "lang"

// Language picks the request language from the lang cookie, then Accept-Language.
func Language() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), RequestLang(r))))
		})
	}
}

func RequestLang(r *http.Request) locale.Lang {
	if c, err := r.Cookie(locale.CookieName); err == nil {
		if l, ok := locale.Parse(c.Value); ok {
			return l
		}
	}
	return locale.Match(r.Header.Get("Accept-Language"))
}

func SetLangCookie(w http.ResponseWriter, l locale.Lang, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     locale.CookieName,
		Value:    l.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func WithLang(ctx context.Context, l locale.Lang) context.Context {
	return context.WithValue(ctx, langKey, l)
}

func LangFromContext(ctx context.Context) locale.Lang {
	if l, ok := ctx.Value(langKey).(locale.Lang); ok {
		return l
	}
	return locale.Default
}
