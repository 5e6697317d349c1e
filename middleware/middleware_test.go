package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kevinaaaquil/portfolio/backend/auth"
	"github.com/kevinaaaquil/portfolio/backend/locale"
	"github.com/kevinaaaquil/portfolio/backend/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

func newGateway(t *testing.T, anonymous bool) *auth.Gateway {
	t.Helper()
	return auth.NewGateway(store.NewMemory(), nil, auth.Options{
		Secret:         "test-secret",
		TTL:            time.Hour,
		AllowSignup:    true,
		AllowAnonymous: anonymous,
	}, discard)
}

func identityEcho(got **auth.Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = IdentityFromContext(r.Context())
	})
}

func TestSessionBootstrapsAnonymous(t *testing.T) {
	gw := newGateway(t, true)
	var got *auth.Identity
	h := Session(gw, false, discard)(identityEcho(&got))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, got)
	assert.True(t, got.Anonymous)
	assert.False(t, got.IsAdmin())

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	// The issued cookie resolves to the same identity on the next request.
	first := got.UID
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, first, got.UID)
	assert.Empty(t, rec.Result().Cookies())
}

func TestSessionReplacesInvalidCookie(t *testing.T) {
	gw := newGateway(t, true)
	var got *auth.Identity
	h := Session(gw, false, discard)(identityEcho(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "not-a-token"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.NotNil(t, got)
	assert.True(t, got.Anonymous)
	assert.NotEmpty(t, rec.Result().Cookies())
}

func TestSessionWithoutAnonymousSignIn(t *testing.T) {
	gw := newGateway(t, false)
	got := &auth.Identity{UID: "sentinel"}
	h := Session(gw, false, discard)(identityEcho(&got))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Nil(t, got)
}

func TestSessionKeepsAdmin(t *testing.T) {
	ctx := context.Background()
	gw := newGateway(t, true)
	_, err := gw.EnsureAdmin(ctx, "admin@example.com", "password")
	require.NoError(t, err)
	sess, err := gw.Login(ctx, "admin@example.com", "password")
	require.NoError(t, err)

	var got *auth.Identity
	h := Session(gw, false, discard)(identityEcho(&got))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: sess.Token})
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	assert.True(t, got.IsAdmin())
}

func TestLanguage(t *testing.T) {
	var got locale.Lang
	h := Language()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = LangFromContext(r.Context())
	}))

	tests := []struct {
		name   string
		cookie string
		header string
		want   locale.Lang
	}{
		{"default", "", "", locale.EN},
		{"header", "", "nb-NO,nb;q=0.9", locale.NO},
		{"cookie wins", "en", "nb-NO", locale.EN},
		{"bad cookie falls back to header", "xx", "nn", locale.NO},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: locale.CookieName, Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set("Accept-Language", tt.header)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, locale.EN, LangFromContext(context.Background()))
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		remote string
		want   string
	}{
		{"10.0.0.1:1234", "10.0.0.1"},
		{"[2001:db8::1]:443", "2001:db8::1"},
		{"2001:db8::1", "2001:db8::1"},
		{"10.0.0.1", "10.0.0.1"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = tt.remote
		assert.Equal(t, tt.want, ClientIP(req), tt.remote)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 2, nil, discard)
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1235"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:1236"))
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1234"), "limits are per client")
}

func TestPublicReadPreflight(t *testing.T) {
	h := PublicRead()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight reached the handler")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/movies", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	h := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/cv", nil))

	assert.Contains(t, buf.String(), `"path":"/cv"`)
	assert.Contains(t, buf.String(), `"status":418`)
}
