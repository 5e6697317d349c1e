package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/kevinaaaquil/portfolio/backend/models"
	"github.com/kevinaaaquil/portfolio/backend/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, mutate func(*Options)) (*Gateway, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	opts := Options{
		Secret:         "test-secret",
		TTL:            time.Hour,
		AllowSignup:    true,
		AllowAnonymous: true,
	}
	if mutate != nil {
		mutate(&opts)
	}
	return NewGateway(mem, NewMemoryRevoker(), opts, nil), mem
}

func TestEnsureAdminSeedsAndClaimsAdminRole(t *testing.T) {
	ctx := context.Background()
	g, mem := newTestGateway(t, nil)

	uid, err := g.EnsureAdmin(ctx, "Admin@Example.com", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, uid)
	assert.Equal(t, uid, g.AdminUID())

	u, err := mem.UserByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.NotEqual(t, "hunter22", u.Password)

	again, err := g.EnsureAdmin(ctx, "admin@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, uid, again)

	sess, err := g.Login(ctx, "admin@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, sess.Identity.Role)
	assert.NoError(t, Authorize(&sess.Identity))
}

func TestEnsureAdminKeepsConfiguredUID(t *testing.T) {
	g, _ := newTestGateway(t, func(o *Options) { o.AdminUID = "HCp5TlIvIxZlKvpeNwO1PWBtLfu2" })

	uid, err := g.EnsureAdmin(context.Background(), "admin@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "HCp5TlIvIxZlKvpeNwO1PWBtLfu2", uid)

	sess, err := g.Login(context.Background(), "admin@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, models.RoleVisitor, sess.Identity.Role)
	assert.ErrorIs(t, Authorize(&sess.Identity), ErrForbidden)
}

func TestAnonymousSession(t *testing.T) {
	ctx := context.Background()
	g, _ := newTestGateway(t, nil)

	sess, err := g.Anonymous(ctx)
	require.NoError(t, err)
	assert.True(t, sess.Identity.Anonymous)
	assert.Equal(t, models.RoleVisitor, sess.Identity.Role)

	who, err := g.Resolve(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.Identity.UID, who.UID)
	assert.True(t, who.Anonymous)
	assert.ErrorIs(t, Authorize(who), ErrForbidden)

	disabled, _ := newTestGateway(t, func(o *Options) { o.AllowAnonymous = false })
	_, err = disabled.Anonymous(ctx)
	assert.Equal(t, CodeOperationNotAllowed, Code(err))
}

func TestSignupErrors(t *testing.T) {
	ctx := context.Background()
	g, _ := newTestGateway(t, nil)

	_, err := g.Signup(ctx, "reader@example.com", "secret1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		code     string
	}{
		{"duplicate", "Reader@example.com", "secret1", CodeEmailInUse},
		{"weak password", "new@example.com", "12345", CodeWeakPassword},
		{"bad email", "not-an-email", "secret1", CodeInvalidEmail},
		{"empty email", "", "secret1", CodeInvalidEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Signup(ctx, tt.email, tt.password)
			require.Error(t, err)
			assert.Equal(t, tt.code, Code(err))
		})
	}

	closed, _ := newTestGateway(t, func(o *Options) { o.AllowSignup = false })
	_, err = closed.Signup(ctx, "x@example.com", "secret1")
	assert.Equal(t, CodeOperationNotAllowed, Code(err))
}

func TestLoginInvalidCredential(t *testing.T) {
	ctx := context.Background()
	g, _ := newTestGateway(t, nil)
	_, err := g.Signup(ctx, "reader@example.com", "secret1")
	require.NoError(t, err)

	for _, pw := range []string{"wrong-pass", ""} {
		_, err := g.Login(ctx, "reader@example.com", pw)
		assert.Equal(t, CodeInvalidCredential, Code(err))
	}
	_, err = g.Login(ctx, "nobody@example.com", "secret1")
	assert.Equal(t, CodeInvalidCredential, Code(err))
}

func TestResolveRejectsTamperedAndExpiredTokens(t *testing.T) {
	ctx := context.Background()
	g, _ := newTestGateway(t, nil)
	sess, err := g.Anonymous(ctx)
	require.NoError(t, err)

	_, err = g.Resolve(ctx, sess.Token+"x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, _ := newTestGateway(t, func(o *Options) { o.Secret = "other-secret" })
	_, err = other.Resolve(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	g.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = g.Resolve(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	g, _ := newTestGateway(t, nil)
	sess, err := g.Signup(ctx, "reader@example.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, g.Logout(ctx, sess.Token))
	_, err = g.Resolve(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	assert.NoError(t, g.Logout(ctx, "garbage"))
}

func TestRedisRevoker(t *testing.T) {
	s := miniredis.RunT(t)
	r, err := NewRedisRevoker("redis://" + s.Addr())
	require.NoError(t, err)
	defer r.Close()

	ctx := context.Background()
	require.NoError(t, r.Revoke(ctx, "jti-1", time.Now().Add(time.Minute)))
	require.NoError(t, r.Revoke(ctx, "jti-past", time.Now().Add(-time.Minute)))

	revoked, err := r.Revoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.True(t, s.Exists("revoked:jti-1"))

	revoked, err = r.Revoked(ctx, "jti-past")
	require.NoError(t, err)
	assert.False(t, revoked)

	s.FastForward(2 * time.Minute)
	revoked, err = r.Revoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestGatewayWithRedisRevoker(t *testing.T) {
	s := miniredis.RunT(t)
	r, err := NewRedisRevoker("redis://" + s.Addr())
	require.NoError(t, err)
	defer r.Close()

	g := NewGateway(store.NewMemory(), r, Options{Secret: "k", TTL: time.Hour, AllowAnonymous: true}, nil)
	sess, err := g.Anonymous(context.Background())
	require.NoError(t, err)
	require.NoError(t, g.Logout(context.Background(), sess.Token))

	_, err = g.Resolve(context.Background(), sess.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewRedisRevokerBadURL(t *testing.T) {
	_, err := NewRedisRevoker("not a url")
	assert.Error(t, err)
}

func TestMemoryRevokerExpiry(t *testing.T) {
	m := NewMemoryRevoker()
	base := time.Now()
	m.now = func() time.Time { return base }

	require.NoError(t, m.Revoke(context.Background(), "a", base.Add(time.Minute)))
	ok, _ := m.Revoked(context.Background(), "a")
	assert.True(t, ok)

	m.now = func() time.Time { return base.Add(2 * time.Minute) }
	ok, _ = m.Revoked(context.Background(), "a")
	assert.False(t, ok)
}

func TestCodeOfForeignError(t *testing.T) {
	assert.Equal(t, CodeInternal, Code(errors.New("boom")))
	assert.Equal(t, CodeWeakPassword, Code(newError(CodeWeakPassword, nil)))
}
