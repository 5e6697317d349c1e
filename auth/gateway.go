package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/kevinaaaquil/portfolio/backend/models"
	"github.com/kevinaaaquil/portfolio/backend/store"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

// UserStore is the slice of the document store the gateway needs.
type UserStore interface {
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (string, error)
}

type Claims struct {
	UserID    string `json:"uid"`
	Email     string `json:"email,omitempty"`
	Anonymous bool   `json:"anon,omitempty"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Session is an identity together with the signed token that carries it.
type Session struct {
	Identity  Identity
	Token     string
	ExpiresAt time.Time
}

type Options struct {
	Secret         string
	TTL            time.Duration
	AdminUID       string
	AllowSignup    bool
	AllowAnonymous bool
}

type Gateway struct {
	users   UserStore
	revoker Revoker
	opts    Options
	logger  *slog.Logger
	now     func() time.Time

	mu       sync.RWMutex
	adminUID string
}

func NewGateway(users UserStore, revoker Revoker, opts Options, logger *slog.Logger) *Gateway {
	if revoker == nil {
		revoker = NewMemoryRevoker()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		users:    users,
		revoker:  revoker,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
		adminUID: opts.AdminUID,
	}
}

// AdminUID returns the uid that receives the admin role, or "" before EnsureAdmin runs.
func (g *Gateway) AdminUID() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.adminUID
}

func (g *Gateway) roleFor(uid string) string {
	if admin := g.AdminUID(); admin != "" && uid == admin {
		return models.RoleAdmin
	}
	return models.RoleVisitor
}

// EnsureAdmin seeds the default account when it does not exist yet. Without a configured
// admin uid, the seeded account becomes the admin.
func (g *Gateway) EnsureAdmin(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	user, err := g.users.UserByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("looking up admin account: %w", err)
	}
	if user == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return "", err
		}
		user = &models.User{Email: email, Password: string(hash), CreatedAt: g.now().UTC()}
		id, err := g.users.CreateUser(ctx, user)
		if errors.Is(err, store.ErrDuplicate) {
			// Another instance seeded it first.
			if user, err = g.users.UserByEmail(ctx, email); err == nil && user == nil {
				err = store.ErrNotFound
			}
		} else {
			user.ID = id
		}
		if err != nil {
			return "", fmt.Errorf("seeding admin account: %w", err)
		}
		g.logger.Info("seeded default account", "email", email, "uid", user.ID)
	}

	g.mu.Lock()
	if g.adminUID == "" {
		g.adminUID = user.ID
	}
	admin := g.adminUID
	g.mu.Unlock()
	return admin, nil
}

func (g *Gateway) Anonymous(ctx context.Context) (*Session, error) {
	if !g.opts.AllowAnonymous {
		return nil, newError(CodeOperationNotAllowed, nil)
	}
	return g.issue(Identity{UID: "anon-" + uuid.NewString(), Anonymous: true})
}

func (g *Gateway) Signup(ctx context.Context, email, password string) (*Session, error) {
	if !g.opts.AllowSignup {
		return nil, newError(CodeOperationNotAllowed, nil)
	}
	email = normalizeEmail(email)
	if err := validation.Validate(email, validation.Required, is.EmailFormat); err != nil {
		return nil, newError(CodeInvalidEmail, err)
	}
	if len(password) < minPasswordLen {
		return nil, newError(CodeWeakPassword, fmt.Errorf("password must be at least %d characters", minPasswordLen))
	}

	existing, err := g.users.UserByEmail(ctx, email)
	if err != nil {
		return nil, newError(CodeInternal, err)
	}
	if existing != nil {
		return nil, newError(CodeEmailInUse, nil)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, newError(CodeInternal, err)
	}
	user := &models.User{Email: email, Password: string(hash), CreatedAt: g.now().UTC()}
	id, err := g.users.CreateUser(ctx, user)
	if errors.Is(err, store.ErrDuplicate) {
		return nil, newError(CodeEmailInUse, nil)
	}
	if err != nil {
		return nil, newError(CodeInternal, err)
	}
	g.logger.Info("account created", "uid", id)
	return g.issue(Identity{UID: id, Email: email})
}

func (g *Gateway) Login(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, newError(CodeInvalidCredential, nil)
	}
	user, err := g.users.UserByEmail(ctx, email)
	if err != nil {
		return nil, newError(CodeInternal, err)
	}
	if user == nil {
		return nil, newError(CodeInvalidCredential, nil)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, newError(CodeInvalidCredential, nil)
	}
	return g.issue(Identity{UID: user.ID, Email: user.Email})
}

// Logout revokes the token until its expiry. Tokens that no longer parse are ignored.
func (g *Gateway) Logout(ctx context.Context, token string) error {
	claims, err := g.parse(token)
	if err != nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	return g.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// Resolve verifies the token and returns its identity. The role is recomputed from the
// current admin uid, never trusted from the token.
func (g *Gateway) Resolve(ctx context.Context, token string) (*Identity, error) {
	claims, err := g.parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.ID != "" {
		revoked, err := g.revoker.Revoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, ErrInvalidToken
		}
	}
	return &Identity{
		UID:       claims.UserID,
		Email:     claims.Email,
		Anonymous: claims.Anonymous,
		Role:      g.roleFor(claims.UserID),
	}, nil
}

func (g *Gateway) issue(id Identity) (*Session, error) {
	id.Role = g.roleFor(id.UID)
	now := g.now()
	exp := now.Add(g.opts.TTL)
	claims := &Claims{
		UserID:    id.UID,
		Email:     id.Email,
		Anonymous: id.Anonymous,
		Role:      id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   id.UID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(g.opts.Secret))
	if err != nil {
		return nil, newError(CodeInternal, err)
	}
	return &Session{Identity: id, Token: token, ExpiresAt: exp}, nil
}

func (g *Gateway) parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(g.opts.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(g.now))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.UserID == "" {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
