package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kevinaaaquil/portfolio/backend/auth"
	"github.com/kevinaaaquil/portfolio/backend/catalog"
	"github.com/kevinaaaquil/portfolio/backend/config"
	"github.com/kevinaaaquil/portfolio/backend/contentsync"
	"github.com/kevinaaaquil/portfolio/backend/cv"
	"github.com/kevinaaaquil/portfolio/backend/handlers"
	"github.com/kevinaaaquil/portfolio/backend/locale"
	"github.com/kevinaaaquil/portfolio/backend/models"
	"github.com/kevinaaaquil/portfolio/backend/service"
	"github.com/kevinaaaquil/portfolio/backend/store"
	"github.com/kevinaaaquil/portfolio/backend/views"
)

// backend is everything the site reads and writes. store.DB and store.Memory both qualify.
type backend interface {
	contentsync.Source
	catalog.ItemStore
	cv.DocStore
	auth.UserStore
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	cfg.LogSummary(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, disconnect := openStore(ctx, cfg, logger)
	defer disconnect()

	var revoker auth.Revoker
	if cfg.RedisURL != "" {
		rr, err := auth.NewRedisRevoker(cfg.RedisURL)
		if err != nil {
			logger.Error("redis", "error", err)
			os.Exit(1)
		}
		defer rr.Close()
		revoker = rr
	}

	// Without a store nobody can sign in; the gateway still issues anonymous sessions.
	var users auth.UserStore = unavailableUsers{}
	if db != nil {
		users = db
	}
	gateway := auth.NewGateway(users, revoker, auth.Options{
		Secret:         cfg.JWTSecret,
		TTL:            cfg.SessionTTL,
		AdminUID:       cfg.AdminUID,
		AllowSignup:    cfg.AllowSignup,
		AllowAnonymous: cfg.AllowAnonymous,
	}, logger)
	if db != nil && cfg.AdminUID == "" {
		if _, err := gateway.EnsureAdmin(ctx, cfg.AuthEmail, cfg.AuthPass); err != nil {
			logger.Error("seeding admin account failed", "error", err)
		}
	}

	// A nil db stays a nil interface in each service, which then reports the store as unavailable.
	hub := contentsync.NewHub(db, logger)
	catalogs := catalog.NewService(db, hub, logger)
	cvs := cv.NewService(db, hub, logger)
	if err := hub.Start(ctx); err != nil {
		logger.Error("content sync not started", "error", err)
	}
	defer hub.Stop()

	var images handlers.ImageUploader
	if cfg.S3Bucket != "" {
		imgs, err := service.NewImageStore(ctx, service.ImageStoreOptions{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretKey,
			PublicBaseURL:   cfg.S3PublicBaseURL,
			Endpoint:        cfg.S3Endpoint,
		})
		if err != nil {
			logger.Error("s3", "error", err)
			os.Exit(1)
		}
		images = imgs
	} else {
		logger.Warn("AWS_S3_BUCKET not set; image fields take URLs only")
	}

	var relay service.Relay = service.NewFormRelay(cfg.ContactEndpoint, nil)
	if cfg.SMTPEnabled() {
		relay = service.NewMailRelay(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.ContactFrom, cfg.ContactTo)
	}

	messages, err := locale.NewCatalog(logger)
	if err != nil {
		logger.Error("locale", "error", err)
		os.Exit(1)
	}
	renderer, err := views.New(messages)
	if err != nil {
		logger.Error("templates", "error", err)
		os.Exit(1)
	}

	router := handlers.NewRouter(handlers.Deps{
		Views:            renderer,
		Messages:         messages,
		Logger:           logger,
		Secure:           !cfg.IsDevelopment(),
		Gateway:          gateway,
		Hub:              hub,
		Catalog:          catalogs,
		CV:               cvs,
		Images:           images,
		Books:            service.NewBookLookup(cfg.BooksAPIURL, nil),
		Relay:            relay,
		Captcha:          service.NewCaptcha(cfg.RecaptchaSecret, service.RecaptchaVerifyURL),
		RecaptchaSiteKey: cfg.RecaptchaSiteKey,
		PDFEnglish:       cfg.CVPDFEnglish,
		PDFNorwegian:     cfg.CVPDFNorwegian,
		MaxUploadBytes:   cfg.MaxUploadBytes(),
		CSRFKey:          []byte(cfg.JWTSecret),
		TrustedOrigins:   cfg.TrustedOrigins,
		RateLimitRPS:     cfg.RateLimitRPS,
		RateLimitBurst:   cfg.RateLimitBurst,
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	// Open event streams only end when the hub closes its topics.
	hub.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}

// openStore connects the configured driver. A failed Mongo connection leaves the site
// running read-only with empty collections; writes then report the store as unavailable.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (backend, func()) {
	if cfg.StoreDriver == config.DriverMemory {
		logger.Warn("using in-memory store; content is lost on restart")
		return store.NewMemory(), func() {}
	}

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	db, err := store.NewMongoDB(connectCtx, cfg.MongoURI, cfg.DBName, cfg.CVAppID, cfg.WatchPollInterval, logger)
	if err != nil {
		logger.Error("mongodb unavailable", "error", err)
		return nil, func() {}
	}
	if err := db.EnsureIndexes(connectCtx); err != nil {
		logger.Error("mongodb indexes", "error", err)
	}
	return db, func() {
		if err := db.Disconnect(context.Background()); err != nil {
			logger.Error("mongodb disconnect", "error", err)
		}
	}
}

type unavailableUsers struct{}

var errNoUserStore = errors.New("user store unavailable")

func (unavailableUsers) UserByEmail(context.Context, string) (*models.User, error) {
	return nil, errNoUserStore
}

func (unavailableUsers) CreateUser(context.Context, *models.User) (string, error) {
	return "", errNoUserStore
}
